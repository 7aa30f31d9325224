package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
)

// NotificationRepository lists sent notifications and triggers test sends.
type NotificationRepository interface {
	List(ctx context.Context) ([]models.Notification, error)
	SendTest(ctx context.Context, channel string) (models.ActionResult, error)
}

type notificationRepository struct {
	backend Backend
	logger  zerolog.Logger
}

// NewNotificationRepository instantiates a backend-backed repository.
func NewNotificationRepository(backend Backend, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		backend: backend,
		logger:  logger.With().Str("component", "notification_repository").Logger(),
	}
}

func (r *notificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointNotifications), &notifications); err != nil {
		return nil, logFailure(r.logger, err, "error fetching notifications")
	}

	return notifications, nil
}

func (r *notificationRepository) SendTest(ctx context.Context, channel string) (models.ActionResult, error) {
	payload := map[string]string{"channel": channel}

	var ack actionAck
	if err := r.backend.Post(ctx, client.Endpoint(client.EndpointTestNotification), payload, client.WholeBody(&ack)); err != nil {
		return models.ActionResult{}, logFailure(r.logger.With().Str("channel", channel).Logger(), err, "error sending test notification")
	}

	return ack.result(), nil
}
