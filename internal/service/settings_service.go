package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/models"
	"github.com/noah-isme/study-dashboard/internal/repository"
)

// SettingsService manages the student's settings and notification history.
type SettingsService interface {
	Get(ctx context.Context) (models.UserSettings, error)
	Update(ctx context.Context, payload dto.SettingsUpdateRequest) (models.UserSettings, error)
	SendTestNotification(ctx context.Context, payload dto.TestNotificationRequest) (models.ActionResult, error)
	Notifications(ctx context.Context) ([]dto.NotificationView, error)
}

type settingsService struct {
	settings      repository.SettingsRepository
	notifications repository.NotificationRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewSettingsService builds a new settings service.
func NewSettingsService(settings repository.SettingsRepository, notifications repository.NotificationRepository, validate *validator.Validate, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settings:      settings,
		notifications: notifications,
		validator:     validate,
		logger:        logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) (models.UserSettings, error) {
	return s.settings.Get(ctx)
}

// Update saves the whole buffered form in one request.
func (s *settingsService) Update(ctx context.Context, payload dto.SettingsUpdateRequest) (models.UserSettings, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.StudentID = strings.TrimSpace(payload.StudentID)
	payload.Email = strings.TrimSpace(payload.Email)

	if err := s.validator.Struct(payload); err != nil {
		return models.UserSettings{}, err
	}

	submitted := models.UserSettings{
		Email:                   payload.Email,
		NotificationPreferences: payload.NotificationPreferences,
		Theme:                   payload.Theme,
		Name:                    payload.Name,
		StudentID:               payload.StudentID,
	}

	updated, err := s.settings.Update(ctx, submitted)
	if err != nil {
		return models.UserSettings{}, err
	}

	// Some backends acknowledge without echoing the settings.
	if updated.Email == "" {
		updated = submitted
	}

	s.logger.Info().Str("theme", updated.Theme).Str("notifications", updated.NotificationPreferences).Msg("settings updated")

	return updated, nil
}

func (s *settingsService) SendTestNotification(ctx context.Context, payload dto.TestNotificationRequest) (models.ActionResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ActionResult{}, err
	}

	result, err := s.notifications.SendTest(ctx, payload.Channel)
	if err != nil {
		return models.ActionResult{}, err
	}

	if result.Message == "" {
		result.Message = "Test notification sent via " + ChannelLabel(payload.Channel)
	}

	s.logger.Info().Str("channel", payload.Channel).Bool("success", result.Success).Msg("test notification requested")

	return result, nil
}

func (s *settingsService) Notifications(ctx context.Context) ([]dto.NotificationView, error) {
	notifications, err := s.notifications.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.NotificationView, 0, len(notifications))
	for _, notification := range notifications {
		views = append(views, dto.NotificationView{
			ID:           notification.ID,
			Assignment:   notification.Assignment,
			Course:       notification.Course,
			Channel:      notification.Channel,
			ChannelLabel: ChannelLabel(notification.Channel),
			SentTime:     notification.SentTime,
			SentLabel:    formatTimestamp(notification.SentTime),
		})
	}

	return views, nil
}

// ChannelLabel returns the display name of a notification channel.
func ChannelLabel(channel string) string {
	switch channel {
	case models.ChannelEmail:
		return "Email"
	case models.ChannelWhatsApp:
		return "WhatsApp"
	case models.ChannelBoth:
		return "Email & WhatsApp"
	default:
		return channel
	}
}
