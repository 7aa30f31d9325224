package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
)

// ClassroomRepository drives the Google Classroom integration endpoints.
type ClassroomRepository interface {
	Sync(ctx context.Context) (models.ActionResult, error)
	Status(ctx context.Context) (models.ClassroomStatus, error)
}

type classroomRepository struct {
	backend Backend
	logger  zerolog.Logger
}

// NewClassroomRepository instantiates a backend-backed repository.
func NewClassroomRepository(backend Backend, logger zerolog.Logger) ClassroomRepository {
	return &classroomRepository{
		backend: backend,
		logger:  logger.With().Str("component", "classroom_repository").Logger(),
	}
}

func (r *classroomRepository) Sync(ctx context.Context) (models.ActionResult, error) {
	var ack actionAck
	if err := r.backend.Post(ctx, client.Endpoint(client.EndpointClassroomSync), nil, client.WholeBody(&ack)); err != nil {
		return models.ActionResult{}, logFailure(r.logger, err, "error syncing with classroom")
	}

	return ack.result(), nil
}

func (r *classroomRepository) Status(ctx context.Context) (models.ClassroomStatus, error) {
	var status models.ClassroomStatus
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointClassroomStatus), client.WholeBody(&status)); err != nil {
		return models.ClassroomStatus{}, logFailure(r.logger, err, "error getting classroom status")
	}

	return status, nil
}
