package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
)

// AssignmentRepository reads assignments and updates their status on the backend.
type AssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	GetByID(ctx context.Context, id string) (models.Assignment, error)
	UpdateStatus(ctx context.Context, id, status string) (models.Assignment, error)
}

type assignmentRepository struct {
	backend Backend
	logger  zerolog.Logger
}

// NewAssignmentRepository instantiates a backend-backed repository.
func NewAssignmentRepository(backend Backend, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		backend: backend,
		logger:  logger.With().Str("component", "assignment_repository").Logger(),
	}
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointAssignments), &assignments); err != nil {
		return nil, logFailure(r.logger, err, "error fetching assignments")
	}

	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointAssignmentByID, id), &assignment); err != nil {
		return models.Assignment{}, logFailure(r.logger.With().Str("assignment_id", id).Logger(), err, "error fetching assignment")
	}

	return assignment, nil
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id, status string) (models.Assignment, error) {
	payload := map[string]string{"status": status}

	var assignment models.Assignment
	if err := r.backend.Put(ctx, client.Endpoint(client.EndpointAssignmentStatus, id), payload, &assignment); err != nil {
		return models.Assignment{}, logFailure(r.logger.With().Str("assignment_id", id).Logger(), err, "error updating assignment status")
	}

	return assignment, nil
}
