package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
)

// MarksInput carries the fields the backend accepts when creating a marks entry.
type MarksInput struct {
	AssignmentName string `json:"assignmentName"`
	Course         string `json:"course"`
	MarksObtained  int    `json:"marksObtained"`
	TotalMarks     int    `json:"totalMarks"`
}

// MarksPatch carries a partial marks update; nil fields are left untouched.
type MarksPatch struct {
	AssignmentName *string `json:"assignmentName,omitempty"`
	Course         *string `json:"course,omitempty"`
	MarksObtained  *int    `json:"marksObtained,omitempty"`
	TotalMarks     *int    `json:"totalMarks,omitempty"`
}

// MarksRepository performs CRUD on marks entries.
type MarksRepository interface {
	List(ctx context.Context) ([]models.MarksEntry, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.MarksEntry, error)
	Create(ctx context.Context, input MarksInput) (models.MarksEntry, error)
	Update(ctx context.Context, id string, patch MarksPatch) (models.MarksEntry, error)
	Delete(ctx context.Context, id string) (models.ActionResult, error)
}

type marksRepository struct {
	backend Backend
	logger  zerolog.Logger
}

// NewMarksRepository instantiates a backend-backed repository.
func NewMarksRepository(backend Backend, logger zerolog.Logger) MarksRepository {
	return &marksRepository{
		backend: backend,
		logger:  logger.With().Str("component", "marks_repository").Logger(),
	}
}

func (r *marksRepository) List(ctx context.Context) ([]models.MarksEntry, error) {
	var entries []models.MarksEntry
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointMarks), &entries); err != nil {
		return nil, logFailure(r.logger, err, "error fetching marks")
	}

	return entries, nil
}

func (r *marksRepository) ListByCourse(ctx context.Context, courseID string) ([]models.MarksEntry, error) {
	var entries []models.MarksEntry
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointMarksByCourse, courseID), &entries); err != nil {
		return nil, logFailure(r.logger.With().Str("course_id", courseID).Logger(), err, "error fetching marks by course")
	}

	return entries, nil
}

func (r *marksRepository) Create(ctx context.Context, input MarksInput) (models.MarksEntry, error) {
	var entry models.MarksEntry
	if err := r.backend.Post(ctx, client.Endpoint(client.EndpointMarks), input, &entry); err != nil {
		return models.MarksEntry{}, logFailure(r.logger, err, "error adding marks")
	}

	return entry, nil
}

func (r *marksRepository) Update(ctx context.Context, id string, patch MarksPatch) (models.MarksEntry, error) {
	var entry models.MarksEntry
	if err := r.backend.Put(ctx, client.Endpoint(client.EndpointMarksByID, id), patch, &entry); err != nil {
		return models.MarksEntry{}, logFailure(r.logger.With().Str("marks_id", id).Logger(), err, "error updating marks")
	}

	return entry, nil
}

func (r *marksRepository) Delete(ctx context.Context, id string) (models.ActionResult, error) {
	var ack actionAck
	if err := r.backend.Delete(ctx, client.Endpoint(client.EndpointMarksByID, id), client.WholeBody(&ack)); err != nil {
		return models.ActionResult{}, logFailure(r.logger.With().Str("marks_id", id).Logger(), err, "error deleting marks")
	}

	return ack.result(), nil
}
