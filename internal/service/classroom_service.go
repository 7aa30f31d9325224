package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/models"
	"github.com/noah-isme/study-dashboard/internal/repository"
)

// ClassroomService triggers and reports Google Classroom synchronisation.
type ClassroomService interface {
	Sync(ctx context.Context) (models.ActionResult, error)
	Status(ctx context.Context) (models.ClassroomStatus, error)
}

type classroomService struct {
	repo   repository.ClassroomRepository
	logger zerolog.Logger
}

// NewClassroomService builds a new classroom service.
func NewClassroomService(repo repository.ClassroomRepository, logger zerolog.Logger) ClassroomService {
	return &classroomService{
		repo:   repo,
		logger: logger.With().Str("component", "classroom_service").Logger(),
	}
}

func (s *classroomService) Sync(ctx context.Context) (models.ActionResult, error) {
	result, err := s.repo.Sync(ctx)
	if err != nil {
		return models.ActionResult{}, err
	}

	if result.Message == "" {
		if result.Success {
			result.Message = "Classroom sync started"
		} else {
			result.Message = "Classroom sync was not accepted"
		}
	}

	s.logger.Info().Bool("success", result.Success).Msg("classroom sync requested")
	return result, nil
}

func (s *classroomService) Status(ctx context.Context) (models.ClassroomStatus, error) {
	return s.repo.Status(ctx)
}
