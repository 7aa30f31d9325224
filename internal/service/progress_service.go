package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/repository"
)

// ProgressService produces assignment completion statistics.
type ProgressService interface {
	Overview(ctx context.Context, showCompleted bool) (dto.ProgressOverview, error)
}

type progressService struct {
	assignments repository.AssignmentRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProgressService builds the progress tracker aggregator.
func NewProgressService(assignments repository.AssignmentRepository, logger zerolog.Logger) ProgressService {
	return &progressService{
		assignments: assignments,
		logger:      logger.With().Str("component", "progress_service").Logger(),
		now:         time.Now,
	}
}

func (s *progressService) Overview(ctx context.Context, showCompleted bool) (dto.ProgressOverview, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return dto.ProgressOverview{}, err
	}

	now := s.now()
	overview := dto.ProgressOverview{
		ShowCompleted: showCompleted,
		Assignments:   make([]dto.AssignmentCard, 0),
	}
	byCourse := map[string]*dto.CourseProgress{}

	for _, assignment := range assignments {
		overview.Total++

		course, ok := byCourse[assignment.Course]
		if !ok {
			course = &dto.CourseProgress{CourseName: assignment.Course}
			byCourse[assignment.Course] = course
		}
		course.Total++

		if assignment.IsCompleted() {
			overview.Completed++
			course.Completed++
		} else {
			overview.Pending++
			if IsUrgent(assignment, now) {
				overview.Urgent++
			}
		}

		if assignment.IsCompleted() == showCompleted {
			overview.Assignments = append(overview.Assignments, newAssignmentCard(assignment, now))
		}
	}

	overview.CompletionPercentage = CompletionPercentage(overview.Completed, overview.Total)

	overview.Courses = make([]dto.CourseProgress, 0, len(byCourse))
	for _, course := range byCourse {
		course.Percentage = CompletionPercentage(course.Completed, course.Total)
		overview.Courses = append(overview.Courses, *course)
	}
	sort.Slice(overview.Courses, func(i, j int) bool {
		return overview.Courses[i].CourseName < overview.Courses[j].CourseName
	})

	s.logger.Debug().
		Int("total", overview.Total).
		Int("completed", overview.Completed).
		Msg("progress overview computed")

	return overview, nil
}
