package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/models"
	"github.com/noah-isme/study-dashboard/internal/repository"
)

var (
	// ErrMarksEntryNotFound indicates the requested marks entry does not exist.
	ErrMarksEntryNotFound = errors.New("marks entry not found")
	// ErrConfirmationRequired indicates a delete was attempted without confirmation.
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
)

// MarksService exposes the marks summary use cases.
type MarksService interface {
	Summary(ctx context.Context, course string) (dto.MarksSummary, error)
	Find(ctx context.Context, id string) (dto.MarksEntryView, error)
	Add(ctx context.Context, payload dto.MarksCreateRequest) (dto.MarksEntryView, error)
	Update(ctx context.Context, id string, payload dto.MarksUpdateRequest) (dto.MarksEntryView, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	Courses(ctx context.Context) ([]models.Course, error)
}

type marksService struct {
	marks     repository.MarksRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMarksService builds a new marks service.
func NewMarksService(marks repository.MarksRepository, courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) MarksService {
	return &marksService{
		marks:     marks,
		courses:   courses,
		validator: validate,
		logger:    logger.With().Str("component", "marks_service").Logger(),
	}
}

// Summary loads marks and courses. A non-empty course narrows the entries
// table to that course; the statistics always cover every entry.
func (s *marksService) Summary(ctx context.Context, course string) (dto.MarksSummary, error) {
	entries, err := s.marks.List(ctx)
	if err != nil {
		return dto.MarksSummary{}, err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return dto.MarksSummary{}, err
	}

	return buildMarksSummary(entries, courses, strings.TrimSpace(course)), nil
}

func (s *marksService) Find(ctx context.Context, id string) (dto.MarksEntryView, error) {
	entries, err := s.marks.List(ctx)
	if err != nil {
		return dto.MarksEntryView{}, err
	}

	for _, entry := range entries {
		if entry.ID == id {
			return newMarksEntryView(entry), nil
		}
	}

	return dto.MarksEntryView{}, ErrMarksEntryNotFound
}

func (s *marksService) Add(ctx context.Context, payload dto.MarksCreateRequest) (dto.MarksEntryView, error) {
	payload.AssignmentName = strings.TrimSpace(payload.AssignmentName)
	payload.Course = strings.TrimSpace(payload.Course)

	if err := s.validator.Struct(payload); err != nil {
		return dto.MarksEntryView{}, err
	}

	entry, err := s.marks.Create(ctx, repository.MarksInput{
		AssignmentName: payload.AssignmentName,
		Course:         payload.Course,
		MarksObtained:  *payload.MarksObtained,
		TotalMarks:     *payload.TotalMarks,
	})
	if err != nil {
		return dto.MarksEntryView{}, err
	}

	s.logger.Info().Str("marks_id", entry.ID).Str("course", entry.Course).Msg("marks entry added")

	return newMarksEntryView(entry), nil
}

func (s *marksService) Update(ctx context.Context, id string, payload dto.MarksUpdateRequest) (dto.MarksEntryView, error) {
	if strings.TrimSpace(id) == "" {
		return dto.MarksEntryView{}, ErrMarksEntryNotFound
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.MarksEntryView{}, err
	}

	entry, err := s.marks.Update(ctx, id, repository.MarksPatch{MarksObtained: payload.MarksObtained})
	if err != nil {
		return dto.MarksEntryView{}, err
	}

	s.logger.Info().Str("marks_id", id).Int("marks_obtained", *payload.MarksObtained).Msg("marks entry updated")

	return newMarksEntryView(entry), nil
}

// Delete removes one entry. Nothing is sent to the backend unless confirmed.
func (s *marksService) Delete(ctx context.Context, id string, confirmed bool) error {
	if strings.TrimSpace(id) == "" {
		return ErrMarksEntryNotFound
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if _, err := s.marks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("marks_id", id).Msg("marks entry deleted")
	return nil
}

func (s *marksService) Courses(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

// CourseAverage is the unweighted mean of entry percentages for course, or 0
// when the course has no entries.
func CourseAverage(entries []models.MarksEntry, course string) float64 {
	var total float64
	var count int
	for _, entry := range entries {
		if entry.Course != course {
			continue
		}
		total += entry.Percentage()
		count++
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func buildMarksSummary(entries []models.MarksEntry, courses []models.Course, selected string) dto.MarksSummary {
	summary := dto.MarksSummary{
		TotalEntries:   len(entries),
		SelectedCourse: selected,
		Courses:        make([]dto.CourseMarks, 0, len(courses)),
		Entries:        make([]dto.MarksEntryView, 0, len(entries)),
	}

	var percentageTotal float64
	counts := map[string]int{}
	for _, entry := range entries {
		percentageTotal += entry.Percentage()
		counts[entry.Course]++

		if selected == "" || entry.Course == selected {
			summary.Entries = append(summary.Entries, newMarksEntryView(entry))
		}
	}

	if len(entries) > 0 {
		summary.AverageScore = roundHalfUp(percentageTotal / float64(len(entries)))
	}

	for _, course := range courses {
		average := CourseAverage(entries, course.Name)
		summary.Courses = append(summary.Courses, dto.CourseMarks{
			ID:             course.ID,
			Name:           course.Name,
			Color:          course.Color,
			EntryCount:     counts[course.Name],
			Average:        average,
			RoundedAverage: roundHalfUp(average),
		})
		if counts[course.Name] > 0 {
			summary.ActiveCourses++
		}
	}

	return summary
}

func newMarksEntryView(entry models.MarksEntry) dto.MarksEntryView {
	percentage := entry.Percentage()
	return dto.MarksEntryView{
		ID:                entry.ID,
		AssignmentName:    entry.AssignmentName,
		Course:            entry.Course,
		MarksObtained:     entry.MarksObtained,
		TotalMarks:        entry.TotalMarks,
		Percentage:        percentage,
		RoundedPercentage: roundHalfUp(percentage),
		Band:              ScoreBand(percentage),
		DateAdded:         entry.DateAdded,
		DateLabel:         formatShortDate(entry.DateAdded),
	}
}
