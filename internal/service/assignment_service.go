package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/markdown"
	"github.com/noah-isme/study-dashboard/internal/models"
	"github.com/noah-isme/study-dashboard/internal/repository"
)

var (
	// ErrNoAssignmentSelected indicates the backend returned no assignment for the id.
	ErrNoAssignmentSelected = errors.New("no assignment selected")
	// ErrAttachmentNotFound indicates the assignment has no file of the requested kind.
	ErrAttachmentNotFound = errors.New("attachment not found")
)

// Attachment kinds served by the assignment viewer.
const (
	AttachmentDownload   = "download"
	AttachmentAIResponse = "ai-response"
)

// FileFetcher downloads assignment attachments from the backend.
type FileFetcher interface {
	Fetch(ctx context.Context, link string) (client.Attachment, error)
}

// AssignmentService exposes the assignment viewer use cases.
type AssignmentService interface {
	List(ctx context.Context) ([]dto.AssignmentCard, error)
	Get(ctx context.Context, id string) (dto.AssignmentDetail, error)
	UpdateStatus(ctx context.Context, id string, payload dto.AssignmentStatusRequest) (dto.AssignmentCard, error)
	ToggleStatus(ctx context.Context, id string) (dto.AssignmentCard, error)
	Attachment(ctx context.Context, id, kind string) (dto.AttachmentFile, error)
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	files     FileFetcher
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(repo repository.AssignmentRepository, files FileFetcher, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		repo:      repo,
		files:     files,
		validator: validate,
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		now:       time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context) ([]dto.AssignmentCard, error) {
	assignments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cards := make([]dto.AssignmentCard, 0, len(assignments))
	for _, assignment := range assignments {
		cards = append(cards, newAssignmentCard(assignment, now))
	}

	return cards, nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (dto.AssignmentDetail, error) {
	assignment, err := s.load(ctx, id)
	if err != nil {
		return dto.AssignmentDetail{}, err
	}

	return dto.AssignmentDetail{
		AssignmentCard:    newAssignmentCard(assignment, s.now()),
		Description:       assignment.Description,
		DescriptionBlocks: markdown.Parse(assignment.Description),
		DescriptionHTML:   markdown.RenderHTML(assignment.Description),
	}, nil
}

func (s *assignmentService) UpdateStatus(ctx context.Context, id string, payload dto.AssignmentStatusRequest) (dto.AssignmentCard, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentCard{}, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return dto.AssignmentCard{}, err
	}

	return s.applyStatus(ctx, current, payload.Status)
}

// ToggleStatus flips pending and completed with a single status update.
func (s *assignmentService) ToggleStatus(ctx context.Context, id string) (dto.AssignmentCard, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return dto.AssignmentCard{}, err
	}

	return s.applyStatus(ctx, current, current.ToggledStatus())
}

func (s *assignmentService) Attachment(ctx context.Context, id, kind string) (dto.AttachmentFile, error) {
	assignment, err := s.load(ctx, id)
	if err != nil {
		return dto.AttachmentFile{}, err
	}

	var link, filename string
	inline := false
	switch kind {
	case AttachmentDownload:
		link = assignment.DownloadLink
		filename = fmt.Sprintf("%s.pdf", assignment.Title)
	case AttachmentAIResponse:
		link = assignment.AIResponseFile
		filename = path.Base(strings.TrimSpace(link))
		inline = true
	default:
		return dto.AttachmentFile{}, ErrAttachmentNotFound
	}

	if strings.TrimSpace(link) == "" {
		return dto.AttachmentFile{}, ErrAttachmentNotFound
	}

	file, err := s.files.Fetch(ctx, link)
	if err != nil {
		s.logger.Error().Err(err).Str("assignment_id", id).Str("kind", kind).Msg("failed to fetch attachment")
		return dto.AttachmentFile{}, err
	}

	return dto.AttachmentFile{
		Filename:    filename,
		ContentType: detectContentType(file),
		Data:        file.Data,
		Inline:      inline,
	}, nil
}

func (s *assignmentService) load(ctx context.Context, id string) (models.Assignment, error) {
	if strings.TrimSpace(id) == "" {
		return models.Assignment{}, ErrNoAssignmentSelected
	}

	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Assignment{}, err
	}
	if assignment.ID == "" {
		return models.Assignment{}, ErrNoAssignmentSelected
	}

	return assignment, nil
}

func (s *assignmentService) applyStatus(ctx context.Context, current models.Assignment, status string) (dto.AssignmentCard, error) {
	updated, err := s.repo.UpdateStatus(ctx, current.ID, status)
	if err != nil {
		return dto.AssignmentCard{}, err
	}

	// Some backends acknowledge without echoing the assignment.
	if updated.ID == "" {
		updated = current
		updated.Status = status
	}

	s.logger.Info().Str("assignment_id", current.ID).Str("status", status).Msg("assignment status updated")

	return newAssignmentCard(updated, s.now()), nil
}

func newAssignmentCard(assignment models.Assignment, now time.Time) dto.AssignmentCard {
	days := DaysUntilDue(assignment.DueDate, now)

	card := dto.AssignmentCard{
		ID:            assignment.ID,
		Title:         assignment.Title,
		Course:        assignment.Course,
		Status:        assignment.Status,
		Priority:      assignment.Priority,
		PriorityLabel: priorityLabel(assignment.Priority),
		DueDate:       assignment.DueDate,
		DueDateLabel:  formatDueDate(assignment.DueDate),
		DaysUntilDue:  days,
		Urgent:        IsUrgent(assignment, now),
		Badge:         StatusBadge(assignment, now),
		HasDownload:   strings.TrimSpace(assignment.DownloadLink) != "",
		HasAIResponse: strings.TrimSpace(assignment.AIResponseFile) != "",
	}

	if days > 0 && !assignment.IsCompleted() {
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		card.RemainingLabel = fmt.Sprintf("%d %s remaining", days, unit)
	}

	return card
}

func priorityLabel(priority string) string {
	if strings.TrimSpace(priority) == "" {
		return ""
	}
	return strings.ToUpper(priority) + " PRIORITY"
}

func detectContentType(file client.Attachment) string {
	detected := mimetype.Detect(file.Data)
	if detected.Is("application/octet-stream") && file.ContentType != "" {
		return file.ContentType
	}
	return detected.String()
}
