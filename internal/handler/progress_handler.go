package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/service"
	"github.com/noah-isme/study-dashboard/internal/utils"
)

// ProgressHandler wires the progress tracker routes.
type ProgressHandler struct {
	progress    service.ProgressService
	assignments service.AssignmentService
	classroom   service.ClassroomService
	logger      zerolog.Logger
}

// NewProgressHandler constructs the handler.
func NewProgressHandler(progress service.ProgressService, assignments service.AssignmentService, classroom service.ClassroomService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress:    progress,
		assignments: assignments,
		classroom:   classroom,
		logger:      logger.With().Str("component", "progress_handler").Logger(),
	}
}

// RegisterPages attaches the HTML routes.
func (h *ProgressHandler) RegisterPages(router fiber.Router) {
	router.Get("", h.page)
	router.Post("/:id/toggle", h.togglePage)
}

// RegisterAPI attaches the JSON routes.
func (h *ProgressHandler) RegisterAPI(router fiber.Router) {
	router.Get("", h.overview)
	router.Post("/:id/toggle", h.toggle)
}

func (h *ProgressHandler) page(c *fiber.Ctx) error {
	ctx := c.UserContext()

	overview, err := h.progress.Overview(ctx, showCompleted(c))
	if err != nil {
		return renderLoadError(c, h.logger, "Progress", pageProgress, err)
	}

	data := fiber.Map{"Overview": overview}
	if status, err := h.classroom.Status(ctx); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("classroom status unavailable")
		data["ClassroomUnavailable"] = true
	} else {
		data["Classroom"] = status
	}

	return render(c, "progress/index", "Progress", pageProgress, data)
}

func (h *ProgressHandler) togglePage(c *fiber.Ctx) error {
	if _, err := h.assignments.ToggleStatus(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrNoAssignmentSelected) {
			return fiber.ErrNotFound
		}
		return failAction(c, h.logger, err, "/progress")
	}

	return redirectBack(c, "/progress")
}

func (h *ProgressHandler) overview(c *fiber.Ctx) error {
	overview, err := h.progress.Overview(c.UserContext(), showCompleted(c))
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "progress retrieved", overview)
}

func (h *ProgressHandler) toggle(c *fiber.Ctx) error {
	assignment, err := h.assignments.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment status toggled", assignment)
}

func showCompleted(c *fiber.Ctx) bool {
	return c.Query("show") == "completed"
}
