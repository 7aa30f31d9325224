package handler

import (
	"errors"
	"mime"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/service"
	"github.com/noah-isme/study-dashboard/internal/utils"
)

// AssignmentHandler wires the assignment viewer routes.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// RegisterPages attaches the HTML routes.
func (h *AssignmentHandler) RegisterPages(router fiber.Router) {
	router.Get("", h.listPage)
	router.Get("/:id", h.viewPage)
	router.Get("/:id/download", h.attachment(service.AttachmentDownload))
	router.Get("/:id/ai-response", h.attachment(service.AttachmentAIResponse))
}

// RegisterAPI attaches the JSON routes.
func (h *AssignmentHandler) RegisterAPI(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id/status", h.updateStatus)
}

func (h *AssignmentHandler) listPage(c *fiber.Ctx) error {
	assignments, err := h.service.List(c.UserContext())
	if err != nil {
		return renderLoadError(c, h.logger, "Assignments", pageAssignments, err)
	}

	return render(c, "assignments/index", "Assignments", pageAssignments, fiber.Map{
		"Assignments": assignments,
	})
}

func (h *AssignmentHandler) viewPage(c *fiber.Ctx) error {
	assignment, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoAssignmentSelected) {
			c.Status(fiber.StatusNotFound)
			return render(c, "assignments/empty", "Assignment", pageAssignments, nil)
		}
		return renderLoadError(c, h.logger, "Assignment", pageAssignments, err)
	}

	return render(c, "assignments/show", assignment.Title, pageAssignments, fiber.Map{
		"Assignment": assignment,
	})
}

// attachment proxies an assignment file so the browser never talks to the
// backend directly.
func (h *AssignmentHandler) attachment(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := h.service.Attachment(c.UserContext(), c.Params("id"), kind)
		if err != nil {
			if errors.Is(err, service.ErrAttachmentNotFound) || errors.Is(err, service.ErrNoAssignmentSelected) {
				return fiber.ErrNotFound
			}
			return renderLoadError(c, h.logger, "Assignment", pageAssignments, err)
		}

		disposition := "attachment"
		if file.Inline {
			disposition = "inline"
		}
		c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType(disposition, map[string]string{"filename": file.Filename}))
		c.Set(fiber.HeaderContentType, file.ContentType)

		return c.Send(file.Data)
	}
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	assignments, err := h.service.List(c.UserContext())
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	assignment, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) updateStatus(c *fiber.Ctx) error {
	var payload dto.AssignmentStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment status updated", assignment)
}
