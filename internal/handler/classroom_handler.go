package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/service"
	"github.com/noah-isme/study-dashboard/internal/utils"
)

// ClassroomHandler wires the Google Classroom sync routes.
type ClassroomHandler struct {
	service service.ClassroomService
	logger  zerolog.Logger
}

// NewClassroomHandler constructs the handler.
func NewClassroomHandler(service service.ClassroomService, logger zerolog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		service: service,
		logger:  logger.With().Str("component", "classroom_handler").Logger(),
	}
}

// RegisterPages attaches the HTML routes.
func (h *ClassroomHandler) RegisterPages(router fiber.Router) {
	router.Post("/sync", h.syncPage)
}

// RegisterAPI attaches the JSON routes.
func (h *ClassroomHandler) RegisterAPI(router fiber.Router) {
	router.Post("/sync", h.sync)
	router.Get("/status", h.status)
}

func (h *ClassroomHandler) syncPage(c *fiber.Ctx) error {
	result, err := h.service.Sync(c.UserContext())
	if err != nil {
		return failAction(c, h.logger, err, "/progress")
	}

	setFlash(c, result.Message, !result.Success)
	return redirectBack(c, "/progress")
}

func (h *ClassroomHandler) sync(c *fiber.Ctx) error {
	result, err := h.service.Sync(c.UserContext())
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	if !result.Success {
		return utils.SendError(c, fiber.StatusBadGateway, result.Message)
	}
	return utils.SendSuccess(c, result.Message, result)
}

func (h *ClassroomHandler) status(c *fiber.Ctx) error {
	status, err := h.service.Status(c.UserContext())
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "classroom status retrieved", status)
}
