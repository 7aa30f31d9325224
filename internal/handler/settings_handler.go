package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/dto"
	"github.com/noah-isme/study-dashboard/internal/models"
	"github.com/noah-isme/study-dashboard/internal/service"
	"github.com/noah-isme/study-dashboard/internal/utils"
)

const settingsSavedMessage = "Settings saved successfully!"

// SettingsHandler wires the settings and notification routes.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(service service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "settings_handler").Logger(),
	}
}

// RegisterPages attaches the HTML routes. testLimiter guards the test
// notification action.
func (h *SettingsHandler) RegisterPages(router fiber.Router, testLimiter fiber.Handler) {
	router.Get("", h.page)
	router.Post("", h.savePage)
	router.Post("/test-notification", testLimiter, h.testNotificationPage)
}

// RegisterAPI attaches the JSON settings routes.
func (h *SettingsHandler) RegisterAPI(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.update)
}

// RegisterNotificationAPI attaches the JSON notification routes.
func (h *SettingsHandler) RegisterNotificationAPI(router fiber.Router, testLimiter fiber.Handler) {
	router.Get("", h.notifications)
	router.Post("/test", testLimiter, h.testNotification)
}

func (h *SettingsHandler) page(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.UserContext())
	if err != nil {
		return renderLoadError(c, h.logger, "Settings", pageSettings, err)
	}

	return render(c, "settings/index", "Settings", pageSettings, h.pageData(c, settings))
}

// savePage submits the buffered form. On failure the form is shown again
// with the submitted values.
func (h *SettingsHandler) savePage(c *fiber.Ctx) error {
	payload := dto.SettingsUpdateRequest{
		Name:                    c.FormValue("name"),
		StudentID:               c.FormValue("student_id"),
		Email:                   c.FormValue("email"),
		NotificationPreferences: c.FormValue("notification_preferences"),
		Theme:                   c.FormValue("theme"),
	}

	if _, err := h.service.Update(c.UserContext(), payload); err != nil {
		status := fiber.StatusBadGateway
		if isValidationError(err) {
			status = fiber.StatusBadRequest
		} else {
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to save settings")
		}

		data := h.pageData(c, models.UserSettings{
			Email:                   payload.Email,
			NotificationPreferences: payload.NotificationPreferences,
			Theme:                   payload.Theme,
			Name:                    payload.Name,
			StudentID:               payload.StudentID,
		})
		data["Flash"] = actionMessage(err)
		data["FlashError"] = true

		c.Status(status)
		return render(c, "settings/index", "Settings", pageSettings, data)
	}

	setFlash(c, settingsSavedMessage, false)
	return c.Redirect("/settings", fiber.StatusSeeOther)
}

func (h *SettingsHandler) testNotificationPage(c *fiber.Ctx) error {
	result, err := h.service.SendTestNotification(c.UserContext(), dto.TestNotificationRequest{
		Channel: c.FormValue("channel"),
	})
	if err != nil {
		return failAction(c, h.logger, err, "/settings")
	}

	setFlash(c, result.Message, !result.Success)
	return c.Redirect("/settings", fiber.StatusSeeOther)
}

func (h *SettingsHandler) pageData(c *fiber.Ctx, settings models.UserSettings) fiber.Map {
	data := fiber.Map{
		"Settings": settings,
		"Theme":    settings.Theme,
	}

	notifications, err := h.service.Notifications(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("notifications unavailable")
		data["NotificationsError"] = "Recent notifications could not be loaded."
	} else {
		data["Notifications"] = notifications
	}

	return data
}

func (h *SettingsHandler) get(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.UserContext())
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "settings retrieved", settings)
}

func (h *SettingsHandler) update(c *fiber.Ctx) error {
	var payload dto.SettingsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	settings, err := h.service.Update(c.UserContext(), payload)
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, settingsSavedMessage, settings)
}

func (h *SettingsHandler) notifications(c *fiber.Ctx) error {
	notifications, err := h.service.Notifications(c.UserContext())
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "notifications retrieved", notifications)
}

func (h *SettingsHandler) testNotification(c *fiber.Ctx) error {
	var payload dto.TestNotificationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.SendTestNotification(c.UserContext(), payload)
	if err != nil {
		return sendAPIError(c, h.logger, err)
	}

	if !result.Success {
		return utils.SendError(c, fiber.StatusBadGateway, result.Message)
	}
	return utils.SendSuccess(c, result.Message, result)
}
