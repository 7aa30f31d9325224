package handler

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/middleware"
	"github.com/noah-isme/study-dashboard/internal/service"
	"github.com/noah-isme/study-dashboard/internal/utils"
)

// Sidebar sections.
const (
	pageAssignments = "assignments"
	pageProgress    = "progress"
	pageMarks       = "marks"
	pageSettings    = "settings"
)

const flashCookie = "dashboard_flash"

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// render draws view inside the main layout with the sidebar state and any
// pending flash message.
func render(c *fiber.Ctx, view, title, current string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["CurrentPage"] = current

	if message, isError := consumeFlash(c); message != "" {
		if _, exists := data["Flash"]; !exists {
			data["Flash"] = message
			data["FlashError"] = isError
		}
	}

	return c.Render(view, data)
}

// renderLoadError shows the page's error panel. Retry re-issues the same GET.
func renderLoadError(c *fiber.Ctx, logger zerolog.Logger, title, current string, err error) error {
	requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg("failed to load page data")

	c.Status(fiber.StatusBadGateway)
	return render(c, "error", title, current, fiber.Map{
		"ErrorTitle":   "Error Loading Data",
		"ErrorMessage": err.Error(),
		"RetryURL":     c.OriginalURL(),
	})
}

// failAction reports a failed form action on the page the form came from.
func failAction(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	if !isValidationError(err) {
		requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg("action failed")
	}
	setFlash(c, actionMessage(err), true)
	return redirectBack(c, fallback)
}

func actionMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields = append(fields, strings.ToLower(fieldErr.Field()))
		}
		return "Please check: " + strings.Join(fields, ", ")
	}
	return err.Error()
}

func setFlash(c *fiber.Ctx, message string, isError bool) {
	kind := "ok"
	if isError {
		kind = "err"
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + message),
		Path:     "/",
		MaxAge:   60,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func consumeFlash(c *fiber.Ctx) (string, bool) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return "", false
	}
	c.ClearCookie(flashCookie)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false
	}

	kind, message, _ := strings.Cut(decoded, ":")
	return message, kind == "err"
}

// redirectBack follows the form's return_to field when it is a local path.
func redirectBack(c *fiber.Ctx, fallback string) error {
	target := strings.TrimSpace(c.FormValue("return_to"))
	if !isLocalPath(target) {
		target = fallback
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// isLocalPath accepts absolute paths on this host only. Browsers read "/\"
// like "//", so backslashes are rejected anywhere.
func isLocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n\t") {
		return false
	}

	parsed, err := url.Parse(target)
	return err == nil && parsed.Scheme == "" && parsed.Host == ""
}

func marksURL(course string) string {
	if strings.TrimSpace(course) == "" {
		return "/marks"
	}
	return "/marks?course=" + url.QueryEscape(course)
}

// formInt parses an optional integer form field. Blank values yield fallback.
func formInt(c *fiber.Ctx, key string, fallback *int) (*int, error) {
	value := strings.TrimSpace(c.FormValue(key))
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, errors.New(strings.ReplaceAll(key, "_", " ") + " must be a whole number")
	}
	return &parsed, nil
}

func validationDetails(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return details
}

// sendAPIError maps service errors onto the JSON envelope.
func sendAPIError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(validationErrors))
	case errors.Is(err, service.ErrNoAssignmentSelected):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrMarksEntryNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "marks entry not found")
	case errors.Is(err, service.ErrAttachmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "attachment not found")
	case errors.Is(err, service.ErrConfirmationRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case client.IsRequestError(err):
		requestLogger(logger, c).Error().Err(err).Msg("backend request failed")
		return utils.SendError(c, fiber.StatusBadGateway, err.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
