package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/utils"
)

// ErrorHandler renders errors that escape the handlers: JSON for the API,
// the error page for everything else.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	log := logger.With().Str("component", "error_handler").Logger()

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			requestLogger(log, c).Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}

		if strings.HasPrefix(c.Path(), "/api") {
			return utils.SendError(c, code, message)
		}

		title := "Error"
		data := fiber.Map{"ErrorMessage": message}
		switch code {
		case fiber.StatusNotFound:
			title = "Not Found"
			data["ErrorTitle"] = "Page Not Found"
			data["ErrorMessage"] = "The page you are looking for does not exist."
		case fiber.StatusTooManyRequests:
			title = "Slow Down"
			data["ErrorTitle"] = "Too Many Requests"
		default:
			data["ErrorTitle"] = "Something Went Wrong"
		}
		if c.Method() == fiber.MethodGet && code >= fiber.StatusInternalServerError {
			data["RetryURL"] = c.OriginalURL()
		}

		c.Status(code)
		if renderErr := render(c, "error", title, "", data); renderErr != nil {
			log.Error().Err(renderErr).Msg("failed to render error page")
			return c.Status(code).SendString(message)
		}
		return nil
	}
}
