package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/study-dashboard/internal/config"
	"github.com/noah-isme/study-dashboard/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Backend     string    `json:"backend"`
}

// HealthCheck returns a handler that reports application health information.
// It does not call the backend.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Backend:     cfg.APIBaseURL,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
