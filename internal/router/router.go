package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/config"
	"github.com/noah-isme/study-dashboard/internal/handler"
	"github.com/noah-isme/study-dashboard/internal/middleware"
	"github.com/noah-isme/study-dashboard/internal/observability"
	"github.com/noah-isme/study-dashboard/internal/views"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler *handler.AssignmentHandler
	ProgressHandler   *handler.ProgressHandler
	MarksHandler      *handler.MarksHandler
	SettingsHandler   *handler.SettingsHandler
	ClassroomHandler  *handler.ClassroomHandler
	// TestNotificationLimiter guards the test notification actions. Nil
	// applies the configured per-minute limit.
	TestNotificationLimiter fiber.Handler
}

// NewApp builds the Fiber application with the page templates and the
// dashboard error handler.
func NewApp(cfg config.Config, logger zerolog.Logger) (*fiber.App, error) {
	engine, err := views.New()
	if err != nil {
		return nil, err
	}

	return fiber.New(fiber.Config{
		AppName:           cfg.AppName,
		ServerHeader:      cfg.AppName,
		Views:             engine,
		ViewsLayout:       views.Layout,
		PassLocalsToViews: true,
		ErrorHandler:      handler.ErrorHandler(logger),
	}), nil
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("AppName", cfg.AppName)
		return c.Next()
	})

	app.Get("/metrics", observability.MetricsHandler())

	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	testLimiter := deps.TestNotificationLimiter
	if testLimiter == nil {
		testLimiter = middleware.RateLimit("test-notification", cfg.TestNotificationLimit, cfg.TestNotificationWindow)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/progress")
	})

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.RegisterPages(app.Group("/assignments"))
		deps.AssignmentHandler.RegisterAPI(api.Group("/assignments"))
	}

	if deps.ProgressHandler != nil {
		deps.ProgressHandler.RegisterPages(app.Group("/progress"))
		deps.ProgressHandler.RegisterAPI(api.Group("/progress"))
	}

	if deps.ClassroomHandler != nil {
		deps.ClassroomHandler.RegisterPages(app.Group("/classroom"))
		deps.ClassroomHandler.RegisterAPI(api.Group("/classroom"))
	}

	if deps.MarksHandler != nil {
		deps.MarksHandler.RegisterPages(app.Group("/marks"))
		deps.MarksHandler.RegisterAPI(api.Group("/marks"))
	}

	if deps.SettingsHandler != nil {
		deps.SettingsHandler.RegisterPages(app.Group("/settings"), testLimiter)
		deps.SettingsHandler.RegisterAPI(api.Group("/settings"))
		deps.SettingsHandler.RegisterNotificationAPI(api.Group("/notifications"), testLimiter)
	}

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
