package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/config"
	"github.com/noah-isme/study-dashboard/internal/database"
	"github.com/noah-isme/study-dashboard/internal/handler"
	"github.com/noah-isme/study-dashboard/internal/middleware"
	"github.com/noah-isme/study-dashboard/internal/repository"
	"github.com/noah-isme/study-dashboard/internal/router"
	"github.com/noah-isme/study-dashboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.AppEnv == "production" {
		logger = logger.Level(zerolog.InfoLevel)
	}

	backend, err := client.New(client.Config{
		BaseURL:            cfg.APIBaseURL,
		Token:              cfg.APIToken,
		Timeout:            cfg.APITimeout,
		MaxAttachmentBytes: cfg.MaxAttachmentBytes,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentRepo := repository.NewAssignmentRepository(backend, logger)
	marksRepo := repository.NewMarksRepository(backend, logger)
	courseRepo := repository.NewCachedCourseRepository(repository.NewCourseRepository(backend, logger), redisClient, cfg.CoursesCacheTTL, logger)
	settingsRepo := repository.NewSettingsRepository(backend, logger)
	notificationRepo := repository.NewNotificationRepository(backend, logger)
	classroomRepo := repository.NewClassroomRepository(backend, logger)

	assignmentService := service.NewAssignmentService(assignmentRepo, backend, validate, logger)
	progressService := service.NewProgressService(assignmentRepo, logger)
	marksService := service.NewMarksService(marksRepo, courseRepo, validate, logger)
	settingsService := service.NewSettingsService(settingsRepo, notificationRepo, validate, logger)
	classroomService := service.NewClassroomService(classroomRepo, logger)

	app, err := router.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	middleware.Register(app, middleware.Config{Logger: &logger, AccessLog: cfg.AppEnv != "production"})
	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		ProgressHandler:   handler.NewProgressHandler(progressService, assignmentService, classroomService, logger),
		MarksHandler:      handler.NewMarksHandler(marksService, logger),
		SettingsHandler:   handler.NewSettingsHandler(settingsService, logger),
		ClassroomHandler:  handler.NewClassroomHandler(classroomService, logger),
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Str("backend", cfg.APIBaseURL).Msg("dashboard listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
