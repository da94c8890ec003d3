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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/config"
	"github.com/urokiislama/uroki-api/internal/handler"
	"github.com/urokiislama/uroki-api/internal/middleware"
	"github.com/urokiislama/uroki-api/internal/repository"
	"github.com/urokiislama/uroki-api/internal/router"
	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	client, err := storage.Select(cfg, logger)
	if err != nil {
		log.Fatalf("failed to bind a storage backend: %v", err)
	}
	defer client.Close()
	logger.Info().Str("backend", string(client.Kind())).Msg("storage backend bound")

	// Redis is optional; the stats cache degrades to live counts without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = storage.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, stats caching disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	adminRepo := repository.NewAdminUserRepository(client)
	studentRepo := repository.NewStudentRepository(client)
	courseRepo := repository.NewCourseRepository(client)
	lessonRepo := repository.NewLessonRepository(client)
	teamRepo := repository.NewTeamMemberRepository(client)
	statusRepo := repository.NewStatusCheckRepository(client)

	authService := service.NewAuthService(adminRepo, studentRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminPasswords, logger)
	courseService := service.NewCourseService(courseRepo, logger)
	lessonService := service.NewLessonService(lessonRepo, logger)
	teamService := service.NewTeamService(teamRepo, logger)
	statusService := service.NewStatusService(statusRepo, logger)
	dashboardService := service.NewDashboardService(client, logger)
	databaseService := service.NewAdminDatabaseService(client, cfg, redisClient, logger)
	uploadService := service.NewUploadService(cfg.UploadDir, logger)

	authHandler := handler.NewAuthHandler(authService, validate, logger)
	courseHandler := handler.NewCourseHandler(courseService, validate, logger)
	lessonHandler := handler.NewLessonHandler(lessonService, validate, logger)
	teamHandler := handler.NewTeamHandler(teamService, validate, logger)
	statusHandler := handler.NewStatusHandler(statusService, validate, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	databaseHandler := handler.NewAdminDatabaseHandler(databaseService, validate, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		Storage:          client,
		AuthHandler:      authHandler,
		CourseHandler:    courseHandler,
		LessonHandler:    lessonHandler,
		TeamHandler:      teamHandler,
		StatusHandler:    statusHandler,
		DashboardHandler: dashboardHandler,
		DatabaseHandler:  databaseHandler,
		UploadHandler:    uploadHandler,
		AdminProtected:   middleware.AdminProtected(cfg.JWTSecret, adminRepo),
	})

	go func() {
		reportStartupCounts(client, logger)
		service.NewSeedRunner(cfg.SeedCommand, logger).Run(context.Background())
	}()

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// reportStartupCounts logs how much data the bound backend already holds.
// Failures are logged and ignored so an empty database never blocks boot.
func reportStartupCounts(client storage.Client, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range []string{repository.TableStudents, repository.TableCourses, repository.TableAdminUsers} {
		count, err := client.CountRecords(ctx, table, nil)
		if err != nil {
			logger.Warn().Err(err).Str("table", table).Msg("startup count unavailable")
			continue
		}
		logger.Info().Str("table", table).Int64("count", count).Msg("startup count")
	}
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
