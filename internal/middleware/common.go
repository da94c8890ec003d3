package middleware

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Config customises the middleware registration pipeline.
type Config struct {
	Logger *zerolog.Logger
	// SkipRequestLog disables the per-request access log line, used in tests.
	SkipRequestLog bool
}

// Register attaches the common middlewares used across the API. The CORS
// policy is wide open because the admin panel and the public site are
// served from separate origins.
func Register(app *fiber.App, cfg Config) {
	structured := zerolog.New(io.Discard)
	if cfg.Logger != nil {
		structured = *cfg.Logger
	}

	app.Use(recover.New())
	app.Use(CorrelationID())
	app.Use(Observability(structured))

	if !cfg.SkipRequestLog {
		app.Use(logger.New())
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
