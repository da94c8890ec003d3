package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urokiislama/uroki-api/internal/config"
	"github.com/urokiislama/uroki-api/internal/handler"
	"github.com/urokiislama/uroki-api/internal/middleware"
	"github.com/urokiislama/uroki-api/internal/observability"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Storage          storage.Client
	AuthHandler      *handler.AuthHandler
	CourseHandler    *handler.CourseHandler
	LessonHandler    *handler.LessonHandler
	TeamHandler      *handler.TeamHandler
	StatusHandler    *handler.StatusHandler
	DashboardHandler *handler.DashboardHandler
	DatabaseHandler  *handler.AdminDatabaseHandler
	UploadHandler    *handler.UploadHandler
	AdminProtected   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	api.Get("/", handler.Root(deps.Storage))
	api.Get("/status", deps.StatusHandler.List)
	api.Post("/status", deps.StatusHandler.Create)

	// Public catalog
	api.Get("/courses", deps.CourseHandler.ListPublic)
	api.Get("/courses/:id", deps.CourseHandler.Get)
	api.Get("/courses/:id/lessons", deps.LessonHandler.ListPublicByCourse)
	api.Get("/lessons/:id", deps.LessonHandler.Get)
	api.Get("/team", deps.TeamHandler.ListPublic)

	// Authentication
	api.Post("/admin/login", deps.AuthHandler.AdminLogin)
	api.Post("/auth/login", deps.AuthHandler.UnifiedLogin)

	// Use the provided admin guard, or a no-op if nil.
	adminProtected := deps.AdminProtected
	if adminProtected == nil {
		adminProtected = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := api.Group("/admin", adminProtected)
	admin.Get("/me", deps.AuthHandler.Me)
	admin.Get("/dashboard", deps.DashboardHandler.Stats)

	admin.Get("/courses", deps.CourseHandler.ListAdmin)
	admin.Post("/courses", deps.CourseHandler.Create)
	admin.Put("/courses/:id", deps.CourseHandler.Update)
	admin.Delete("/courses/:id", middleware.RequireAdminRole(), deps.CourseHandler.Delete)

	admin.Get("/courses/:id/lessons", deps.LessonHandler.ListAdminByCourse)
	admin.Get("/lessons/:id", deps.LessonHandler.Get)
	admin.Post("/lessons", deps.LessonHandler.Create)
	admin.Put("/lessons/:id", deps.LessonHandler.Update)
	admin.Delete("/lessons/:id", middleware.RequireAdminRole(), deps.LessonHandler.Delete)

	admin.Get("/team", deps.TeamHandler.ListAdmin)
	admin.Post("/team", deps.TeamHandler.Create)
	admin.Put("/team/:id", deps.TeamHandler.Update)
	admin.Delete("/team/:id", middleware.RequireAdminRole(), deps.TeamHandler.Delete)

	admin.Post("/upload", deps.UploadHandler.Upload)

	// Database console
	database := admin.Group("/database")
	database.Get("/tables", deps.DatabaseHandler.Tables)
	database.Get("/table/:name", deps.DatabaseHandler.Table)
	database.Post("/query", middleware.RequireAdminRole(), deps.DatabaseHandler.Query)
	database.Get("/stats", deps.DatabaseHandler.Stats)
	database.Post("/backup", middleware.RequireAdminRole(), deps.DatabaseHandler.Backup)
	database.Get("/connection-info", deps.DatabaseHandler.ConnectionInfo)
	database.Post("/record/:table", middleware.RequireAdminRole(), deps.DatabaseHandler.CreateRecord)
	database.Put("/record/:table/:id", middleware.RequireAdminRole(), deps.DatabaseHandler.UpdateRecord)
	database.Delete("/record/:table/:id", middleware.RequireAdminRole(), deps.DatabaseHandler.DeleteRecord)

	app.Static("/uploads", cfg.UploadDir)
	app.Get("/metrics", observability.ScrapeHandler())
}
