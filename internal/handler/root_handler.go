package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urokiislama/uroki-api/internal/storage"
)

// Root reports which backend the process is bound to.
func Root(client storage.Client) fiber.Handler {
	clientType := "Supabase"
	if client.Kind() == storage.KindPostgres {
		clientType = "PostgreSQL"
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello World with " + clientType})
	}
}
