package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/urokiislama/uroki-api/internal/repository"
	"github.com/urokiislama/uroki-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, validate *validator.Validate, target interface{}) error {
	if err := c.BodyParser(target); err != nil {
		return err
	}
	if validate != nil {
		return validate.Struct(target)
	}
	return nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// sendStorageError maps repository errors onto the API taxonomy: absent
// records answer 404, anything else surfaces the backend's error text.
func sendStorageError(c *fiber.Ctx, err error, notFoundMessage string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, notFoundMessage)
	}
	return utils.SendError(c, fiber.StatusInternalServerError, "Database error: "+err.Error())
}
