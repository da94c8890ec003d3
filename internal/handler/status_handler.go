package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/utils"
)

// StatusHandler serves the health-check record endpoints.
type StatusHandler struct {
	service  service.StatusService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(service service.StatusService, validate *validator.Validate, logger zerolog.Logger) *StatusHandler {
	return &StatusHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "status_handler").Logger(),
	}
}

// Create records a client ping.
func (h *StatusHandler) Create(c *fiber.Ctx) error {
	var req dto.StatusCheckCreateRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "client_name required")
	}

	check, err := h.service.Create(c.Context(), req.ClientName)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create status check")
		return sendStorageError(c, err, "status check not found")
	}
	return c.JSON(check)
}

// List returns recent status checks.
func (h *StatusHandler) List(c *fiber.Ctx) error {
	checks, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list status checks")
		return sendStorageError(c, err, "status checks not found")
	}
	return c.JSON(checks)
}
