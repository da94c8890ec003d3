package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/utils"
)

// TeamHandler serves public and admin team member endpoints.
type TeamHandler struct {
	service  service.TeamService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewTeamHandler constructs the handler.
func NewTeamHandler(service service.TeamService, validate *validator.Validate, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "team_handler").Logger(),
	}
}

// ListPublic returns active team members in display order.
func (h *TeamHandler) ListPublic(c *fiber.Ctx) error {
	members, err := h.service.ListPublic(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list team members")
		return sendStorageError(c, err, "team members not found")
	}
	return c.JSON(members)
}

// ListAdmin returns every team member.
func (h *TeamHandler) ListAdmin(c *fiber.Ctx) error {
	members, err := h.service.ListAll(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list team members")
		return sendStorageError(c, err, "team members not found")
	}
	return c.JSON(members)
}

// Create stores a new team member.
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req dto.TeamMemberCreateRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid team member payload")
	}

	member, err := h.service.Create(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create team member")
		return sendStorageError(c, err, "team member not found")
	}
	return c.JSON(member)
}

// Update applies a partial patch to a team member.
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var req dto.TeamMemberUpdateRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid team member payload")
	}

	member, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return sendStorageError(c, err, "Team member not found")
	}
	return c.JSON(member)
}

// Delete removes a team member.
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return sendStorageError(c, err, "Team member not found")
	}
	return c.JSON(fiber.Map{"message": "Team member deleted successfully"})
}
