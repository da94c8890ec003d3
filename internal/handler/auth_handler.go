package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/middleware"
	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/utils"
)

// AuthHandler serves the login endpoints and the current-admin lookup.
type AuthHandler struct {
	service  service.AuthService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// AdminLogin authenticates admin panel credentials.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "username and password required")
	}

	token, err := h.service.AdminLogin(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return utils.SendError(c, fiber.StatusUnauthorized, "incorrect username or password")
		}
		h.logger.Error().Err(err).Msg("admin login failed")
		return sendStorageError(c, err, "admin not found")
	}

	return c.JSON(token)
}

// UnifiedLogin authenticates admins by email and students by bare email.
func (h *AuthHandler) UnifiedLogin(c *fiber.Ctx) error {
	var req dto.UnifiedLoginRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "email and password required")
	}

	resp, err := h.service.UnifiedLogin(c.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error().Err(err).Msg("unified login failed")
		return sendStorageError(c, err, "user not found")
	}

	return c.JSON(resp)
}

// Me returns the admin principal resolved from the bearer token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		return utils.SendUnauthorized(c)
	}
	return c.JSON(admin)
}
