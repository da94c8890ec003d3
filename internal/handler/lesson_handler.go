package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/utils"
)

// LessonHandler serves public and admin lesson endpoints.
type LessonHandler struct {
	service  service.LessonService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewLessonHandler constructs the handler.
func NewLessonHandler(service service.LessonService, validate *validator.Validate, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// ListPublicByCourse returns the published lessons of a course in order.
func (h *LessonHandler) ListPublicByCourse(c *fiber.Ctx) error {
	lessons, err := h.service.ListByCourse(c.Context(), c.Params("id"), true)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list lessons")
		return sendStorageError(c, err, "lessons not found")
	}
	return c.JSON(lessons)
}

// ListAdminByCourse returns every lesson of a course.
func (h *LessonHandler) ListAdminByCourse(c *fiber.Ctx) error {
	lessons, err := h.service.ListByCourse(c.Context(), c.Params("id"), false)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list lessons")
		return sendStorageError(c, err, "lessons not found")
	}
	return c.JSON(lessons)
}

// Get returns one lesson by id.
func (h *LessonHandler) Get(c *fiber.Ctx) error {
	lesson, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return sendStorageError(c, err, "Lesson not found")
	}
	return c.JSON(lesson)
}

// Create stores a new lesson, normalizing the video URL.
func (h *LessonHandler) Create(c *fiber.Ctx) error {
	var req dto.LessonCreateRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lesson payload")
	}

	lesson, err := h.service.Create(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create lesson")
		return sendStorageError(c, err, "lesson not found")
	}
	return c.JSON(lesson)
}

// Update applies a partial patch to a lesson.
func (h *LessonHandler) Update(c *fiber.Ctx) error {
	var req dto.LessonUpdateRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lesson payload")
	}

	lesson, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return sendStorageError(c, err, "Lesson not found")
	}
	return c.JSON(lesson)
}

// Delete removes a lesson.
func (h *LessonHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return sendStorageError(c, err, "Lesson not found")
	}
	return c.JSON(fiber.Map{"message": "Lesson deleted successfully"})
}
