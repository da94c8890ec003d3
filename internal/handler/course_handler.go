package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/utils"
)

// CourseHandler serves public and admin course endpoints.
type CourseHandler struct {
	service  service.CourseService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "course_handler").Logger(),
	}
}

// ListPublic returns published courses in display order.
func (h *CourseHandler) ListPublic(c *fiber.Ctx) error {
	courses, err := h.service.ListPublic(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list courses")
		return sendStorageError(c, err, "courses not found")
	}
	return c.JSON(courses)
}

// ListAdmin returns every course regardless of status.
func (h *CourseHandler) ListAdmin(c *fiber.Ctx) error {
	courses, err := h.service.ListAll(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list courses")
		return sendStorageError(c, err, "courses not found")
	}
	return c.JSON(courses)
}

// Get returns one course by id.
func (h *CourseHandler) Get(c *fiber.Ctx) error {
	course, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return sendStorageError(c, err, "Course not found")
	}
	return c.JSON(course)
}

// Create stores a new course.
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req dto.CourseCreateRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course payload")
	}

	course, err := h.service.Create(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create course")
		return sendStorageError(c, err, "course not found")
	}
	return c.JSON(course)
}

// Update applies a partial patch to a course.
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	var req dto.CourseUpdateRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course payload")
	}

	course, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return sendStorageError(c, err, "Course not found")
	}
	return c.JSON(course)
}

// Delete removes a course.
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return sendStorageError(c, err, "Course not found")
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}
