package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/utils"
)

// UploadHandler accepts multipart file uploads from the admin panel.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Upload stores a multipart file and returns its public URL.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	result, err := h.service.Save(file, c.FormValue("folder"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadEmpty):
			return utils.SendError(c, fiber.StatusBadRequest, "file is required")
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			return utils.SendError(c, fiber.StatusBadRequest, "File type not allowed")
		}
		h.logger.Error().Err(err).Msg("failed to store upload")
		return utils.SendError(c, fiber.StatusInternalServerError, "Upload error: "+err.Error())
	}
	return c.JSON(result)
}
