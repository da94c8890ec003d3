package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/middleware"
	"github.com/urokiislama/uroki-api/internal/service"
	"github.com/urokiislama/uroki-api/internal/storage"
	"github.com/urokiislama/uroki-api/internal/utils"
)

// AdminDatabaseHandler serves the database exploration console.
type AdminDatabaseHandler struct {
	service  service.AdminDatabaseService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAdminDatabaseHandler constructs the handler.
func NewAdminDatabaseHandler(service service.AdminDatabaseService, validate *validator.Validate, logger zerolog.Logger) *AdminDatabaseHandler {
	return &AdminDatabaseHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "admin_db_handler").Logger(),
	}
}

// Tables lists database tables with live record counts.
func (h *AdminDatabaseHandler) Tables(c *fiber.Ctx) error {
	tables, err := h.service.ListTables(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list database tables")
		return sendStorageError(c, err, "tables not found")
	}
	return c.JSON(tables)
}

// Table returns one page of a table plus its column structure.
func (h *AdminDatabaseHandler) Table(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 100)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	data, err := h.service.BrowseTable(c.Context(), c.Params("name"), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTableName) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Str("table", c.Params("name")).Msg("failed to browse table")
		return sendStorageError(c, err, "table not found")
	}
	return c.JSON(data)
}

// Query executes raw SQL under the tiered role guard. Execution failures
// come back as a structured payload, not an error status.
func (h *AdminDatabaseHandler) Query(c *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query payload")
	}

	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		return utils.SendUnauthorized(c)
	}

	result, err := h.service.ExecuteQuery(c.Context(), req.Query, admin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQueryEmpty):
			return utils.SendError(c, fiber.StatusBadRequest, "Query cannot be empty")
		case errors.Is(err, service.ErrQueryForbidden):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		}
		return sendStorageError(c, err, "query failed")
	}
	return c.JSON(result)
}

// Stats returns per-table counters for the console.
func (h *AdminDatabaseHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build database stats")
		return sendStorageError(c, err, "stats not available")
	}
	return c.JSON(stats)
}

// Backup exports the fixed table set to a timestamped file.
func (h *AdminDatabaseHandler) Backup(c *fiber.Ctx) error {
	result, err := h.service.Backup(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create backup")
		return utils.SendError(c, fiber.StatusInternalServerError, "Backup error: "+err.Error())
	}
	return c.JSON(result)
}

// ConnectionInfo describes the bound backend configuration.
func (h *AdminDatabaseHandler) ConnectionInfo(c *fiber.Ctx) error {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		return utils.SendUnauthorized(c)
	}
	return c.JSON(h.service.ConnectionInfo(admin))
}

// CreateRecord inserts a record into an arbitrary table.
func (h *AdminDatabaseHandler) CreateRecord(c *fiber.Ctx) error {
	var data storage.Record
	if err := c.BodyParser(&data); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid record payload")
	}

	result, err := h.service.CreateRecord(c.Context(), c.Params("table"), data)
	if err != nil {
		h.logger.Error().Err(err).Str("table", c.Params("table")).Msg("failed to create record")
		return utils.SendError(c, fiber.StatusInternalServerError, "Create error: "+err.Error())
	}
	return c.JSON(result)
}

// UpdateRecord patches a record in an arbitrary table.
func (h *AdminDatabaseHandler) UpdateRecord(c *fiber.Ctx) error {
	var patch storage.Record
	if err := c.BodyParser(&patch); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid record payload")
	}

	result, err := h.service.UpdateRecord(c.Context(), c.Params("table"), c.Params("id"), patch)
	if err != nil {
		return sendStorageError(c, err, "Record not found")
	}
	return c.JSON(result)
}

// DeleteRecord removes a record from an arbitrary table, honoring the
// admin-account protections.
func (h *AdminDatabaseHandler) DeleteRecord(c *fiber.Ctx) error {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		return utils.SendUnauthorized(c)
	}

	result, err := h.service.DeleteRecord(c.Context(), c.Params("table"), c.Params("id"), admin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLastAdmin), errors.Is(err, service.ErrSelfDelete):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		}
		return sendStorageError(c, err, "Record not found")
	}
	return c.JSON(result)
}
