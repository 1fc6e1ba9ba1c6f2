package api

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without detail.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, operation string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return apiError(c, fiber.StatusBadRequest, validationErr.Error())
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrDuplicateEntry):
		return apiError(c, fiber.StatusConflict, "mood already logged for this day")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, "concurrent update, retry")
	default:
		handler.logger.Error("request failed",
			zap.String("operation", operation),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// invalidateDashboard drops cached snapshots after a write. Cache failures
// never fail the request.
func (handler *Handler) invalidateDashboard(ctx context.Context, userID string) {
	if err := handler.dashboardCache.Invalidate(ctx, userID); err != nil {
		handler.logger.Warn("invalidate dashboard cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func timestampOrNow(value *time.Time, now time.Time) time.Time {
	if value == nil || value.IsZero() {
		return now
	}
	return *value
}

// queryNonNegativeInt returns 0 when the parameter is absent.
func queryNonNegativeInt(c *fiber.Ctx, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

func routeID(c *fiber.Ctx) (string, bool) {
	id := strings.TrimSpace(c.Params("id"))
	return id, id != ""
}
