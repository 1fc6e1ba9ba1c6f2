package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/cache"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

const cacheStatusHeader = "X-Cache"

func (handler *Handler) MoodStatistics(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.statsService.MoodStatistics(c.UserContext(), userID)
	if err != nil {
		return handler.respondServiceError(c, err, "mood statistics")
	}
	return c.JSON(stats)
}

func (handler *Handler) GoalStatistics(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.statsService.GoalStatistics(c.UserContext(), userID, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "goal statistics")
	}
	return c.JSON(stats)
}

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recent, ok := queryNonNegativeInt(c, "recent")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid recent")
	}
	window, ok := queryNonNegativeInt(c, "window")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid window")
	}
	options := services.DashboardOptions{RecentLimit: recent, ChartWindowDays: window}.Normalized()

	now := handler.now()
	ctx := c.UserContext()
	key := cache.DashboardKey{
		UserID:          userID,
		Day:             handler.normalizer.Day(now),
		RecentLimit:     options.RecentLimit,
		ChartWindowDays: options.ChartWindowDays,
	}

	lookup, err := handler.dashboardCache.Get(ctx, key)
	cacheAvailable := err == nil
	if !cacheAvailable {
		handler.logger.Warn("read dashboard cache", zap.String("user_id", userID), zap.Error(err))
	} else if lookup.Hit {
		c.Set(cacheStatusHeader, "HIT")
		return c.JSON(lookup.Snapshot)
	}

	snapshot, err := handler.statsService.DashboardSnapshot(ctx, userID, options, now)
	if err != nil {
		return handler.respondServiceError(c, err, "dashboard")
	}

	if cacheAvailable {
		if err := handler.dashboardCache.Set(ctx, lookup, snapshot); err != nil {
			handler.logger.Warn("write dashboard cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	c.Set(cacheStatusHeader, "MISS")
	return c.JSON(snapshot)
}
