package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/services"
)

type moodPayload struct {
	Mood      int        `json:"mood"`
	Note      string     `json:"note"`
	Timestamp *time.Time `json:"timestamp"`
}

type moodPatchPayload struct {
	Mood *int    `json:"mood"`
	Note *string `json:"note"`
}

func (handler *Handler) ListMoods(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit, ok := queryNonNegativeInt(c, "limit")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}
	options := services.MoodListOptions{Limit: limit}

	if rawSince := strings.TrimSpace(c.Query("since")); rawSince != "" {
		since, err := calendar.ParseDay(rawSince)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid since date")
		}
		options.SinceDay = &since
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("order"))) {
	case "", "desc":
	case "asc":
		options.Ascending = true
	default:
		return apiError(c, fiber.StatusBadRequest, "invalid order")
	}

	entries, err := handler.moodService.ListMoods(c.UserContext(), userID, options)
	if err != nil {
		return handler.respondServiceError(c, err, "list moods")
	}
	return c.JSON(entries)
}

func (handler *Handler) RecordMood(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := moodPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	timestamp := timestampOrNow(payload.Timestamp, now)
	entry, err := handler.moodService.RecordMood(c.UserContext(), userID, payload.Mood, payload.Note, timestamp, now)
	if err != nil {
		return handler.respondServiceError(c, err, "record mood")
	}

	handler.invalidateDashboard(c.UserContext(), userID)
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateMood(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	entryID, ok := routeID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	payload := moodPatchPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.moodService.UpdateMood(c.UserContext(), userID, entryID, services.MoodPatch{
		Mood: payload.Mood,
		Note: payload.Note,
	}, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "update mood")
	}

	handler.invalidateDashboard(c.UserContext(), userID)
	return c.JSON(entry)
}

func (handler *Handler) DeleteMood(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	entryID, ok := routeID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.moodService.DeleteMood(c.UserContext(), userID, entryID); err != nil {
		return handler.respondServiceError(c, err, "delete mood")
	}

	handler.invalidateDashboard(c.UserContext(), userID)
	return c.SendStatus(fiber.StatusNoContent)
}
