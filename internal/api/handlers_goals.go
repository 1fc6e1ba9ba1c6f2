package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

type goalPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Target      int    `json:"target"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type goalPatchPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Target      *int    `json:"target"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
}

type togglePayload struct {
	Timestamp *time.Time `json:"timestamp"`
}

func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goals, err := handler.goalService.ListGoals(c.UserContext(), userID, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "list goals")
	}
	return c.JSON(goals)
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := goalPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	goal, err := handler.goalService.CreateGoal(c.UserContext(), userID, services.NewGoal{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Target:      payload.Target,
		Icon:        payload.Icon,
		Color:       payload.Color,
	}, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "create goal")
	}

	handler.invalidateDashboard(c.UserContext(), userID)
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) UpdateGoal(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, ok := routeID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	payload := goalPatchPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	goal, err := handler.goalService.UpdateGoal(c.UserContext(), userID, goalID, services.GoalPatch{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Target:      payload.Target,
		Icon:        payload.Icon,
		Color:       payload.Color,
	}, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "update goal")
	}

	handler.invalidateDashboard(c.UserContext(), userID)
	return c.JSON(goal)
}

func (handler *Handler) DeactivateGoal(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, ok := routeID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.goalService.DeactivateGoal(c.UserContext(), userID, goalID, handler.now()); err != nil {
		return handler.respondServiceError(c, err, "deactivate goal")
	}

	handler.invalidateDashboard(c.UserContext(), userID)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ToggleGoal(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, ok := routeID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	payload := togglePayload{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	}

	now := handler.now()
	goal, err := handler.goalService.Toggle(c.UserContext(), userID, goalID, timestampOrNow(payload.Timestamp, now), now)
	if err != nil {
		return handler.respondServiceError(c, err, "toggle goal")
	}

	handler.invalidateDashboard(c.UserContext(), userID)
	return c.JSON(goal)
}
