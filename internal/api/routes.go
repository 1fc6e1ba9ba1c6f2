package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.AuthRequired)

	moods := api.Group("/moods")
	moods.Get("", handler.ListMoods)
	moods.Post("", handler.RecordMood)
	moods.Get("/stats", handler.MoodStatistics)
	moods.Patch("/:id", handler.UpdateMood)
	moods.Delete("/:id", handler.DeleteMood)

	goals := api.Group("/goals")
	goals.Get("", handler.ListGoals)
	goals.Post("", handler.CreateGoal)
	goals.Get("/stats", handler.GoalStatistics)
	goals.Patch("/:id", handler.UpdateGoal)
	goals.Delete("/:id", handler.DeactivateGoal)
	goals.Post("/:id/toggle", handler.ToggleGoal)

	api.Get("/dashboard", handler.Dashboard)
}
