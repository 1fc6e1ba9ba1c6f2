package api

import (
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.moodService = services.NewMoodService(handler.repositories.Moods, handler.normalizer)
	handler.goalService = services.NewGoalService(handler.repositories.Goals, handler.normalizer)
	handler.statsService = services.NewStatsService(handler.repositories.Moods, handler.repositories.Goals, handler.normalizer)
	return handler
}
