package db

import (
	"context"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	return repo.database.WithContext(ctx).Create(goal).Error
}

// FindActiveByIDForUser returns the goal only when it exists, belongs to
// userID and has not been deactivated.
func (repo *GoalRepository) FindActiveByIDForUser(ctx context.Context, goalID string, userID string) (models.Goal, bool, error) {
	goal := models.Goal{}
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ? AND active = ?", goalID, userID, true).
		Limit(1).
		Find(&goal)
	if result.Error != nil {
		return models.Goal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Goal{}, false, nil
	}
	return goal, true, nil
}

func (repo *GoalRepository) ListActiveByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC, id ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// UpdateHistory writes history and streak only if the stored version still
// equals expectedVersion. A false result means another writer got there first.
func (repo *GoalRepository) UpdateHistory(ctx context.Context, goal *models.Goal, expectedVersion int) (bool, error) {
	result := repo.database.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND user_id = ? AND version = ?", goal.ID, goal.UserID, expectedVersion).
		Updates(map[string]any{
			"completion_history": goal.CompletionHistory,
			"streak":             goal.Streak,
			"version":            expectedVersion + 1,
			"updated_at":         goal.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	goal.Version = expectedVersion + 1
	return true, nil
}

// UpdateDetails writes the editable descriptive fields under the same
// version check as UpdateHistory.
func (repo *GoalRepository) UpdateDetails(ctx context.Context, goal *models.Goal, expectedVersion int) (bool, error) {
	result := repo.database.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND user_id = ? AND version = ? AND active = ?", goal.ID, goal.UserID, expectedVersion, true).
		Updates(map[string]any{
			"title":       goal.Title,
			"description": goal.Description,
			"category":    goal.Category,
			"target":      goal.Target,
			"icon":        goal.Icon,
			"color":       goal.Color,
			"version":     expectedVersion + 1,
			"updated_at":  goal.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	goal.Version = expectedVersion + 1
	return true, nil
}

// Deactivate flips active off and keeps history. It reports whether an
// active goal owned by userID matched.
func (repo *GoalRepository) Deactivate(ctx context.Context, goalID string, userID string, now time.Time) (bool, error) {
	result := repo.database.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND user_id = ? AND active = ?", goalID, userID, true).
		Updates(map[string]any{
			"active":     false,
			"version":    gorm.Expr("version + 1"),
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
