package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/models"
)

const (
	maxToggleAttempts = 5
	defaultGoalIcon   = "🎯"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	FindActiveByIDForUser(ctx context.Context, goalID string, userID string) (models.Goal, bool, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.Goal, error)
	UpdateHistory(ctx context.Context, goal *models.Goal, expectedVersion int) (bool, error)
	UpdateDetails(ctx context.Context, goal *models.Goal, expectedVersion int) (bool, error)
	Deactivate(ctx context.Context, goalID string, userID string, now time.Time) (bool, error)
}

type GoalService struct {
	goals      GoalRepository
	normalizer calendar.Normalizer
}

type NewGoal struct {
	Title       string
	Description string
	Category    string
	Target      int
	Icon        string
	Color       string
}

// GoalPatch carries the fields UpdateGoal may change. Nil leaves a field as is.
type GoalPatch struct {
	Title       *string
	Description *string
	Category    *string
	Target      *int
	Icon        *string
	Color       *string
}

type goalInput struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"goalcategory"`
	Target      int    `json:"target" validate:"gte=1,lte=365"`
	Icon        string `json:"icon" validate:"max=16"`
	Color       string `json:"color" validate:"omitempty,rgbhex"`
}

func NewGoalService(goals GoalRepository, normalizer calendar.Normalizer) *GoalService {
	return &GoalService{
		goals:      goals,
		normalizer: normalizer,
	}
}

func validateGoal(goal *models.Goal) error {
	return validateInput(goalInput{
		Title:       goal.Title,
		Description: goal.Description,
		Category:    goal.Category,
		Target:      goal.Target,
		Icon:        goal.Icon,
		Color:       goal.Color,
	})
}

func (service *GoalService) CreateGoal(ctx context.Context, userID string, input NewGoal, now time.Time) (models.Goal, error) {
	goal := models.Goal{
		ID:                uuid.NewString(),
		UserID:            userID,
		Title:             strings.TrimSpace(input.Title),
		Description:       strings.TrimSpace(input.Description),
		Category:          strings.ToLower(strings.TrimSpace(input.Category)),
		Target:            input.Target,
		Icon:              strings.TrimSpace(input.Icon),
		Color:             strings.TrimSpace(input.Color),
		CompletionHistory: models.CompletionHistory{},
		Active:            true,
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
	if goal.Icon == "" {
		goal.Icon = defaultGoalIcon
	}
	if err := validateGoal(&goal); err != nil {
		return models.Goal{}, err
	}

	if err := service.goals.Create(ctx, &goal); err != nil {
		return models.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	ProjectGoal(&goal, service.normalizer.Day(now))
	return goal, nil
}

// Toggle flips the completion of the calendar day of timestamp. Lost races
// on the goal version are retried with a fresh read.
func (service *GoalService) Toggle(ctx context.Context, userID string, goalID string, timestamp time.Time, now time.Time) (models.Goal, error) {
	day := service.normalizer.Day(timestamp)
	today := service.normalizer.Day(now)
	if day.After(today) {
		return models.Goal{}, errFutureDay
	}

	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.Goal{}, err
		}

		goal, found, err := service.goals.FindActiveByIDForUser(ctx, goalID, userID)
		if err != nil {
			return models.Goal{}, fmt.Errorf("load goal: %w", err)
		}
		if !found {
			return models.Goal{}, ErrNotFound
		}

		expectedVersion := goal.Version
		goal.CompletionHistory = ToggleHistory(goal.CompletionHistory, day)
		goal.UpdatedAt = now.UTC()
		ProjectGoal(&goal, today)

		updated, err := service.goals.UpdateHistory(ctx, &goal, expectedVersion)
		if err != nil {
			return models.Goal{}, fmt.Errorf("update goal history: %w", err)
		}
		if updated {
			return goal, nil
		}
	}
	return models.Goal{}, ErrConflict
}

func (service *GoalService) UpdateGoal(ctx context.Context, userID string, goalID string, patch GoalPatch, now time.Time) (models.Goal, error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.Goal{}, err
		}

		goal, found, err := service.goals.FindActiveByIDForUser(ctx, goalID, userID)
		if err != nil {
			return models.Goal{}, fmt.Errorf("load goal: %w", err)
		}
		if !found {
			return models.Goal{}, ErrNotFound
		}

		applyGoalPatch(&goal, patch)
		if err := validateGoal(&goal); err != nil {
			return models.Goal{}, err
		}
		goal.UpdatedAt = now.UTC()

		updated, err := service.goals.UpdateDetails(ctx, &goal, goal.Version)
		if err != nil {
			return models.Goal{}, fmt.Errorf("update goal: %w", err)
		}
		if updated {
			ProjectGoal(&goal, service.normalizer.Day(now))
			return goal, nil
		}
	}
	return models.Goal{}, ErrConflict
}

func applyGoalPatch(goal *models.Goal, patch GoalPatch) {
	if patch.Title != nil {
		goal.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		goal.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		goal.Category = strings.ToLower(strings.TrimSpace(*patch.Category))
	}
	if patch.Target != nil {
		goal.Target = *patch.Target
	}
	if patch.Icon != nil {
		goal.Icon = strings.TrimSpace(*patch.Icon)
		if goal.Icon == "" {
			goal.Icon = defaultGoalIcon
		}
	}
	if patch.Color != nil {
		goal.Color = strings.TrimSpace(*patch.Color)
	}
}

func (service *GoalService) DeactivateGoal(ctx context.Context, userID string, goalID string, now time.Time) error {
	deactivated, err := service.goals.Deactivate(ctx, goalID, userID, now)
	if err != nil {
		return fmt.Errorf("deactivate goal: %w", err)
	}
	if !deactivated {
		return ErrNotFound
	}
	return nil
}

// ListGoals returns the active goals with derived fields projected onto now.
func (service *GoalService) ListGoals(ctx context.Context, userID string, now time.Time) ([]models.Goal, error) {
	goals, err := service.goals.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	today := service.normalizer.Day(now)
	for index := range goals {
		ProjectGoal(&goals[index], today)
	}
	return goals, nil
}
