package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/models"
)

type StatsMoodReader interface {
	ListByUser(ctx context.Context, userID string, sinceDay *calendar.Day, ascending bool, limit int) ([]models.MoodEntry, error)
}

type StatsGoalReader interface {
	ListActiveByUser(ctx context.Context, userID string) ([]models.Goal, error)
}

type StatsService struct {
	moods      StatsMoodReader
	goals      StatsGoalReader
	normalizer calendar.Normalizer
}

func NewStatsService(moods StatsMoodReader, goals StatsGoalReader, normalizer calendar.Normalizer) *StatsService {
	return &StatsService{
		moods:      moods,
		goals:      goals,
		normalizer: normalizer,
	}
}

func (service *StatsService) MoodStatistics(ctx context.Context, userID string) (MoodStats, error) {
	entries, err := service.moods.ListByUser(ctx, userID, nil, false, 0)
	if err != nil {
		return MoodStats{}, fmt.Errorf("load mood entries: %w", err)
	}
	return MoodStatistics(entries), nil
}

func (service *StatsService) GoalStatistics(ctx context.Context, userID string, now time.Time) (GoalStats, error) {
	goals, err := service.goals.ListActiveByUser(ctx, userID)
	if err != nil {
		return GoalStats{}, fmt.Errorf("load goals: %w", err)
	}
	return GoalStatistics(goals, service.normalizer.Day(now)), nil
}

// DashboardSnapshot loads the most recent entries plus every entry inside the
// larger of the chart and weekly windows.
func (service *StatsService) DashboardSnapshot(ctx context.Context, userID string, options DashboardOptions, now time.Time) (DashboardSnapshot, error) {
	options = options.Normalized()
	today := service.normalizer.Day(now)

	recent, err := service.moods.ListByUser(ctx, userID, nil, false, options.RecentLimit)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("load recent mood entries: %w", err)
	}

	windowDays := options.ChartWindowDays
	if windowDays < weeklyWindowDays {
		windowDays = weeklyWindowDays
	}
	windowStart := today.AddDays(-(windowDays - 1))
	windowed, err := service.moods.ListByUser(ctx, userID, &windowStart, true, 0)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("load windowed mood entries: %w", err)
	}

	goals, err := service.goals.ListActiveByUser(ctx, userID)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("load goals: %w", err)
	}

	return BuildDashboardSnapshot(mergeEntries(recent, windowed), goals, options, today), nil
}

func mergeEntries(first []models.MoodEntry, second []models.MoodEntry) []models.MoodEntry {
	merged := make([]models.MoodEntry, 0, len(first)+len(second))
	seen := make(map[string]struct{}, len(first)+len(second))
	for _, group := range [][]models.MoodEntry{first, second} {
		for _, entry := range group {
			if _, duplicate := seen[entry.ID]; duplicate {
				continue
			}
			seen[entry.ID] = struct{}{}
			merged = append(merged, entry)
		}
	}
	return merged
}
