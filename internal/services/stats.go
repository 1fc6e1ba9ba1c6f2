package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/models"
)

const (
	DefaultRecentLimit     = 7
	DefaultChartWindowDays = 30
	MaxRecentLimit         = 100
	MaxChartWindowDays     = 365

	weeklyWindowDays  = 7
	WeeklyPeriodLabel = "last 7 days"
)

type GoalStats struct {
	TotalGoals      int `json:"total_goals"`
	CompletedToday  int `json:"completed_today"`
	LongestStreak   int `json:"longest_streak"`
	GoalsAchieved   int `json:"goals_achieved"`
	OverallProgress int `json:"overall_progress"`
}

type MoodStats struct {
	TotalEntries int     `json:"total_entries"`
	AverageMood  float64 `json:"average_mood"`
	Trend        Trend   `json:"trend"`
}

type RecentMood struct {
	Day  calendar.Day `json:"day"`
	Mood int          `json:"mood"`
	Note string       `json:"note"`
}

type MoodPoint struct {
	Day  calendar.Day `json:"day"`
	Mood int          `json:"mood"`
}

type DashboardStatistics struct {
	AverageMood     float64 `json:"average_mood"`
	ActiveGoalCount int     `json:"active_goal_count"`
	PeriodLabel     string  `json:"period_label"`
}

type DashboardSnapshot struct {
	RecentMoods   []RecentMood        `json:"recent_moods"`
	ChartSeries   []MoodPoint         `json:"chart_series"`
	Statistics    DashboardStatistics `json:"statistics"`
	WeeklyAverage float64             `json:"weekly_average"`
}

type DashboardOptions struct {
	RecentLimit     int
	ChartWindowDays int
}

// Normalized fills zero values with defaults and clamps to the maximums.
func (options DashboardOptions) Normalized() DashboardOptions {
	options.RecentLimit = clampOption(options.RecentLimit, DefaultRecentLimit, MaxRecentLimit)
	options.ChartWindowDays = clampOption(options.ChartWindowDays, DefaultChartWindowDays, MaxChartWindowDays)
	return options
}

func clampOption(value int, fallback int, limit int) int {
	if value <= 0 {
		return fallback
	}
	if value > limit {
		return limit
	}
	return value
}

// GoalStatistics summarizes goals with completion projected onto today.
func GoalStatistics(goals []models.Goal, today calendar.Day) GoalStats {
	stats := GoalStats{TotalGoals: len(goals)}
	if len(goals) == 0 {
		return stats
	}

	progressTotal := 0.0
	for _, goal := range goals {
		ProjectGoal(&goal, today)
		if goal.CompletedToday {
			stats.CompletedToday++
		}
		if goal.Streak > stats.LongestStreak {
			stats.LongestStreak = goal.Streak
		}
		if goal.Target > 0 && goal.Streak >= goal.Target {
			stats.GoalsAchieved++
		}
		progressTotal += goalProgress(goal)
	}
	stats.OverallProgress = int(math.Round(progressTotal / float64(len(goals)) * 100))
	return stats
}

func goalProgress(goal models.Goal) float64 {
	if goal.Target <= 0 {
		return 0
	}
	return math.Min(float64(goal.Streak)/float64(goal.Target), 1)
}

// MoodStatistics averages all entries and classifies the trend of the four
// most recent ones: entries 1-2 against entries 3-4.
func MoodStatistics(entries []models.MoodEntry) MoodStats {
	ordered := mostRecentFirst(entries)
	stats := MoodStats{
		TotalEntries: len(ordered),
		AverageMood:  roundToTenth(averageMood(ordered)),
		Trend:        TrendStable,
	}
	if len(ordered) >= 4 {
		stats.Trend = ClassifyTrend(
			[]int{ordered[0].Mood, ordered[1].Mood},
			[]int{ordered[2].Mood, ordered[3].Mood},
		)
	}
	return stats
}

// BuildDashboardSnapshot derives the dashboard view. Windows of N days cover
// today and the N-1 days before it.
func BuildDashboardSnapshot(entries []models.MoodEntry, goals []models.Goal, options DashboardOptions, today calendar.Day) DashboardSnapshot {
	options = options.Normalized()
	ordered := mostRecentFirst(entries)

	recentCount := options.RecentLimit
	if recentCount > len(ordered) {
		recentCount = len(ordered)
	}
	recent := make([]RecentMood, 0, recentCount)
	for _, entry := range ordered[:recentCount] {
		recent = append(recent, RecentMood{Day: entry.Day, Mood: entry.Mood, Note: entry.Note})
	}

	chartStart := today.AddDays(-(options.ChartWindowDays - 1))
	weekStart := today.AddDays(-(weeklyWindowDays - 1))
	chart := make([]MoodPoint, 0)
	weekly := make([]models.MoodEntry, 0, weeklyWindowDays)
	for index := len(ordered) - 1; index >= 0; index-- {
		entry := ordered[index]
		if entry.Day.Within(chartStart, today) {
			chart = append(chart, MoodPoint{Day: entry.Day, Mood: entry.Mood})
		}
		if entry.Day.Within(weekStart, today) {
			weekly = append(weekly, entry)
		}
	}

	activeGoals := 0
	for _, goal := range goals {
		ProjectGoal(&goal, today)
		if !goal.CompletedToday {
			activeGoals++
		}
	}

	weeklyAverage := roundToTenth(averageMood(weekly))
	return DashboardSnapshot{
		RecentMoods: recent,
		ChartSeries: chart,
		Statistics: DashboardStatistics{
			AverageMood:     weeklyAverage,
			ActiveGoalCount: activeGoals,
			PeriodLabel:     WeeklyPeriodLabel,
		},
		WeeklyAverage: weeklyAverage,
	}
}

func mostRecentFirst(entries []models.MoodEntry) []models.MoodEntry {
	ordered := make([]models.MoodEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Day.After(ordered[j].Day)
	})
	return ordered
}

func averageMood(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, entry := range entries {
		total += entry.Mood
	}
	return float64(total) / float64(len(entries))
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
