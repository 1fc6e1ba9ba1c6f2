package services

import (
	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/models"
)

// ToggleHistory returns a copy of history with day flipped: a record for day
// is removed, otherwise a completed record is inserted in day order.
func ToggleHistory(history models.CompletionHistory, day calendar.Day) models.CompletionHistory {
	sorted := history.Sorted()
	if index := sorted.Find(day); index >= 0 {
		return append(sorted[:index:index], sorted[index+1:]...)
	}

	insertAt := len(sorted)
	for index, record := range sorted {
		if record.Day.After(day) {
			insertAt = index
			break
		}
	}
	toggled := make(models.CompletionHistory, 0, len(sorted)+1)
	toggled = append(toggled, sorted[:insertAt]...)
	toggled = append(toggled, models.CompletionRecord{Day: day, Completed: true})
	toggled = append(toggled, sorted[insertAt:]...)
	return toggled
}

// HistoryReplay is the state derived from a completion history.
type HistoryReplay struct {
	Streak           int
	LastCompletedDay *calendar.Day
}

// ReplayHistory rebuilds streak and the last completed day from scratch.
func ReplayHistory(history models.CompletionHistory) HistoryReplay {
	replay := HistoryReplay{}
	seen := make(map[calendar.Day]struct{}, len(history))
	for _, record := range history {
		if !record.Completed {
			continue
		}
		if _, duplicate := seen[record.Day]; duplicate {
			continue
		}
		seen[record.Day] = struct{}{}
		replay.Streak++

		day := record.Day
		if replay.LastCompletedDay == nil || day.After(*replay.LastCompletedDay) {
			replay.LastCompletedDay = &day
		}
	}
	return replay
}

// ProjectGoal fills the derived fields of goal against today.
func ProjectGoal(goal *models.Goal, today calendar.Day) {
	replay := ReplayHistory(goal.CompletionHistory)
	goal.Streak = replay.Streak
	goal.LastCompletedDay = replay.LastCompletedDay
	goal.CompletedToday = replay.LastCompletedDay != nil && *replay.LastCompletedDay == today
}
