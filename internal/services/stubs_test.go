package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/models"
)

var testLocation = time.FixedZone("test", -5*60*60)

func testNormalizer() calendar.Normalizer {
	return calendar.NewNormalizer(testLocation, calendar.FixedClock{Instant: testNow})
}

// 2026-10-15 12:00 in testLocation.
var testNow = time.Date(2026, time.October, 15, 17, 0, 0, 0, time.UTC)

func localNoon(day string) time.Time {
	return calendar.MustParseDay(day).StartIn(testLocation).Add(12 * time.Hour)
}

type stubMoodRepo struct {
	mu       sync.Mutex
	entries  map[string]models.MoodEntry
	writes   int
	failWith error
	// deleteBeforeUpdate removes the entry just before UpdateValues applies.
	deleteBeforeUpdate bool
}

func newStubMoodRepo() *stubMoodRepo {
	return &stubMoodRepo{entries: make(map[string]models.MoodEntry)}
}

func (stub *stubMoodRepo) CreateUnique(_ context.Context, entry *models.MoodEntry) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failWith != nil {
		return false, stub.failWith
	}
	for _, existing := range stub.entries {
		if existing.UserID == entry.UserID && existing.Day == entry.Day {
			return false, nil
		}
	}
	stub.entries[entry.ID] = *entry
	stub.writes++
	return true, nil
}

func (stub *stubMoodRepo) FindByIDForUser(_ context.Context, entryID string, userID string) (models.MoodEntry, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failWith != nil {
		return models.MoodEntry{}, false, stub.failWith
	}
	entry, ok := stub.entries[entryID]
	if !ok || entry.UserID != userID {
		return models.MoodEntry{}, false, nil
	}
	return entry, true, nil
}

func (stub *stubMoodRepo) UpdateValues(_ context.Context, entry *models.MoodEntry) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.deleteBeforeUpdate {
		delete(stub.entries, entry.ID)
	}
	existing, ok := stub.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return false, nil
	}
	stub.entries[entry.ID] = *entry
	stub.writes++
	return true, nil
}

func (stub *stubMoodRepo) SoftDelete(_ context.Context, entryID string, userID string) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	entry, ok := stub.entries[entryID]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(stub.entries, entryID)
	stub.writes++
	return true, nil
}

func (stub *stubMoodRepo) ListByUser(_ context.Context, userID string, sinceDay *calendar.Day, ascending bool, limit int) ([]models.MoodEntry, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failWith != nil {
		return nil, stub.failWith
	}
	entries := make([]models.MoodEntry, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if sinceDay != nil && entry.Day.Before(*sinceDay) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if ascending {
			return entries[i].Day.Before(entries[j].Day)
		}
		return entries[i].Day.After(entries[j].Day)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (stub *stubMoodRepo) add(userID string, day string, mood int) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	id := userID + "-" + day
	stub.entries[id] = models.MoodEntry{ID: id, UserID: userID, Day: calendar.MustParseDay(day), Mood: mood}
}

type stubGoalRepo struct {
	mu    sync.Mutex
	goals map[string]models.Goal
	// interferences simulates another writer bumping the version right
	// before each of the next N conditional updates.
	interferences int
	updateCalls   int
	failWith      error
}

func newStubGoalRepo() *stubGoalRepo {
	return &stubGoalRepo{goals: make(map[string]models.Goal)}
}

func (stub *stubGoalRepo) Create(_ context.Context, goal *models.Goal) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failWith != nil {
		return stub.failWith
	}
	stub.goals[goal.ID] = cloneGoal(*goal)
	return nil
}

func (stub *stubGoalRepo) FindActiveByIDForUser(_ context.Context, goalID string, userID string) (models.Goal, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failWith != nil {
		return models.Goal{}, false, stub.failWith
	}
	goal, ok := stub.goals[goalID]
	if !ok || goal.UserID != userID || !goal.Active {
		return models.Goal{}, false, nil
	}
	return cloneGoal(goal), true, nil
}

func (stub *stubGoalRepo) ListActiveByUser(_ context.Context, userID string) ([]models.Goal, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.failWith != nil {
		return nil, stub.failWith
	}
	goals := make([]models.Goal, 0)
	for _, goal := range stub.goals {
		if goal.UserID == userID && goal.Active {
			goals = append(goals, cloneGoal(goal))
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (stub *stubGoalRepo) conditionalWrite(goal *models.Goal, expectedVersion int, apply func(stored *models.Goal)) bool {
	stub.updateCalls++
	stored, ok := stub.goals[goal.ID]
	if !ok || stored.UserID != goal.UserID {
		return false
	}
	if stub.interferences > 0 {
		stub.interferences--
		stored.Version++
		stub.goals[goal.ID] = stored
	}
	if stored.Version != expectedVersion {
		return false
	}
	apply(&stored)
	stored.Version = expectedVersion + 1
	stub.goals[goal.ID] = stored
	goal.Version = expectedVersion + 1
	return true
}

func (stub *stubGoalRepo) UpdateHistory(_ context.Context, goal *models.Goal, expectedVersion int) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.conditionalWrite(goal, expectedVersion, func(stored *models.Goal) {
		stored.CompletionHistory = append(models.CompletionHistory{}, goal.CompletionHistory...)
		stored.Streak = goal.Streak
	}), nil
}

func (stub *stubGoalRepo) UpdateDetails(_ context.Context, goal *models.Goal, expectedVersion int) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.conditionalWrite(goal, expectedVersion, func(stored *models.Goal) {
		stored.Title = goal.Title
		stored.Description = goal.Description
		stored.Category = goal.Category
		stored.Target = goal.Target
		stored.Icon = goal.Icon
		stored.Color = goal.Color
	}), nil
}

func (stub *stubGoalRepo) Deactivate(_ context.Context, goalID string, userID string, now time.Time) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	goal, ok := stub.goals[goalID]
	if !ok || goal.UserID != userID || !goal.Active {
		return false, nil
	}
	goal.Active = false
	goal.UpdatedAt = now.UTC()
	goal.Version++
	stub.goals[goalID] = goal
	return true, nil
}

func (stub *stubGoalRepo) stored(goalID string) models.Goal {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return cloneGoal(stub.goals[goalID])
}

func cloneGoal(goal models.Goal) models.Goal {
	goal.CompletionHistory = append(models.CompletionHistory{}, goal.CompletionHistory...)
	return goal
}
