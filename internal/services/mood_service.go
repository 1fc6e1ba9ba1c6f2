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

type MoodRepository interface {
	CreateUnique(ctx context.Context, entry *models.MoodEntry) (bool, error)
	FindByIDForUser(ctx context.Context, entryID string, userID string) (models.MoodEntry, bool, error)
	UpdateValues(ctx context.Context, entry *models.MoodEntry) (bool, error)
	SoftDelete(ctx context.Context, entryID string, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string, sinceDay *calendar.Day, ascending bool, limit int) ([]models.MoodEntry, error)
}

type MoodService struct {
	moods      MoodRepository
	normalizer calendar.Normalizer
}

// MoodPatch carries the fields UpdateMood may change. Nil leaves a field as is.
type MoodPatch struct {
	Mood *int
	Note *string
}

type MoodListOptions struct {
	Limit     int
	SinceDay  *calendar.Day
	Ascending bool
}

type moodInput struct {
	Mood int    `json:"mood" validate:"gte=1,lte=5"`
	Note string `json:"note" validate:"max=2000"`
}

func NewMoodService(moods MoodRepository, normalizer calendar.Normalizer) *MoodService {
	return &MoodService{
		moods:      moods,
		normalizer: normalizer,
	}
}

// RecordMood stores one mood for the calendar day of timestamp. A second
// entry for the same day fails with ErrDuplicateEntry; days after the day of
// now are rejected.
func (service *MoodService) RecordMood(ctx context.Context, userID string, mood int, note string, timestamp time.Time, now time.Time) (models.MoodEntry, error) {
	note = strings.TrimSpace(note)
	if err := validateInput(moodInput{Mood: mood, Note: note}); err != nil {
		return models.MoodEntry{}, err
	}

	day := service.normalizer.Day(timestamp)
	if day.After(service.normalizer.Day(now)) {
		return models.MoodEntry{}, errFutureDay
	}

	entry := models.MoodEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       day,
		Mood:      mood,
		Note:      note,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	created, err := service.moods.CreateUnique(ctx, &entry)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("create mood entry: %w", err)
	}
	if !created {
		return models.MoodEntry{}, ErrDuplicateEntry
	}
	return entry, nil
}

func (service *MoodService) UpdateMood(ctx context.Context, userID string, entryID string, patch MoodPatch, now time.Time) (models.MoodEntry, error) {
	entry, found, err := service.moods.FindByIDForUser(ctx, entryID, userID)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("load mood entry: %w", err)
	}
	if !found {
		return models.MoodEntry{}, ErrNotFound
	}

	if patch.Mood != nil {
		entry.Mood = *patch.Mood
	}
	if patch.Note != nil {
		entry.Note = strings.TrimSpace(*patch.Note)
	}
	if err := validateInput(moodInput{Mood: entry.Mood, Note: entry.Note}); err != nil {
		return models.MoodEntry{}, err
	}

	entry.UpdatedAt = now.UTC()
	updated, err := service.moods.UpdateValues(ctx, &entry)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("update mood entry: %w", err)
	}
	if !updated {
		return models.MoodEntry{}, ErrNotFound
	}
	return entry, nil
}

func (service *MoodService) DeleteMood(ctx context.Context, userID string, entryID string) error {
	deleted, err := service.moods.SoftDelete(ctx, entryID, userID)
	if err != nil {
		return fmt.Errorf("delete mood entry: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// ListMoods returns entries by day, most recent first unless Ascending is set.
func (service *MoodService) ListMoods(ctx context.Context, userID string, options MoodListOptions) ([]models.MoodEntry, error) {
	if options.Limit < 0 {
		return nil, &ValidationError{Field: "limit", Constraint: "must be at least 0"}
	}
	entries, err := service.moods.ListByUser(ctx, userID, options.SinceDay, options.Ascending, options.Limit)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	return entries, nil
}
