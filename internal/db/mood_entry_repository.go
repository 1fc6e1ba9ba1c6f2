package db

import (
	"context"
	"errors"
	"strings"

	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
)

type MoodEntryRepository struct {
	database *gorm.DB
}

func NewMoodEntryRepository(database *gorm.DB) *MoodEntryRepository {
	return &MoodEntryRepository{database: database}
}

// CreateUnique inserts entry and reports false when a live entry already
// exists for the same user and day.
func (repo *MoodEntryRepository) CreateUnique(ctx context.Context, entry *models.MoodEntry) (bool, error) {
	err := repo.database.WithContext(ctx).Create(entry).Error
	if err == nil {
		return true, nil
	}
	if isUniqueViolation(err) {
		return false, nil
	}
	return false, err
}

func (repo *MoodEntryRepository) FindByIDForUser(ctx context.Context, entryID string, userID string) (models.MoodEntry, bool, error) {
	entry := models.MoodEntry{}
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.MoodEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MoodEntry{}, false, nil
	}
	return entry, true, nil
}

// UpdateValues writes mood and note and reports whether a live row owned by
// entry.UserID matched.
func (repo *MoodEntryRepository) UpdateValues(ctx context.Context, entry *models.MoodEntry) (bool, error) {
	result := repo.database.WithContext(ctx).
		Model(&models.MoodEntry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]any{
			"mood":       entry.Mood,
			"note":       entry.Note,
			"updated_at": entry.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SoftDelete marks the entry deleted and reports whether a live row matched.
func (repo *MoodEntryRepository) SoftDelete(ctx context.Context, entryID string, userID string) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.MoodEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser returns live entries on or after sinceDay when it is set. A
// non-positive limit means no limit.
func (repo *MoodEntryRepository) ListByUser(ctx context.Context, userID string, sinceDay *calendar.Day, ascending bool, limit int) ([]models.MoodEntry, error) {
	query := repo.database.WithContext(ctx).Where("user_id = ?", userID)
	if sinceDay != nil {
		query = query.Where("day >= ?", *sinceDay)
	}
	if ascending {
		query = query.Order("day ASC, created_at ASC")
	} else {
		query = query.Order("day DESC, created_at DESC")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	entries := make([]models.MoodEntry, 0)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
