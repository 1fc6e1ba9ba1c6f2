package models

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/calendar"
	"gorm.io/gorm"
)

const (
	MinMood = 1
	MaxMood = 5
)

type MoodEntry struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"not null;index" json:"-"`
	Day       calendar.Day   `gorm:"not null" json:"day"`
	Mood      int            `gorm:"not null" json:"mood"`
	Note      string         `gorm:"not null;default:''" json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
