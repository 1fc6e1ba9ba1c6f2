package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/wellnest/internal/calendar"
)

const (
	CategoryMental   = "mental"
	CategoryPhysical = "physical"
	CategorySleep    = "sleep"
	CategorySocial   = "social"
	CategoryCreative = "creative"
)

const (
	MinGoalTarget = 1
	MaxGoalTarget = 365
)

func GoalCategories() []string {
	return []string{CategoryMental, CategoryPhysical, CategorySleep, CategorySocial, CategoryCreative}
}

type CompletionRecord struct {
	Day       calendar.Day `json:"day"`
	Completed bool         `json:"completed"`
}

// CompletionHistory is stored as a JSON array inside the goal row.
type CompletionHistory []CompletionRecord

func (history CompletionHistory) Value() (driver.Value, error) {
	if history == nil {
		history = CompletionHistory{}
	}
	encoded, err := json.Marshal([]CompletionRecord(history))
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

func (history *CompletionHistory) Scan(source any) error {
	var raw []byte
	switch value := source.(type) {
	case nil:
		*history = CompletionHistory{}
		return nil
	case string:
		raw = []byte(value)
	case []byte:
		raw = value
	default:
		return fmt.Errorf("scan completion history: unsupported type %T", source)
	}
	if len(raw) == 0 {
		*history = CompletionHistory{}
		return nil
	}

	records := make([]CompletionRecord, 0)
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("scan completion history: %w", err)
	}
	*history = records
	return nil
}

func (CompletionHistory) GormDataType() string {
	return "text"
}

// Find returns the index of the record for day, or -1.
func (history CompletionHistory) Find(day calendar.Day) int {
	for index, record := range history {
		if record.Day == day {
			return index
		}
	}
	return -1
}

func (history CompletionHistory) Sorted() CompletionHistory {
	sorted := make(CompletionHistory, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Day.Before(sorted[j].Day)
	})
	return sorted
}

type Goal struct {
	ID                string            `gorm:"primaryKey" json:"id"`
	UserID            string            `gorm:"not null;index" json:"-"`
	Title             string            `gorm:"not null" json:"title"`
	Description       string            `gorm:"not null;default:''" json:"description"`
	Category          string            `gorm:"not null" json:"category"`
	Target            int               `gorm:"not null" json:"target"`
	Icon              string            `gorm:"not null;default:''" json:"icon"`
	Color             string            `gorm:"not null;default:''" json:"color"`
	Streak            int               `gorm:"not null;default:0" json:"streak"`
	CompletionHistory CompletionHistory `gorm:"not null" json:"completion_history"`
	Active            bool              `gorm:"not null;default:true" json:"active"`
	Version           int               `gorm:"not null;default:0" json:"-"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	CompletedToday   bool          `gorm:"-" json:"completed_today"`
	LastCompletedDay *calendar.Day `gorm:"-" json:"last_completed_day"`
}
