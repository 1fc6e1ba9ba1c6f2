package db

import "gorm.io/gorm"

type Repositories struct {
	Moods *MoodEntryRepository
	Goals *GoalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Moods: NewMoodEntryRepository(database),
		Goals: NewGoalRepository(database),
	}
}
