package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultStepGoal = 10000

// StepEntry holds one day of step tracking. Steps accumulate across updates
// within the day; the goal is replaced.
type StepEntry struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement"                       json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_steps_user_date"      json:"userId"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_steps_user_date"     json:"date"`
	Steps     int       `gorm:"type:int;not null;default:0"                             json:"steps"`
	Goal      int       `gorm:"type:int;not null;default:10000"                         json:"goal"`
	CreatedAt time.Time `gorm:"autoCreateTime"                                          json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                                          json:"updatedAt"`
}

func (StepEntry) TableName() string {
	return "steps"
}

// GoalMet reports whether the day's goal was reached.
func (s *StepEntry) GoalMet() bool {
	return s.Goal > 0 && s.Steps >= s.Goal
}
