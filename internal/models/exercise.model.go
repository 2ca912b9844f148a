package models

import (
	"time"

	"github.com/google/uuid"
)

type ExerciseLog struct {
	ID          int       `gorm:"type:int;primaryKey;autoIncrement"           json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_exercises_user" json:"userId"`
	ExerciseKey string    `gorm:"type:text;not null"                          json:"exerciseKey"`
	DurationSec int       `gorm:"type:int;not null"                           json:"durationSec"`
	CompletedAt time.Time `gorm:"type:timestamp;not null"                     json:"completedAt"`
}

// ExerciseSuggestion is a mood-keyed workout recommendation. The catalog is
// static; only completions are persisted.
type ExerciseSuggestion struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	DurationMin int    `json:"durationMin"`
	Description string `json:"description"`
}

// DayCount is a generic per-day completion count for activity graphs.
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
