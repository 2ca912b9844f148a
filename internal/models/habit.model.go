package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitStatus string

const (
	HabitStatusPending HabitStatus = "pending"
	HabitStatusDone    HabitStatus = "done"
)

// Habit is the live daily state of a user-defined habit. Status flips to done
// when the user completes it and back to pending at the nightly reset.
// Invariant: StatusDate is non-nil iff Status is done.
type Habit struct {
	BaseModel
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_habits_user" json:"userId"`
	Name       string      `gorm:"column:habit_name;type:text;not null"     json:"name"`
	Status     HabitStatus `gorm:"type:text;not null;default:'pending'"     json:"status"`
	StatusDate *time.Time  `gorm:"type:date"                                json:"statusDate,omitempty"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return gorm.ErrInvalidValue
	}
	if h.Status == "" {
		h.Status = HabitStatusPending
	}
	return nil
}

// HabitLog is the append-only completion history. A row means the habit was
// done on that date; absence means it was not. Rows are never updated.
type HabitLog struct {
	ID        int         `gorm:"type:int;primaryKey;autoIncrement"                        json:"id"`
	HabitID   int         `gorm:"type:int;not null;uniqueIndex:idx_habit_logs_habit_date"  json:"habitId"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_habit_logs_user"             json:"userId"`
	Date      time.Time   `gorm:"type:date;not null;uniqueIndex:idx_habit_logs_habit_date" json:"date"`
	Status    HabitStatus `gorm:"type:text;not null;default:'done'"                        json:"status"`
	CreatedAt time.Time   `gorm:"autoCreateTime"                                           json:"createdAt"`
}

// HabitStreak is the derived display value for one habit: consecutive days
// completed ending yesterday, with today reported separately so an
// in-progress day never breaks a run.
type HabitStreak struct {
	HabitID        int  `json:"habitId"`
	Streak         int  `json:"streak"`
	CompletedToday bool `json:"completedToday"`
}
