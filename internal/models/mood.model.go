package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Known moods. Entries outside this set are stored as-is; the set only
// drives chat tone and quote matching.
const (
	MoodHappy   = "happy"
	MoodExcited = "excited"
	MoodCalm    = "calm"
	MoodNeutral = "neutral"
	MoodSad     = "sad"
	MoodAnxious = "anxious"
	MoodAngry   = "angry"
)

type MoodEntry struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement"       json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_moods_user" json:"userId"`
	Mood      string    `gorm:"type:text;not null"                      json:"mood"`
	CreatedAt time.Time `gorm:"autoCreateTime"                          json:"createdAt"`
}

func (MoodEntry) TableName() string {
	return "moods"
}

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	m.Mood = strings.ToLower(strings.TrimSpace(m.Mood))
	if m.Mood == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

// MoodCount is a mood histogram bucket for the chart endpoints.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// MoodDayCount is a per-day histogram bucket for the 7-day history view.
type MoodDayCount struct {
	Date  time.Time `json:"date"`
	Mood  string    `json:"mood"`
	Count int       `json:"count"`
}
