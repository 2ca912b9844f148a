package models

import (
	"strings"

	"gorm.io/gorm"
)

type Quote struct {
	BaseModel
	Quote    string `gorm:"type:text;not null" json:"quote"`
	Mood     string `gorm:"type:text;not null" json:"mood"`
	Category string `gorm:"type:text;not null" json:"category"`
}

func (Quote) TableName() string {
	return "motivational_quotes"
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	q.Quote = strings.TrimSpace(q.Quote)
	if q.Quote == "" {
		return gorm.ErrInvalidValue
	}
	q.Mood = strings.ToLower(strings.TrimSpace(q.Mood))
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	return nil
}
