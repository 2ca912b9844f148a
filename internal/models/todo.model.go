package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoStatus string

const (
	TodoStatusPending   TodoStatus = "pending"
	TodoStatusCompleted TodoStatus = "completed"
)

type Todo struct {
	BaseModel
	UserID uuid.UUID  `gorm:"type:uuid;not null;index:idx_todos_user" json:"userId"`
	Task   string     `gorm:"type:text;not null"                      json:"task"`
	Status TodoStatus `gorm:"type:text;not null;default:'pending'"    json:"status"`
}

func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	t.Task = strings.TrimSpace(t.Task)
	if t.Task == "" {
		return gorm.ErrInvalidValue
	}
	if t.Status == "" {
		t.Status = TodoStatusPending
	}
	return nil
}

// Toggle flips pending <-> completed.
func (t *Todo) Toggle() {
	if t.Status == TodoStatusPending {
		t.Status = TodoStatusCompleted
	} else {
		t.Status = TodoStatusPending
	}
}
