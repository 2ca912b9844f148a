package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	ID        int            `gorm:"type:int;primaryKey;autoIncrement"              json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_chat_history_user" json:"userId"`
	Role      ChatRole       `gorm:"type:text;not null"                             json:"role"`
	Content   string         `gorm:"type:text;not null"                             json:"content"`
	Meta      datatypes.JSON `gorm:"type:jsonb"                                     json:"meta,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime"                                 json:"createdAt"`
}

func (ChatMessage) TableName() string {
	return "chat_history"
}
