package repositories

import (
	"context"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(ctx context.Context, tx *gorm.DB, message *ChatMessage) error
	History(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		limit int,
	) ([]ChatMessage, error)
	Clear(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type chatRepository struct{}

func NewChatRepository() ChatRepository {
	return &chatRepository{}
}

func (r *chatRepository) Create(ctx context.Context, tx *gorm.DB, message *ChatMessage) error {
	log := logger.New("chatRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(message).Error; err != nil {
		return log.Err("failed to create chat message", err, "userID", message.UserID)
	}

	return nil
}

// History returns the most recent messages in chronological order.
func (r *chatRepository) History(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	limit int,
) ([]ChatMessage, error) {
	log := logger.New("chatRepository").TraceFromContext(ctx).Function("History")

	var messages []ChatMessage
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, log.Err("failed to fetch chat history", err, "userID", userID)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *chatRepository) Clear(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	log := logger.New("chatRepository").TraceFromContext(ctx).Function("Clear")

	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&ChatMessage{}).Error; err != nil {
		return log.Err("failed to clear chat history", err, "userID", userID)
	}

	return nil
}
