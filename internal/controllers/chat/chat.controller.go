package chatController

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxMessageLength = 2000
	HistoryLimit     = 50
)

var (
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("unavailable")
)

type ChatController struct {
	chatRepo           repositories.ChatRepository
	moodRepo           repositories.MoodRepository
	chatService        *services.ChatService
	transactionService *services.TransactionService
	db                 database.DB
	log                logger.Logger
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type SendMessageResponse struct {
	Reply   ChatMessage `json:"reply"`
	Message ChatMessage `json:"message"`
}

type ChatControllerInterface interface {
	SendMessage(ctx context.Context, user *User, request *SendMessageRequest) (*SendMessageResponse, error)
	GetHistory(ctx context.Context, user *User) ([]ChatMessage, error)
	ClearHistory(ctx context.Context, user *User) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) ChatControllerInterface {
	return &ChatController{
		chatRepo:           repos.Chat,
		moodRepo:           repos.Mood,
		chatService:        services.Chat,
		transactionService: services.Transaction,
		db:                 db,
		log:                logger.New("chatController"),
	}
}

// SendMessage persists the user's message, asks the assistant for a reply
// steered by the user's latest mood, and persists that too. The user message
// is saved before the upstream call so history survives assistant outages.
func (c *ChatController) SendMessage(
	ctx context.Context,
	user *User,
	request *SendMessageRequest,
) (*SendMessageResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("SendMessage")

	if request == nil || strings.TrimSpace(request.Message) == "" {
		return nil, log.ErrorWithType(ErrValidation, "message is required")
	}
	if len(request.Message) > MaxMessageLength {
		return nil, log.ErrorWithType(ErrValidation, "message too long", "max", MaxMessageLength)
	}

	if !c.chatService.Enabled() {
		return nil, log.ErrorWithType(ErrUnavailable, "chat assistant is not configured")
	}

	mood := ""
	if latest, err := c.moodRepo.Latest(ctx, c.db.SQL, user.ID); err == nil && latest != nil {
		mood = latest.Mood
	}

	history, err := c.chatRepo.History(ctx, c.db.SQL, user.ID, HistoryLimit)
	if err != nil {
		return nil, log.Err("failed to load chat history", err, "userID", user.ID)
	}

	userMessage := &ChatMessage{
		UserID:  user.ID,
		Role:    ChatRoleUser,
		Content: strings.TrimSpace(request.Message),
	}
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.chatRepo.Create(ctx, tx, userMessage)
	})
	if err != nil {
		return nil, log.Err("failed to save message", err, "userID", user.ID)
	}

	replyText, err := c.chatService.Complete(ctx, mood, history, userMessage.Content)
	if err != nil {
		if errors.Is(err, services.ErrChatUnavailable) {
			return nil, log.ErrorWithType(ErrUnavailable, "chat assistant is not configured")
		}
		return nil, log.Err("assistant reply failed", err, "userID", user.ID)
	}

	metaBytes, _ := json.Marshal(map[string]string{"mood": mood})
	meta := datatypes.JSON(metaBytes)
	reply := &ChatMessage{
		UserID:  user.ID,
		Role:    ChatRoleAssistant,
		Content: replyText,
		Meta:    meta,
	}
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.chatRepo.Create(ctx, tx, reply)
	})
	if err != nil {
		return nil, log.Err("failed to save reply", err, "userID", user.ID)
	}

	return &SendMessageResponse{Reply: *reply, Message: *userMessage}, nil
}

func (c *ChatController) GetHistory(ctx context.Context, user *User) ([]ChatMessage, error) {
	log := c.log.TraceFromContext(ctx).Function("GetHistory")

	history, err := c.chatRepo.History(ctx, c.db.SQL, user.ID, HistoryLimit)
	if err != nil {
		return nil, log.Err("failed to load chat history", err, "userID", user.ID)
	}

	return history, nil
}

func (c *ChatController) ClearHistory(ctx context.Context, user *User) error {
	log := c.log.TraceFromContext(ctx).Function("ClearHistory")

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.chatRepo.Clear(ctx, tx, user.ID)
	})
	if err != nil {
		return log.Err("failed to clear chat history", err, "userID", user.ID)
	}

	return nil
}
