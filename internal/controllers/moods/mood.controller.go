package moodController

import (
	"context"
	"errors"
	"strings"
	"time"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	DefaultHistoryDays = 7
	MaxHistoryDays     = 90
)

var ErrValidation = errors.New("validation error")

type MoodController struct {
	moodRepo           repositories.MoodRepository
	transactionService *services.TransactionService
	db                 database.DB
	log                logger.Logger
}

type LogMoodRequest struct {
	Mood string `json:"mood"`
}

type MoodSummaryResponse struct {
	Latest *MoodEntry     `json:"latest"`
	Counts []MoodCount    `json:"counts"`
	Daily  []MoodDayCount `json:"daily"`
}

type MoodControllerInterface interface {
	LogMood(ctx context.Context, user *User, request *LogMoodRequest) (*MoodEntry, error)
	GetSummary(ctx context.Context, user *User, days int) (*MoodSummaryResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) MoodControllerInterface {
	return &MoodController{
		moodRepo:           repos.Mood,
		transactionService: services.Transaction,
		db:                 db,
		log:                logger.New("moodController"),
	}
}

func (c *MoodController) LogMood(
	ctx context.Context,
	user *User,
	request *LogMoodRequest,
) (*MoodEntry, error) {
	log := c.log.TraceFromContext(ctx).Function("LogMood")

	if request == nil || strings.TrimSpace(request.Mood) == "" {
		return nil, log.ErrorWithType(ErrValidation, "mood is required")
	}

	entry := &MoodEntry{
		UserID: user.ID,
		Mood:   request.Mood,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.moodRepo.Create(ctx, tx, entry)
	})
	if err != nil {
		return nil, log.Err("failed to log mood", err, "userID", user.ID)
	}

	return entry, nil
}

func (c *MoodController) GetSummary(
	ctx context.Context,
	user *User,
	days int,
) (*MoodSummaryResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("GetSummary")

	if days <= 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		return nil, log.ErrorWithType(ErrValidation, "days out of range", "max", MaxHistoryDays)
	}

	since := time.Now().AddDate(0, 0, -days)

	latest, err := c.moodRepo.Latest(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to get latest mood", err, "userID", user.ID)
	}

	counts, err := c.moodRepo.CountsSince(ctx, c.db.SQL, user.ID, since)
	if err != nil {
		return nil, log.Err("failed to get mood counts", err, "userID", user.ID)
	}

	daily, err := c.moodRepo.DailyCountsSince(ctx, c.db.SQL, user.ID, since)
	if err != nil {
		return nil, log.Err("failed to get daily mood counts", err, "userID", user.ID)
	}

	return &MoodSummaryResponse{Latest: latest, Counts: counts, Daily: daily}, nil
}
