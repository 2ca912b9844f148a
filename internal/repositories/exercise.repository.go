package repositories

import (
	"context"
	"time"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *ExerciseLog) error
	ListForUser(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		limit int,
	) ([]ExerciseLog, error)
	DailyCountsSince(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		since time.Time,
	) ([]DayCount, error)
	CountForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type exerciseRepository struct{}

func NewExerciseRepository() ExerciseRepository {
	return &exerciseRepository{}
}

func (r *exerciseRepository) Create(ctx context.Context, tx *gorm.DB, entry *ExerciseLog) error {
	log := logger.New("exerciseRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
		return log.Err("failed to create exercise log", err, "userID", entry.UserID)
	}

	return nil
}

func (r *exerciseRepository) ListForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	limit int,
) ([]ExerciseLog, error) {
	log := logger.New("exerciseRepository").TraceFromContext(ctx).Function("ListForUser")

	var entries []ExerciseLog
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list exercise logs", err, "userID", userID)
	}

	return entries, nil
}

// DailyCountsSince feeds the workout-day streak walk, one bucket per
// calendar day with at least one completion.
func (r *exerciseRepository) DailyCountsSince(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	since time.Time,
) ([]DayCount, error) {
	log := logger.New("exerciseRepository").TraceFromContext(ctx).Function("DailyCountsSince")

	var counts []DayCount
	if err := tx.WithContext(ctx).
		Model(&ExerciseLog{}).
		Select("DATE(completed_at) AS date, COUNT(*) AS count").
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Group("DATE(completed_at)").
		Order("date DESC").
		Scan(&counts).Error; err != nil {
		return nil, log.Err("failed to fetch exercise day counts", err, "userID", userID)
	}

	return counts, nil
}

func (r *exerciseRepository) CountForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int64, error) {
	log := logger.New("exerciseRepository").TraceFromContext(ctx).Function("CountForUser")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&ExerciseLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count exercise logs", err, "userID", userID)
	}

	return count, nil
}
