package repositories

import (
	"context"
	"time"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MoodRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *MoodEntry) error
	Latest(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*MoodEntry, error)
	CountsSince(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		since time.Time,
	) ([]MoodCount, error)
	DailyCountsSince(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		since time.Time,
	) ([]MoodDayCount, error)
}

type moodRepository struct{}

func NewMoodRepository() MoodRepository {
	return &moodRepository{}
}

func (r *moodRepository) Create(ctx context.Context, tx *gorm.DB, entry *MoodEntry) error {
	log := logger.New("moodRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
		return log.Err("failed to create mood entry", err, "userID", entry.UserID)
	}

	return nil
}

// Latest returns nil without error when the user has logged no moods yet.
func (r *moodRepository) Latest(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (*MoodEntry, error) {
	log := logger.New("moodRepository").TraceFromContext(ctx).Function("Latest")

	var entry MoodEntry
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get latest mood", err, "userID", userID)
	}

	return &entry, nil
}

func (r *moodRepository) CountsSince(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	since time.Time,
) ([]MoodCount, error) {
	log := logger.New("moodRepository").TraceFromContext(ctx).Function("CountsSince")

	var counts []MoodCount
	if err := tx.WithContext(ctx).
		Model(&MoodEntry{}).
		Select("mood, COUNT(*) AS count").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("mood").
		Order("count DESC").
		Scan(&counts).Error; err != nil {
		return nil, log.Err("failed to fetch mood counts", err, "userID", userID)
	}

	return counts, nil
}

func (r *moodRepository) DailyCountsSince(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	since time.Time,
) ([]MoodDayCount, error) {
	log := logger.New("moodRepository").TraceFromContext(ctx).Function("DailyCountsSince")

	var counts []MoodDayCount
	if err := tx.WithContext(ctx).
		Model(&MoodEntry{}).
		Select("DATE(created_at) AS date, mood, COUNT(*) AS count").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("DATE(created_at), mood").
		Order("date").
		Scan(&counts).Error; err != nil {
		return nil, log.Err("failed to fetch daily mood counts", err, "userID", userID)
	}

	return counts, nil
}
