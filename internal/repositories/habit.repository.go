package repositories

import (
	"context"
	"time"
	"wellness360/internal/database"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_STREAKS_CACHE_PREFIX = "user_streaks"
	USER_STREAKS_CACHE_EXPIRY = 15 * time.Minute
)

type HabitRepository interface {
	Create(ctx context.Context, tx *gorm.DB, habit *Habit) error
	GetByID(ctx context.Context, tx *gorm.DB, habitID int, userID uuid.UUID) (*Habit, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*Habit, error)
	SetDone(
		ctx context.Context,
		tx *gorm.DB,
		habitID int,
		userID uuid.UUID,
		today time.Time,
	) error
	Delete(ctx context.Context, tx *gorm.DB, habitID int, userID uuid.UUID) error
	ResetAllToPending(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountDone(ctx context.Context, tx *gorm.DB) (int64, error)

	GetCachedStreaks(ctx context.Context, userID uuid.UUID) ([]HabitStreak, bool)
	CacheStreaks(ctx context.Context, userID uuid.UUID, streaks []HabitStreak)
	ClearStreakCache(ctx context.Context, userID uuid.UUID)
}

type habitRepository struct {
	cache database.CacheClient
}

func NewHabitRepository(db database.DB) HabitRepository {
	return &habitRepository{
		cache: db.Cache.User,
	}
}

func (r *habitRepository) Create(ctx context.Context, tx *gorm.DB, habit *Habit) error {
	log := logger.New("habitRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(habit).Error; err != nil {
		return log.Err("failed to create habit", err, "userID", habit.UserID)
	}

	r.ClearStreakCache(ctx, habit.UserID)

	return nil
}

func (r *habitRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
) (*Habit, error) {
	log := logger.New("habitRepository").TraceFromContext(ctx).Function("GetByID")

	var habit Habit
	if err := tx.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&habit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get habit", err, "habitID", habitID, "userID", userID)
	}

	return &habit, nil
}

func (r *habitRepository) ListForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*Habit, error) {
	log := logger.New("habitRepository").TraceFromContext(ctx).Function("ListForUser")

	var habits []*Habit
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&habits).Error; err != nil {
		return nil, log.Err("failed to list habits", err, "userID", userID)
	}

	return habits, nil
}

// SetDone flips the habit to done and stamps the completion date. The
// matching log upsert lives in HabitLogRepository; the controller runs both
// in one transaction so a status flip never lands without its log row.
func (r *habitRepository) SetDone(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
	today time.Time,
) error {
	log := logger.New("habitRepository").TraceFromContext(ctx).Function("SetDone")

	result := tx.WithContext(ctx).
		Model(&Habit{}).
		Where("id = ? AND user_id = ?", habitID, userID).
		Updates(map[string]any{
			"status":      HabitStatusDone,
			"status_date": today,
		})
	if result.Error != nil {
		return log.Err("failed to mark habit done", result.Error, "habitID", habitID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.ClearStreakCache(ctx, userID)

	return nil
}

// Delete removes the habit row only. Its log rows are removed in the same
// transaction by the controller; RowsAffected drives the not-found check so
// the whole transaction rolls back when the habit isn't owned by the caller.
func (r *habitRepository) Delete(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
) error {
	log := logger.New("habitRepository").TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		Delete(&Habit{})
	if result.Error != nil {
		return log.Err("failed to delete habit", result.Error, "habitID", habitID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.ClearStreakCache(ctx, userID)

	return nil
}

func (r *habitRepository) ResetAllToPending(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int64, error) {
	log := logger.New("habitRepository").TraceFromContext(ctx).Function("ResetAllToPending")

	result := tx.WithContext(ctx).
		Model(&Habit{}).
		Where("user_id = ? AND status = ?", userID, HabitStatusDone).
		Updates(map[string]any{
			"status":      HabitStatusPending,
			"status_date": nil,
		})
	if result.Error != nil {
		return 0, log.Err("failed to reset habits", result.Error, "userID", userID)
	}

	r.ClearStreakCache(ctx, userID)

	return result.RowsAffected, nil
}

func (r *habitRepository) CountDone(ctx context.Context, tx *gorm.DB) (int64, error) {
	log := logger.New("habitRepository").TraceFromContext(ctx).Function("CountDone")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Habit{}).
		Where("status = ?", HabitStatusDone).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count done habits", err)
	}

	return count, nil
}

func (r *habitRepository) GetCachedStreaks(
	ctx context.Context,
	userID uuid.UUID,
) ([]HabitStreak, bool) {
	if r.cache == nil {
		return nil, false
	}

	log := logger.New("habitRepository").TraceFromContext(ctx).Function("GetCachedStreaks")

	var cached []HabitStreak
	found, err := database.NewCacheBuilder(r.cache, userID).
		WithContext(ctx).
		WithHash(USER_STREAKS_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get streaks from cache", "userID", userID, "error", err)
		return nil, false
	}

	return cached, found
}

func (r *habitRepository) CacheStreaks(
	ctx context.Context,
	userID uuid.UUID,
	streaks []HabitStreak,
) {
	if r.cache == nil {
		return
	}

	log := logger.New("habitRepository").TraceFromContext(ctx).Function("CacheStreaks")

	err := database.NewCacheBuilder(r.cache, userID).
		WithContext(ctx).
		WithHash(USER_STREAKS_CACHE_PREFIX).
		WithStruct(streaks).
		WithTTL(USER_STREAKS_CACHE_EXPIRY).
		Set()
	if err != nil {
		log.Warn("failed to cache streaks", "userID", userID, "error", err)
	}
}

func (r *habitRepository) ClearStreakCache(ctx context.Context, userID uuid.UUID) {
	if r.cache == nil {
		return
	}

	log := logger.New("habitRepository").TraceFromContext(ctx).Function("ClearStreakCache")

	err := database.NewCacheBuilder(r.cache, userID).
		WithContext(ctx).
		WithHash(USER_STREAKS_CACHE_PREFIX).
		Delete()
	if err != nil {
		log.Warn("failed to clear streak cache", "userID", userID, "error", err)
	}
}
