package repositories

import (
	"context"
	"time"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitLogRepository interface {
	InsertCompletion(ctx context.Context, tx *gorm.DB, log *HabitLog) error
	ArchiveDoneFor(ctx context.Context, tx *gorm.DB, date time.Time) (int64, error)
	HasCompletion(ctx context.Context, tx *gorm.DB, habitID int, date time.Time) (bool, error)
	CompletionsInRange(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		from, to time.Time,
	) ([]HabitLog, error)
	DailyDoneCounts(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		from, to time.Time,
	) ([]DayCount, error)
	DeleteForHabit(ctx context.Context, tx *gorm.DB, habitID int) error
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type habitLogRepository struct{}

func NewHabitLogRepository() HabitLogRepository {
	return &habitLogRepository{}
}

// InsertCompletion records one completion for one day. Re-marking the same
// habit on the same day is a no-op thanks to the (habit_id, date) unique
// index.
func (r *habitLogRepository) InsertCompletion(
	ctx context.Context,
	tx *gorm.DB,
	habitLog *HabitLog,
) error {
	log := logger.New("habitLogRepository").TraceFromContext(ctx).Function("InsertCompletion")

	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(habitLog).Error; err != nil {
		return log.Err("failed to insert completion", err, "habitID", habitLog.HabitID)
	}

	return nil
}

// ArchiveDoneFor copies every habit still marked done into the log under the
// given date. The insert is set-based and conflict-tolerant, so running it
// twice for the same date adds nothing.
func (r *habitLogRepository) ArchiveDoneFor(
	ctx context.Context,
	tx *gorm.DB,
	date time.Time,
) (int64, error) {
	log := logger.New("habitLogRepository").TraceFromContext(ctx).Function("ArchiveDoneFor")

	result := tx.WithContext(ctx).Exec(`
		INSERT INTO habit_logs (habit_id, user_id, date, status, created_at)
		SELECT id, user_id, ?, status, NOW()
		FROM habits
		WHERE status = ? AND status_date = ?
		ON CONFLICT (habit_id, date) DO NOTHING`,
		date, HabitStatusDone, date,
	)
	if result.Error != nil {
		return 0, log.Err("failed to archive done habits", result.Error, "date", date)
	}

	return result.RowsAffected, nil
}

func (r *habitLogRepository) HasCompletion(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	date time.Time,
) (bool, error) {
	log := logger.New("habitLogRepository").TraceFromContext(ctx).Function("HasCompletion")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&HabitLog{}).
		Where("habit_id = ? AND date = ?", habitID, date).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to check completion", err, "habitID", habitID)
	}

	return count > 0, nil
}

func (r *habitLogRepository) CompletionsInRange(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	from, to time.Time,
) ([]HabitLog, error) {
	log := logger.New("habitLogRepository").TraceFromContext(ctx).Function("CompletionsInRange")

	var logs []HabitLog
	if err := tx.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("habit_id, date DESC").
		Find(&logs).Error; err != nil {
		return nil, log.Err("failed to fetch completions", err, "userID", userID)
	}

	return logs, nil
}

func (r *habitLogRepository) DailyDoneCounts(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	from, to time.Time,
) ([]DayCount, error) {
	log := logger.New("habitLogRepository").TraceFromContext(ctx).Function("DailyDoneCounts")

	var counts []DayCount
	if err := tx.WithContext(ctx).
		Model(&HabitLog{}).
		Select("date, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("date").
		Order("date").
		Scan(&counts).Error; err != nil {
		return nil, log.Err("failed to fetch daily counts", err, "userID", userID)
	}

	return counts, nil
}

func (r *habitLogRepository) DeleteForHabit(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
) error {
	log := logger.New("habitLogRepository").TraceFromContext(ctx).Function("DeleteForHabit")

	if err := tx.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Delete(&HabitLog{}).Error; err != nil {
		return log.Err("failed to delete habit logs", err, "habitID", habitID)
	}

	return nil
}

func (r *habitLogRepository) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	log := logger.New("habitLogRepository").TraceFromContext(ctx).Function("CountAll")

	var count int64
	if err := tx.WithContext(ctx).Model(&HabitLog{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count habit logs", err)
	}

	return count, nil
}
