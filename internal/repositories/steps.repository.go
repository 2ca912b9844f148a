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

type StepsRepository interface {
	AddSteps(ctx context.Context, tx *gorm.DB, entry *StepEntry) error
	SetGoal(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		date time.Time,
		goal int,
	) error
	GetForDate(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		date time.Time,
	) (*StepEntry, error)
	History(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		from, to time.Time,
	) ([]StepEntry, error)
}

type stepsRepository struct{}

func NewStepsRepository() StepsRepository {
	return &stepsRepository{}
}

// AddSteps accumulates into the day's row. Steps add up across submissions;
// the goal from the latest submission wins.
func (r *stepsRepository) AddSteps(ctx context.Context, tx *gorm.DB, entry *StepEntry) error {
	log := logger.New("stepsRepository").TraceFromContext(ctx).Function("AddSteps")

	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"steps":      gorm.Expr("steps.steps + EXCLUDED.steps"),
				"goal":       gorm.Expr("EXCLUDED.goal"),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(entry).Error; err != nil {
		return log.Err("failed to add steps", err, "userID", entry.UserID)
	}

	return nil
}

func (r *stepsRepository) SetGoal(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	date time.Time,
	goal int,
) error {
	log := logger.New("stepsRepository").TraceFromContext(ctx).Function("SetGoal")

	entry := StepEntry{UserID: userID, Date: date, Steps: 0, Goal: goal}
	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"goal":       goal,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(&entry).Error; err != nil {
		return log.Err("failed to set step goal", err, "userID", userID)
	}

	return nil
}

// GetForDate returns nil without error when no steps were logged that day.
func (r *stepsRepository) GetForDate(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	date time.Time,
) (*StepEntry, error) {
	log := logger.New("stepsRepository").TraceFromContext(ctx).Function("GetForDate")

	var entry StepEntry
	if err := tx.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get step entry", err, "userID", userID)
	}

	return &entry, nil
}

func (r *stepsRepository) History(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	from, to time.Time,
) ([]StepEntry, error) {
	log := logger.New("stepsRepository").TraceFromContext(ctx).Function("History")

	var entries []StepEntry
	if err := tx.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to fetch step history", err, "userID", userID)
	}

	return entries, nil
}
