package repositories

import (
	"context"
	"time"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRunRepository interface {
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*JobRun, error)
	Upsert(ctx context.Context, tx *gorm.DB, name string, runDate time.Time) error
}

type jobRunRepository struct{}

func NewJobRunRepository() JobRunRepository {
	return &jobRunRepository{}
}

// GetByName returns nil without error when the job has never run.
func (r *jobRunRepository) GetByName(
	ctx context.Context,
	tx *gorm.DB,
	name string,
) (*JobRun, error) {
	log := logger.New("jobRunRepository").TraceFromContext(ctx).Function("GetByName")

	var run JobRun
	if err := tx.WithContext(ctx).First(&run, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get job run", err, "name", name)
	}

	return &run, nil
}

func (r *jobRunRepository) Upsert(
	ctx context.Context,
	tx *gorm.DB,
	name string,
	runDate time.Time,
) error {
	log := logger.New("jobRunRepository").TraceFromContext(ctx).Function("Upsert")

	run := JobRun{Name: name, RunDate: runDate}
	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"run_date", "updated_at"}),
		}).
		Create(&run).Error; err != nil {
		return log.Err("failed to upsert job run", err, "name", name)
	}

	return nil
}
