package jobs

import (
	"context"
	"time"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type HabitResetJob struct {
	habitReset *services.HabitResetService
	log        logger.Logger
	schedule   services.Schedule
}

func NewHabitResetJob(
	habitReset *services.HabitResetService,
	schedule services.Schedule,
) *HabitResetJob {
	return &HabitResetJob{
		habitReset: habitReset,
		log:        logger.New("habitResetJob"),
		schedule:   schedule,
	}
}

func (j *HabitResetJob) Name() string {
	return "DailyHabitReset"
}

func (j *HabitResetJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting daily habit reset")

	if err := j.habitReset.Run(ctx, time.Now()); err != nil {
		return log.Err("daily habit reset failed", err)
	}

	log.Info("Daily habit reset completed")
	return nil
}

func (j *HabitResetJob) Schedule() services.Schedule {
	return j.schedule
}
