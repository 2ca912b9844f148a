package jobs

import (
	"wellness360/config"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const Midnight = services.Midnight

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	habitResetJob := NewHabitResetJob(services.HabitReset, Midnight)
	if err := schedulerService.AddJob(habitResetJob); err != nil {
		return log.Err("failed to register habit reset job", err)
	}
	log.Info("Registered habit reset job", "schedule", "midnight")

	return nil
}
