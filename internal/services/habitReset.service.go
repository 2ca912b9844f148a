package services

import (
	"context"
	"fmt"
	"sync"
	"time"
	"wellness360/internal/repositories"
	"wellness360/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HabitResetJobName = "habit_daily_reset"

	// resetWorkerCount bounds concurrent per-user reset transactions so the
	// midnight run cannot exhaust the connection pool.
	resetWorkerCount = 4
)

// HabitResetService performs the nightly rollover: archive yesterday's done
// habits into the log, then flip every habit back to pending for the new day.
//
// The two phases are strictly ordered. Archiving is the durable record the
// streak calculation reads, so an archive failure aborts the whole run and
// leaves habit statuses untouched; resetting without the archive would erase
// a day of completions from every streak.
// TransactionExecutor is the slice of TransactionService the reset needs,
// kept narrow so tests can substitute a pass-through.
type TransactionExecutor interface {
	Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error
}

type HabitResetService struct {
	transaction  TransactionExecutor
	userRepo     repositories.UserRepository
	habitRepo    repositories.HabitRepository
	habitLogRepo repositories.HabitLogRepository
	jobRunRepo   repositories.JobRunRepository
	location     *time.Location
	log          logger.Logger
}

func NewHabitResetService(
	transaction TransactionExecutor,
	repos repositories.Repository,
	location *time.Location,
) *HabitResetService {
	return &HabitResetService{
		transaction:  transaction,
		userRepo:     repos.User,
		habitRepo:    repos.Habit,
		habitLogRepo: repos.HabitLog,
		jobRunRepo:   repos.JobRun,
		location:     location,
		log:          logger.New("HabitResetService"),
	}
}

// Run executes the rollover for the calendar day containing now. It is safe
// to call more than once per day: a checkpoint row records the last completed
// run and repeat invocations for the same day return without touching data.
func (s *HabitResetService) Run(ctx context.Context, now time.Time) error {
	log := s.log.TraceFromContext(ctx).Function("Run")

	today := utils.Today(now, s.location)
	yesterday := utils.AddDays(today, -1)

	alreadyRan, err := s.alreadyRanFor(ctx, today)
	if err != nil {
		return err
	}
	if alreadyRan {
		log.Info("Reset already completed for today, skipping", "date", utils.DateKey(today))
		return nil
	}

	archived, err := s.archiveDay(ctx, yesterday)
	if err != nil {
		return log.Err("archive failed, aborting reset", err, "date", utils.DateKey(yesterday))
	}
	log.Info("Archived completions", "date", utils.DateKey(yesterday), "rows", archived)

	userIDs, err := s.listUsers(ctx)
	if err != nil {
		return err
	}

	failures := s.resetUsers(ctx, userIDs)
	if failures > 0 {
		log.Warn("Some users failed to reset", "failed", failures, "total", len(userIDs))
	}

	if err := s.recordRun(ctx, today); err != nil {
		return err
	}

	log.Info("Daily reset completed",
		"date", utils.DateKey(today),
		"users", len(userIDs),
		"failed", failures,
	)

	if failures > 0 {
		return fmt.Errorf("daily reset completed with %d failed users", failures)
	}

	return nil
}

func (s *HabitResetService) alreadyRanFor(ctx context.Context, today time.Time) (bool, error) {
	var lastRun time.Time
	found := false

	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		run, err := s.jobRunRepo.GetByName(ctx, tx, HabitResetJobName)
		if err != nil {
			return err
		}
		if run != nil {
			lastRun = utils.Normalize(run.RunDate)
			found = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return found && !lastRun.Before(today), nil
}

func (s *HabitResetService) archiveDay(ctx context.Context, day time.Time) (int64, error) {
	var archived int64
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		rows, err := s.habitLogRepo.ArchiveDoneFor(ctx, tx, day)
		if err != nil {
			return err
		}
		archived = rows
		return nil
	})
	return archived, err
}

func (s *HabitResetService) listUsers(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		ids, err := s.userRepo.ListActiveUserIDs(ctx, tx)
		if err != nil {
			return err
		}
		userIDs = ids
		return nil
	})
	return userIDs, err
}

// resetUsers flips each user's habits back to pending, one transaction per
// user so a failure for one account never blocks the rest. Returns the
// number of users whose reset failed. A canceled context stops the fan-out
// before the next user; work already handed to a worker runs to completion.
func (s *HabitResetService) resetUsers(ctx context.Context, userIDs []uuid.UUID) int {
	log := s.log.TraceFromContext(ctx).Function("resetUsers")

	work := make(chan uuid.UUID)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for range resetWorkerCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range work {
				err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
					_, err := s.habitRepo.ResetAllToPending(ctx, tx, userID)
					return err
				})
				if err != nil {
					_ = log.Err("failed to reset habits for user", err, "userID", userID)
					mu.Lock()
					failures++
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			break
		}
		select {
		case work <- userID:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	if ctx.Err() != nil {
		log.Warn("reset fan-out stopped early, context canceled", "users", len(userIDs))
	}

	return failures
}

func (s *HabitResetService) recordRun(ctx context.Context, today time.Time) error {
	return s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return s.jobRunRepo.Upsert(ctx, tx, HabitResetJobName, today)
	})
}
