package services

import (
	"context"
	"time"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// streakLookbackDays bounds the initial log fetch. The window doubles
	// when a streak fills it, up to the max, so long streaks stay exact
	// without unbounded scans for everyone else.
	streakLookbackDays    = 90
	streakMaxLookbackDays = 3650
)

// StreakService computes consecutive-day completion streaks from the habit
// log. One range query per user covers all habits; the per-habit walk happens
// in memory.
type StreakService struct {
	habitLogRepo repositories.HabitLogRepository
	log          logger.Logger
}

func NewStreakService(habitLogRepo repositories.HabitLogRepository) *StreakService {
	return &StreakService{
		habitLogRepo: habitLogRepo,
		log:          logger.New("StreakService"),
	}
}

// ForUser returns one streak per habit, in the order the habits were given.
//
// The walk is anchored at yesterday: today's completion never changes the
// count, it only sets CompletedToday. A habit done through yesterday shows
// the same streak all day whether or not it is done yet today, and the
// nightly reset is what rolls yesterday's completions into the count.
func (s *StreakService) ForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	habits []*Habit,
	today time.Time,
) ([]HabitStreak, error) {
	log := s.log.TraceFromContext(ctx).Function("ForUser")

	if len(habits) == 0 {
		return []HabitStreak{}, nil
	}

	yesterday := utils.AddDays(today, -1)
	lookback := streakLookbackDays

	for {
		from := utils.AddDays(today, -lookback)

		logs, err := s.habitLogRepo.CompletionsInRange(ctx, tx, userID, from, today)
		if err != nil {
			return nil, log.Err("failed to fetch completions", err, "userID", userID)
		}

		completed := partitionByHabit(logs)

		streaks := make([]HabitStreak, 0, len(habits))
		saturated := false
		for _, habit := range habits {
			days := completed[habit.ID]

			streak := 0
			day := yesterday
			for days[utils.DateKey(day)] {
				streak++
				day = utils.AddDays(day, -1)
			}

			// The walk ran off the edge of the window; the streak may
			// continue in older rows we did not fetch.
			if day.Before(from) {
				saturated = true
			}

			streaks = append(streaks, HabitStreak{
				HabitID:        habit.ID,
				Streak:         streak,
				CompletedToday: days[utils.DateKey(today)],
			})
		}

		if saturated && lookback < streakMaxLookbackDays {
			lookback *= 2
			if lookback > streakMaxLookbackDays {
				lookback = streakMaxLookbackDays
			}
			continue
		}

		return streaks, nil
	}
}

func partitionByHabit(logs []HabitLog) map[int]map[string]bool {
	byHabit := make(map[int]map[string]bool)
	for _, entry := range logs {
		days, ok := byHabit[entry.HabitID]
		if !ok {
			days = make(map[string]bool)
			byHabit[entry.HabitID] = days
		}
		days[utils.DateKey(entry.Date)] = true
	}
	return byHabit
}
