package habitController

import (
	"context"
	"errors"
	"time"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/services"
	"wellness360/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	MaxHabitNameLength  = 255
	DefaultProgressDays = 30
	MaxProgressDays     = 365
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type HabitController struct {
	habitRepo          repositories.HabitRepository
	habitLogRepo       repositories.HabitLogRepository
	streakService      *services.StreakService
	transactionService services.TransactionExecutor
	db                 database.DB
	location           *time.Location
	log                logger.Logger
}

type CreateHabitRequest struct {
	Name string `json:"name"`
}

type HabitWithStreak struct {
	*Habit
	Streak         int  `json:"streak"`
	CompletedToday bool `json:"completedToday"`
}

type HabitsResponse struct {
	Habits []HabitWithStreak `json:"habits"`
}

type ProgressResponse struct {
	Days []ProgressDay `json:"days"`
}

type ProgressDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type HabitControllerInterface interface {
	CreateHabit(ctx context.Context, user *User, request *CreateHabitRequest) (*Habit, error)
	GetHabits(ctx context.Context, user *User) (*HabitsResponse, error)
	MarkDone(ctx context.Context, user *User, habitID int) (*Habit, error)
	DeleteHabit(ctx context.Context, user *User, habitID int) error
	GetProgress(ctx context.Context, user *User, days int) (*ProgressResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) HabitControllerInterface {
	return &HabitController{
		habitRepo:          repos.Habit,
		habitLogRepo:       repos.HabitLog,
		streakService:      services.Streak,
		transactionService: services.Transaction,
		db:                 db,
		location:           services.Location,
		log:                logger.New("habitController"),
	}
}

func (c *HabitController) today() time.Time {
	return utils.Today(time.Now(), c.location)
}

func (c *HabitController) CreateHabit(
	ctx context.Context,
	user *User,
	request *CreateHabitRequest,
) (*Habit, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateHabit")

	if request == nil || len(request.Name) == 0 {
		return nil, log.ErrorWithType(ErrValidation, "habit name is required")
	}
	if len(request.Name) > MaxHabitNameLength {
		return nil, log.ErrorWithType(ErrValidation, "habit name too long", "max", MaxHabitNameLength)
	}

	habit := &Habit{
		UserID: user.ID,
		Name:   request.Name,
		Status: HabitStatusPending,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.habitRepo.Create(ctx, tx, habit)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrInvalidValue) {
			return nil, log.ErrorWithType(ErrValidation, "habit name is required")
		}
		return nil, log.Err("failed to create habit", err, "userID", user.ID)
	}

	log.Info("Habit created", "habitID", habit.ID, "userID", user.ID)

	return habit, nil
}

// GetHabits lists the user's habits newest-first, each carrying its current
// streak. Streaks come from the per-user cache when fresh; any mismatch with
// the live habit set forces a recompute.
func (c *HabitController) GetHabits(ctx context.Context, user *User) (*HabitsResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("GetHabits")

	habits, err := c.habitRepo.ListForUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to list habits", err, "userID", user.ID)
	}

	streaks, err := c.streaksFor(ctx, user, habits)
	if err != nil {
		return nil, err
	}

	byHabit := make(map[int]HabitStreak, len(streaks))
	for _, streak := range streaks {
		byHabit[streak.HabitID] = streak
	}

	response := &HabitsResponse{Habits: make([]HabitWithStreak, 0, len(habits))}
	for _, habit := range habits {
		streak := byHabit[habit.ID]
		response.Habits = append(response.Habits, HabitWithStreak{
			Habit:          habit,
			Streak:         streak.Streak,
			CompletedToday: streak.CompletedToday,
		})
	}

	return response, nil
}

func (c *HabitController) streaksFor(
	ctx context.Context,
	user *User,
	habits []*Habit,
) ([]HabitStreak, error) {
	log := c.log.TraceFromContext(ctx).Function("streaksFor")

	if cached, found := c.habitRepo.GetCachedStreaks(ctx, user.ID); found {
		if coversAll(cached, habits) {
			return cached, nil
		}
	}

	streaks, err := c.streakService.ForUser(ctx, c.db.SQL, user.ID, habits, c.today())
	if err != nil {
		return nil, log.Err("failed to compute streaks", err, "userID", user.ID)
	}

	c.habitRepo.CacheStreaks(ctx, user.ID, streaks)

	return streaks, nil
}

func coversAll(streaks []HabitStreak, habits []*Habit) bool {
	known := make(map[int]bool, len(streaks))
	for _, streak := range streaks {
		known[streak.HabitID] = true
	}
	for _, habit := range habits {
		if !known[habit.ID] {
			return false
		}
	}
	return true
}

// MarkDone flips the habit to done and appends today's completion to the
// log in one transaction. Marking an already-done habit changes nothing.
func (c *HabitController) MarkDone(
	ctx context.Context,
	user *User,
	habitID int,
) (*Habit, error) {
	log := c.log.TraceFromContext(ctx).Function("MarkDone")

	if habitID <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "habitId is required")
	}

	today := c.today()
	var habit *Habit

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.habitRepo.SetDone(ctx, tx, habitID, user.ID, today); err != nil {
			return err
		}

		if err := c.habitLogRepo.InsertCompletion(ctx, tx, &HabitLog{
			HabitID: habitID,
			UserID:  user.ID,
			Date:    today,
			Status:  HabitStatusDone,
		}); err != nil {
			return err
		}

		found, err := c.habitRepo.GetByID(ctx, tx, habitID, user.ID)
		if err != nil {
			return err
		}
		habit = found
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "habit not found", "habitID", habitID)
		}
		return nil, log.Err("failed to mark habit done", err, "habitID", habitID)
	}

	log.Info("Habit marked done", "habitID", habitID, "userID", user.ID)

	return habit, nil
}

// DeleteHabit removes the habit and its entire completion history in one
// transaction, so a failure in either leaves both in place.
func (c *HabitController) DeleteHabit(ctx context.Context, user *User, habitID int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteHabit")

	if habitID <= 0 {
		return log.ErrorWithType(ErrValidation, "habitId is required")
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := c.habitRepo.GetByID(ctx, tx, habitID, user.ID); err != nil {
			return err
		}

		if err := c.habitLogRepo.DeleteForHabit(ctx, tx, habitID); err != nil {
			return err
		}

		return c.habitRepo.Delete(ctx, tx, habitID, user.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "habit not found", "habitID", habitID)
		}
		return log.Err("failed to delete habit", err, "habitID", habitID)
	}

	log.Info("Habit deleted", "habitID", habitID, "userID", user.ID)

	return nil
}

// GetProgress returns per-day completion counts for the activity graph,
// zero-filled so the client gets one point per calendar day.
func (c *HabitController) GetProgress(
	ctx context.Context,
	user *User,
	days int,
) (*ProgressResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("GetProgress")

	if days <= 0 {
		days = DefaultProgressDays
	}
	if days > MaxProgressDays {
		return nil, log.ErrorWithType(ErrValidation, "days out of range", "max", MaxProgressDays)
	}

	today := c.today()
	from := utils.AddDays(today, -(days - 1))

	counts, err := c.habitLogRepo.DailyDoneCounts(ctx, c.db.SQL, user.ID, from, today)
	if err != nil {
		return nil, log.Err("failed to fetch progress", err, "userID", user.ID)
	}

	byDay := make(map[string]int, len(counts))
	for _, count := range counts {
		byDay[utils.DateKey(count.Date)] = count.Count
	}

	response := &ProgressResponse{Days: make([]ProgressDay, 0, days)}
	for day := from; !day.After(today); day = utils.AddDays(day, 1) {
		key := utils.DateKey(day)
		response.Days = append(response.Days, ProgressDay{Date: key, Count: byDay[key]})
	}

	return response, nil
}
