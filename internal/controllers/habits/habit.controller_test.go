package habitController

import (
	"context"
	"strings"
	"testing"
	"time"
	. "wellness360/internal/models"
	"wellness360/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countingExecutor runs the unit of work directly and counts invocations so
// tests can assert that multi-step mutations share one transaction.
type countingExecutor struct {
	calls int
}

func (e *countingExecutor) Execute(
	ctx context.Context,
	fn func(context.Context, *gorm.DB) error,
) error {
	e.calls++
	return fn(ctx, nil)
}

type fakeHabitRepo struct {
	habits  map[int]*Habit
	setDone []int
	deleted []int
}

func (f *fakeHabitRepo) Create(ctx context.Context, tx *gorm.DB, habit *Habit) error { return nil }

func (f *fakeHabitRepo) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
) (*Habit, error) {
	habit, ok := f.habits[habitID]
	if !ok || habit.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return habit, nil
}

func (f *fakeHabitRepo) ListForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*Habit, error) {
	return nil, nil
}

func (f *fakeHabitRepo) SetDone(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
	today time.Time,
) error {
	habit, ok := f.habits[habitID]
	if !ok || habit.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	habit.Status = HabitStatusDone
	habit.StatusDate = &today
	f.setDone = append(f.setDone, habitID)
	return nil
}

func (f *fakeHabitRepo) Delete(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
) error {
	habit, ok := f.habits[habitID]
	if !ok || habit.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.habits, habitID)
	f.deleted = append(f.deleted, habitID)
	return nil
}

func (f *fakeHabitRepo) ResetAllToPending(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int64, error) {
	return 0, nil
}

func (f *fakeHabitRepo) CountDone(ctx context.Context, tx *gorm.DB) (int64, error) { return 0, nil }

func (f *fakeHabitRepo) GetCachedStreaks(
	ctx context.Context,
	userID uuid.UUID,
) ([]HabitStreak, bool) {
	return nil, false
}

func (f *fakeHabitRepo) CacheStreaks(ctx context.Context, userID uuid.UUID, streaks []HabitStreak) {
}
func (f *fakeHabitRepo) ClearStreakCache(ctx context.Context, userID uuid.UUID) {}

type fakeHabitLogRepo struct {
	inserted   []HabitLog
	deletedFor []int
}

func (f *fakeHabitLogRepo) InsertCompletion(ctx context.Context, tx *gorm.DB, log *HabitLog) error {
	f.inserted = append(f.inserted, *log)
	return nil
}

func (f *fakeHabitLogRepo) ArchiveDoneFor(
	ctx context.Context,
	tx *gorm.DB,
	date time.Time,
) (int64, error) {
	return 0, nil
}

func (f *fakeHabitLogRepo) HasCompletion(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	date time.Time,
) (bool, error) {
	return false, nil
}

func (f *fakeHabitLogRepo) CompletionsInRange(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	from, to time.Time,
) ([]HabitLog, error) {
	return nil, nil
}

func (f *fakeHabitLogRepo) DailyDoneCounts(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	from, to time.Time,
) ([]DayCount, error) {
	return nil, nil
}

func (f *fakeHabitLogRepo) DeleteForHabit(ctx context.Context, tx *gorm.DB, habitID int) error {
	f.deletedFor = append(f.deletedFor, habitID)
	return nil
}

func (f *fakeHabitLogRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	return 0, nil
}

func newTestController() *HabitController {
	return &HabitController{
		location: time.UTC,
		log:      logger.New("habitController"),
	}
}

func newWiredController(
	habitRepo *fakeHabitRepo,
	habitLogRepo *fakeHabitLogRepo,
) (*HabitController, *countingExecutor) {
	executor := &countingExecutor{}
	return &HabitController{
		habitRepo:          habitRepo,
		habitLogRepo:       habitLogRepo,
		transactionService: executor,
		location:           time.UTC,
		log:                logger.New("habitController"),
	}, executor
}

func ownedHabit(habitID int, userID uuid.UUID) *Habit {
	habit := &Habit{
		UserID: userID,
		Name:   "drink water",
		Status: HabitStatusPending,
	}
	habit.ID = habitID
	return habit
}

func TestCreateHabit_Validation(t *testing.T) {
	controller := newTestController()
	user := &User{}

	tests := []struct {
		name    string
		request *CreateHabitRequest
	}{
		{name: "nil request", request: nil},
		{name: "empty name", request: &CreateHabitRequest{Name: ""}},
		{
			name:    "name too long",
			request: &CreateHabitRequest{Name: strings.Repeat("x", MaxHabitNameLength+1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.CreateHabit(context.Background(), user, tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestMarkDone_InvalidHabitID(t *testing.T) {
	controller := newTestController()

	for _, habitID := range []int{0, -1} {
		_, err := controller.MarkDone(context.Background(), &User{}, habitID)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestMarkDone_UnknownHabitIsNotFound(t *testing.T) {
	habitLogRepo := &fakeHabitLogRepo{}
	controller, _ := newWiredController(&fakeHabitRepo{habits: map[int]*Habit{}}, habitLogRepo)

	user := &User{}
	user.ID = uuid.New()

	_, err := controller.MarkDone(context.Background(), user, 42)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, habitLogRepo.inserted, "no completion row for a missing habit")
}

func TestMarkDone_NotOwnedHabitIsNotFound(t *testing.T) {
	owner := uuid.New()
	habitRepo := &fakeHabitRepo{habits: map[int]*Habit{7: ownedHabit(7, owner)}}
	habitLogRepo := &fakeHabitLogRepo{}
	controller, _ := newWiredController(habitRepo, habitLogRepo)

	stranger := &User{}
	stranger.ID = uuid.New()

	_, err := controller.MarkDone(context.Background(), stranger, 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, habitRepo.setDone, "another user's habit stays untouched")
	assert.Empty(t, habitLogRepo.inserted)
}

func TestMarkDone_FlipsStatusAndLogsCompletion(t *testing.T) {
	user := &User{}
	user.ID = uuid.New()

	habitRepo := &fakeHabitRepo{habits: map[int]*Habit{7: ownedHabit(7, user.ID)}}
	habitLogRepo := &fakeHabitLogRepo{}
	controller, executor := newWiredController(habitRepo, habitLogRepo)

	habit, err := controller.MarkDone(context.Background(), user, 7)

	require.NoError(t, err)
	assert.Equal(t, HabitStatusDone, habit.Status)

	today := utils.Today(time.Now(), time.UTC)
	require.Len(t, habitLogRepo.inserted, 1)
	assert.Equal(t, 7, habitLogRepo.inserted[0].HabitID)
	assert.Equal(t, today, habitLogRepo.inserted[0].Date)

	assert.Equal(t, 1, executor.calls, "status flip and log insert share one transaction")
}

func TestDeleteHabit_InvalidHabitID(t *testing.T) {
	controller := newTestController()

	for _, habitID := range []int{0, -5} {
		err := controller.DeleteHabit(context.Background(), &User{}, habitID)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestDeleteHabit_UnknownHabitIsNotFound(t *testing.T) {
	habitRepo := &fakeHabitRepo{habits: map[int]*Habit{}}
	habitLogRepo := &fakeHabitLogRepo{}
	controller, _ := newWiredController(habitRepo, habitLogRepo)

	user := &User{}
	user.ID = uuid.New()

	err := controller.DeleteHabit(context.Background(), user, 42)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, habitLogRepo.deletedFor, "no rows change for a missing habit")
	assert.Empty(t, habitRepo.deleted)
}

func TestDeleteHabit_NotOwnedHabitIsNotFound(t *testing.T) {
	owner := uuid.New()
	habitRepo := &fakeHabitRepo{habits: map[int]*Habit{7: ownedHabit(7, owner)}}
	habitLogRepo := &fakeHabitLogRepo{}
	controller, _ := newWiredController(habitRepo, habitLogRepo)

	stranger := &User{}
	stranger.ID = uuid.New()

	err := controller.DeleteHabit(context.Background(), stranger, 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, habitRepo.deleted)
	assert.Empty(t, habitLogRepo.deletedFor)
}

func TestDeleteHabit_RemovesLogsAndHabitInOneTransaction(t *testing.T) {
	user := &User{}
	user.ID = uuid.New()

	habitRepo := &fakeHabitRepo{habits: map[int]*Habit{7: ownedHabit(7, user.ID)}}
	habitLogRepo := &fakeHabitLogRepo{}
	controller, executor := newWiredController(habitRepo, habitLogRepo)

	err := controller.DeleteHabit(context.Background(), user, 7)

	require.NoError(t, err)
	assert.Equal(t, []int{7}, habitLogRepo.deletedFor)
	assert.Equal(t, []int{7}, habitRepo.deleted)
	assert.Equal(t, 1, executor.calls, "log purge and habit delete share one transaction")
}

func TestGetProgress_DaysOutOfRange(t *testing.T) {
	controller := newTestController()

	_, err := controller.GetProgress(context.Background(), &User{}, MaxProgressDays+1)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCoversAll(t *testing.T) {
	streaks := []HabitStreak{{HabitID: 1}, {HabitID: 2}}

	habits := []*Habit{
		{BaseModel: BaseModel{ID: 1}},
		{BaseModel: BaseModel{ID: 2}},
	}
	assert.True(t, coversAll(streaks, habits))

	habits = append(habits, &Habit{BaseModel: BaseModel{ID: 3}})
	assert.False(t, coversAll(streaks, habits), "a habit without a cached streak forces a recompute")

	assert.True(t, coversAll(streaks, nil))
}
