package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// passthroughExecutor runs the unit of work directly, no real transaction.
type passthroughExecutor struct{}

func (passthroughExecutor) Execute(
	ctx context.Context,
	fn func(context.Context, *gorm.DB) error,
) error {
	return fn(ctx, nil)
}

type fakeUserRepo struct {
	activeIDs []uuid.UUID
	listErr   error
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) PurgeUserData(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) ListActiveUserIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.activeIDs, nil
}

func (f *fakeUserRepo) Search(
	ctx context.Context,
	tx *gorm.DB,
	query string,
	limit int,
) ([]User, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.activeIDs)), nil
}

type fakeHabitRepo struct {
	mu        sync.Mutex
	resets    []uuid.UUID
	failUsers map[uuid.UUID]error
}

func (f *fakeHabitRepo) Create(ctx context.Context, tx *gorm.DB, habit *Habit) error { return nil }
func (f *fakeHabitRepo) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
) (*Habit, error) {
	return nil, gorm.ErrRecordNotFound
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
	return nil
}

func (f *fakeHabitRepo) Delete(
	ctx context.Context,
	tx *gorm.DB,
	habitID int,
	userID uuid.UUID,
) error {
	return nil
}

func (f *fakeHabitRepo) ResetAllToPending(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failUsers[userID]; ok {
		return 0, err
	}
	f.resets = append(f.resets, userID)
	return 1, nil
}

func (f *fakeHabitRepo) CountDone(ctx context.Context, tx *gorm.DB) (int64, error) {
	return 0, nil
}

func (f *fakeHabitRepo) GetCachedStreaks(
	ctx context.Context,
	userID uuid.UUID,
) ([]HabitStreak, bool) {
	return nil, false
}

func (f *fakeHabitRepo) CacheStreaks(ctx context.Context, userID uuid.UUID, streaks []HabitStreak) {
}
func (f *fakeHabitRepo) ClearStreakCache(ctx context.Context, userID uuid.UUID) {}

type fakeJobRunRepo struct {
	runs map[string]time.Time
}

func newFakeJobRunRepo() *fakeJobRunRepo {
	return &fakeJobRunRepo{runs: make(map[string]time.Time)}
}

func (f *fakeJobRunRepo) GetByName(
	ctx context.Context,
	tx *gorm.DB,
	name string,
) (*JobRun, error) {
	runDate, ok := f.runs[name]
	if !ok {
		return nil, nil
	}
	return &JobRun{Name: name, RunDate: runDate}, nil
}

func (f *fakeJobRunRepo) Upsert(
	ctx context.Context,
	tx *gorm.DB,
	name string,
	runDate time.Time,
) error {
	f.runs[name] = runDate
	return nil
}

func newResetService(
	userRepo *fakeUserRepo,
	habitRepo *fakeHabitRepo,
	habitLogRepo *fakeHabitLogRepo,
	jobRunRepo *fakeJobRunRepo,
) *HabitResetService {
	repos := repositories.Repository{
		User:     userRepo,
		Habit:    habitRepo,
		HabitLog: habitLogRepo,
		JobRun:   jobRunRepo,
	}
	return NewHabitResetService(passthroughExecutor{}, repos, time.UTC)
}

func TestHabitResetService_Run(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 30, 0, time.UTC)
	userA := uuid.New()
	userB := uuid.New()

	userRepo := &fakeUserRepo{activeIDs: []uuid.UUID{userA, userB}}
	habitRepo := &fakeHabitRepo{}
	habitLogRepo := &fakeHabitLogRepo{archiveCount: 3}
	jobRunRepo := newFakeJobRunRepo()

	service := newResetService(userRepo, habitRepo, habitLogRepo, jobRunRepo)

	err := service.Run(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, habitLogRepo.archived, 1)
	assert.Equal(t, date("2026-08-29"), habitLogRepo.archived[0], "archive targets yesterday")

	assert.ElementsMatch(t, []uuid.UUID{userA, userB}, habitRepo.resets)

	runDate, ok := jobRunRepo.runs[HabitResetJobName]
	require.True(t, ok, "checkpoint should be recorded")
	assert.Equal(t, date("2026-08-30"), runDate)
}

func TestHabitResetService_Run_SecondRunSameDayIsNoop(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 30, 0, time.UTC)

	userRepo := &fakeUserRepo{activeIDs: []uuid.UUID{uuid.New()}}
	habitRepo := &fakeHabitRepo{}
	habitLogRepo := &fakeHabitLogRepo{}
	jobRunRepo := newFakeJobRunRepo()

	service := newResetService(userRepo, habitRepo, habitLogRepo, jobRunRepo)

	require.NoError(t, service.Run(context.Background(), now))
	firstResets := len(habitRepo.resets)
	firstArchives := len(habitLogRepo.archived)

	// Simulated restart later the same day.
	require.NoError(t, service.Run(context.Background(), now.Add(4*time.Hour)))

	assert.Equal(t, firstResets, len(habitRepo.resets), "no second reset on the same day")
	assert.Equal(t, firstArchives, len(habitLogRepo.archived), "no second archive on the same day")
}

func TestHabitResetService_Run_NextDayRunsAgain(t *testing.T) {
	userRepo := &fakeUserRepo{activeIDs: []uuid.UUID{uuid.New()}}
	habitRepo := &fakeHabitRepo{}
	habitLogRepo := &fakeHabitLogRepo{}
	jobRunRepo := newFakeJobRunRepo()

	service := newResetService(userRepo, habitRepo, habitLogRepo, jobRunRepo)

	require.NoError(t, service.Run(context.Background(), date("2026-08-30")))
	require.NoError(t, service.Run(context.Background(), date("2026-08-31")))

	assert.Len(t, habitLogRepo.archived, 2)
	assert.Equal(t, date("2026-08-30"), habitLogRepo.archived[1])
	assert.Equal(t, date("2026-08-31"), jobRunRepo.runs[HabitResetJobName])
}

func TestHabitResetService_Run_ArchiveFailureBlocksReset(t *testing.T) {
	userRepo := &fakeUserRepo{activeIDs: []uuid.UUID{uuid.New()}}
	habitRepo := &fakeHabitRepo{}
	habitLogRepo := &fakeHabitLogRepo{archiveErr: errors.New("disk full")}
	jobRunRepo := newFakeJobRunRepo()

	service := newResetService(userRepo, habitRepo, habitLogRepo, jobRunRepo)

	err := service.Run(context.Background(), date("2026-08-30"))
	require.Error(t, err)

	assert.Empty(t, habitRepo.resets, "statuses must be untouched when archiving fails")
	assert.Empty(t, jobRunRepo.runs, "no checkpoint for a failed run")
}

func TestHabitResetService_Run_PerUserFailuresAreIsolated(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	userC := uuid.New()

	userRepo := &fakeUserRepo{activeIDs: []uuid.UUID{userA, userB, userC}}
	habitRepo := &fakeHabitRepo{
		failUsers: map[uuid.UUID]error{userB: errors.New("deadlock detected")},
	}
	habitLogRepo := &fakeHabitLogRepo{}
	jobRunRepo := newFakeJobRunRepo()

	service := newResetService(userRepo, habitRepo, habitLogRepo, jobRunRepo)

	err := service.Run(context.Background(), date("2026-08-30"))
	require.Error(t, err, "failures should surface in the job result")

	assert.ElementsMatch(t, []uuid.UUID{userA, userC}, habitRepo.resets,
		"other users still reset")

	_, ok := jobRunRepo.runs[HabitResetJobName]
	assert.True(t, ok, "checkpoint recorded even with partial failures")
}

func TestHabitResetService_ResetUsers_StopsWhenContextCanceled(t *testing.T) {
	userRepo := &fakeUserRepo{}
	habitRepo := &fakeHabitRepo{}
	habitLogRepo := &fakeHabitLogRepo{}
	jobRunRepo := newFakeJobRunRepo()

	service := newResetService(userRepo, habitRepo, habitLogRepo, jobRunRepo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	failures := service.resetUsers(ctx, []uuid.UUID{uuid.New(), uuid.New(), uuid.New()})

	assert.Empty(t, habitRepo.resets, "no user is enqueued once shutdown begins")
	assert.Zero(t, failures)
}

func TestHabitResetService_Run_TimezoneAnchorsDay(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	userRepo := &fakeUserRepo{activeIDs: nil}
	habitRepo := &fakeHabitRepo{}
	habitLogRepo := &fakeHabitLogRepo{}
	jobRunRepo := newFakeJobRunRepo()

	repos := repositories.Repository{
		User:     userRepo,
		Habit:    habitRepo,
		HabitLog: habitLogRepo,
		JobRun:   jobRunRepo,
	}
	service := NewHabitResetService(passthroughExecutor{}, repos, kolkata)

	// 18:31 UTC on the 29th is already 00:01 on the 30th in Kolkata.
	now := time.Date(2026, 8, 29, 18, 31, 0, 0, time.UTC)
	require.NoError(t, service.Run(context.Background(), now))

	require.Len(t, habitLogRepo.archived, 1)
	assert.Equal(t, utils.DateKey(habitLogRepo.archived[0]), "2026-08-29")
	assert.Equal(t, "2026-08-30", utils.DateKey(jobRunRepo.runs[HabitResetJobName]))
}
