package exerciseController

import (
	"context"
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

type fakeExerciseRepo struct {
	recent    []ExerciseLog
	dayCounts []DayCount
	total     int64
}

func (f *fakeExerciseRepo) Create(ctx context.Context, tx *gorm.DB, entry *ExerciseLog) error {
	return nil
}

func (f *fakeExerciseRepo) ListForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	limit int,
) ([]ExerciseLog, error) {
	return f.recent, nil
}

func (f *fakeExerciseRepo) DailyCountsSince(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	since time.Time,
) ([]DayCount, error) {
	return f.dayCounts, nil
}

func (f *fakeExerciseRepo) CountForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int64, error) {
	return f.total, nil
}

type fakeMoodRepo struct {
	latest *MoodEntry
}

func (f *fakeMoodRepo) Create(ctx context.Context, tx *gorm.DB, entry *MoodEntry) error {
	return nil
}

func (f *fakeMoodRepo) Latest(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (*MoodEntry, error) {
	return f.latest, nil
}

func (f *fakeMoodRepo) CountsSince(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	since time.Time,
) ([]MoodCount, error) {
	return nil, nil
}

func (f *fakeMoodRepo) DailyCountsSince(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	since time.Time,
) ([]MoodDayCount, error) {
	return nil, nil
}

func newTestController(exerciseRepo *fakeExerciseRepo, moodRepo *fakeMoodRepo) *ExerciseController {
	return &ExerciseController{
		exerciseRepo: exerciseRepo,
		moodRepo:     moodRepo,
		location:     time.UTC,
		log:          logger.New("exerciseController"),
	}
}

func workoutDays(offsets ...int) []DayCount {
	today := utils.Today(time.Now(), time.UTC)

	counts := make([]DayCount, 0, len(offsets))
	for _, offset := range offsets {
		counts = append(counts, DayCount{Date: utils.AddDays(today, offset), Count: 1})
	}
	return counts
}

func TestLogExercise_Validation(t *testing.T) {
	controller := newTestController(&fakeExerciseRepo{}, &fakeMoodRepo{})
	user := &User{}

	tests := []struct {
		name    string
		request *LogExerciseRequest
	}{
		{name: "nil request", request: nil},
		{name: "missing key", request: &LogExerciseRequest{DurationSec: 600}},
		{name: "zero duration", request: &LogExerciseRequest{ExerciseKey: "hiit"}},
		{
			name:    "duration too long",
			request: &LogExerciseRequest{ExerciseKey: "hiit", DurationSec: MaxDurationSec + 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.LogExercise(context.Background(), user, tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGetSummary_SuggestionsFollowLatestMood(t *testing.T) {
	controller := newTestController(
		&fakeExerciseRepo{},
		&fakeMoodRepo{latest: &MoodEntry{Mood: MoodAngry}},
	)

	summary, err := controller.GetSummary(context.Background(), &User{})

	require.NoError(t, err)
	assert.Equal(t, suggestions[MoodAngry], summary.Suggestions)
}

func TestGetSummary_NoMoodDefaultsToNeutral(t *testing.T) {
	controller := newTestController(&fakeExerciseRepo{}, &fakeMoodRepo{})

	summary, err := controller.GetSummary(context.Background(), &User{})

	require.NoError(t, err)
	assert.Equal(t, suggestions[MoodNeutral], summary.Suggestions)
}

func TestGetSummary_StreakWalk(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{name: "no workouts", offsets: nil, want: 0},
		{name: "today only", offsets: []int{0}, want: 1},
		{name: "three days ending today", offsets: []int{0, -1, -2}, want: 3},
		{name: "run ending yesterday still counts", offsets: []int{-1, -2}, want: 2},
		{name: "gap yesterday ends the run", offsets: []int{-2, -3}, want: 0},
		{name: "gap in the middle stops the walk", offsets: []int{0, -1, -3, -4}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newTestController(
				&fakeExerciseRepo{dayCounts: workoutDays(tt.offsets...)},
				&fakeMoodRepo{},
			)

			summary, err := controller.GetSummary(context.Background(), &User{})

			require.NoError(t, err)
			assert.Equal(t, tt.want, summary.StreakDays)
		})
	}
}

func TestGetSummary_Badges(t *testing.T) {
	tests := []struct {
		total int64
		want  []string
	}{
		{total: 0, want: []string{}},
		{total: 1, want: []string{"first-workout"}},
		{total: 12, want: []string{"first-workout", "ten-workouts"}},
		{total: 150, want: []string{"first-workout", "ten-workouts", "fifty-workouts", "century-club"}},
	}

	for _, tt := range tests {
		controller := newTestController(&fakeExerciseRepo{total: tt.total}, &fakeMoodRepo{})

		summary, err := controller.GetSummary(context.Background(), &User{})

		require.NoError(t, err)
		assert.Equal(t, tt.want, summary.Badges, "total=%d", tt.total)
	}
}
