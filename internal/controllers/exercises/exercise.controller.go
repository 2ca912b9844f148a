package exerciseController

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
	MaxDurationSec     = 4 * 60 * 60
	RecentLogLimit     = 50
	streakLookbackDays = 90
)

var ErrValidation = errors.New("validation error")

// suggestions is the static workout catalog, keyed by mood. Unknown moods
// fall back to the neutral set.
var suggestions = map[string][]ExerciseSuggestion{
	MoodHappy: {
		{Key: "dance-cardio", Title: "Dance Cardio", DurationMin: 20, Description: "Keep the good mood rolling with an upbeat dance session."},
		{Key: "outdoor-run", Title: "Outdoor Run", DurationMin: 30, Description: "Take the energy outside with a steady-pace run."},
	},
	MoodExcited: {
		{Key: "hiit", Title: "HIIT Circuit", DurationMin: 15, Description: "Burn off the extra energy with high-intensity intervals."},
		{Key: "jump-rope", Title: "Jump Rope", DurationMin: 10, Description: "Fast, fun, and over before you know it."},
	},
	MoodCalm: {
		{Key: "yoga-flow", Title: "Yoga Flow", DurationMin: 25, Description: "A slow vinyasa flow to stay grounded."},
		{Key: "stretching", Title: "Full-Body Stretch", DurationMin: 15, Description: "Gentle stretching to keep the calm going."},
	},
	MoodNeutral: {
		{Key: "brisk-walk", Title: "Brisk Walk", DurationMin: 30, Description: "A simple walk to get the blood moving."},
		{Key: "bodyweight", Title: "Bodyweight Basics", DurationMin: 20, Description: "Squats, push-ups, and planks. No equipment needed."},
	},
	MoodSad: {
		{Key: "gentle-yoga", Title: "Gentle Yoga", DurationMin: 20, Description: "Slow, restorative poses to lift the mood gently."},
		{Key: "nature-walk", Title: "Nature Walk", DurationMin: 25, Description: "Fresh air and movement, no pressure."},
	},
	MoodAnxious: {
		{Key: "breathing-stretch", Title: "Breathing & Stretch", DurationMin: 15, Description: "Paired breathing and stretching to settle the nerves."},
		{Key: "tai-chi", Title: "Tai Chi Basics", DurationMin: 20, Description: "Slow, deliberate movement to quiet a racing mind."},
	},
	MoodAngry: {
		{Key: "boxing", Title: "Shadow Boxing", DurationMin: 15, Description: "A safe outlet for the frustration."},
		{Key: "power-walk", Title: "Power Walk", DurationMin: 30, Description: "Walk it off, fast."},
	},
}

// badgeThresholds maps total completed workouts to earned badges.
var badgeThresholds = []struct {
	Count int64
	Badge string
}{
	{1, "first-workout"},
	{10, "ten-workouts"},
	{50, "fifty-workouts"},
	{100, "century-club"},
}

type ExerciseController struct {
	exerciseRepo       repositories.ExerciseRepository
	moodRepo           repositories.MoodRepository
	transactionService *services.TransactionService
	db                 database.DB
	location           *time.Location
	log                logger.Logger
}

type LogExerciseRequest struct {
	ExerciseKey string `json:"exerciseKey"`
	DurationSec int    `json:"durationSec"`
}

type ExerciseSummaryResponse struct {
	Suggestions []ExerciseSuggestion `json:"suggestions"`
	Recent      []ExerciseLog        `json:"recent"`
	StreakDays  int                  `json:"streakDays"`
	Badges      []string             `json:"badges"`
}

type ExerciseControllerInterface interface {
	LogExercise(ctx context.Context, user *User, request *LogExerciseRequest) (*ExerciseLog, error)
	GetSummary(ctx context.Context, user *User) (*ExerciseSummaryResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) ExerciseControllerInterface {
	return &ExerciseController{
		exerciseRepo:       repos.Exercise,
		moodRepo:           repos.Mood,
		transactionService: services.Transaction,
		db:                 db,
		location:           services.Location,
		log:                logger.New("exerciseController"),
	}
}

func (c *ExerciseController) LogExercise(
	ctx context.Context,
	user *User,
	request *LogExerciseRequest,
) (*ExerciseLog, error) {
	log := c.log.TraceFromContext(ctx).Function("LogExercise")

	if request == nil || request.ExerciseKey == "" {
		return nil, log.ErrorWithType(ErrValidation, "exerciseKey is required")
	}
	if request.DurationSec <= 0 || request.DurationSec > MaxDurationSec {
		return nil, log.ErrorWithType(ErrValidation, "durationSec out of range", "max", MaxDurationSec)
	}

	entry := &ExerciseLog{
		UserID:      user.ID,
		ExerciseKey: request.ExerciseKey,
		DurationSec: request.DurationSec,
		CompletedAt: time.Now(),
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.exerciseRepo.Create(ctx, tx, entry)
	})
	if err != nil {
		return nil, log.Err("failed to log exercise", err, "userID", user.ID)
	}

	return entry, nil
}

// GetSummary bundles mood-matched suggestions, recent completions, the
// consecutive workout-day streak, and earned badges into one response.
func (c *ExerciseController) GetSummary(
	ctx context.Context,
	user *User,
) (*ExerciseSummaryResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("GetSummary")

	mood := MoodNeutral
	if latest, err := c.moodRepo.Latest(ctx, c.db.SQL, user.ID); err == nil && latest != nil {
		mood = latest.Mood
	}

	suggested, ok := suggestions[mood]
	if !ok {
		suggested = suggestions[MoodNeutral]
	}

	recent, err := c.exerciseRepo.ListForUser(ctx, c.db.SQL, user.ID, RecentLogLimit)
	if err != nil {
		return nil, log.Err("failed to list exercises", err, "userID", user.ID)
	}

	streakDays, err := c.workoutStreak(ctx, user)
	if err != nil {
		return nil, err
	}

	total, err := c.exerciseRepo.CountForUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to count exercises", err, "userID", user.ID)
	}

	badges := make([]string, 0, len(badgeThresholds))
	for _, threshold := range badgeThresholds {
		if total >= threshold.Count {
			badges = append(badges, threshold.Badge)
		}
	}

	return &ExerciseSummaryResponse{
		Suggestions: suggested,
		Recent:      recent,
		StreakDays:  streakDays,
		Badges:      badges,
	}, nil
}

// workoutStreak counts consecutive days with at least one completion,
// walking back from today. Today itself counts as soon as a workout is
// logged; a gap yesterday ends the streak at zero or whatever today holds.
func (c *ExerciseController) workoutStreak(ctx context.Context, user *User) (int, error) {
	log := c.log.TraceFromContext(ctx).Function("workoutStreak")

	today := utils.Today(time.Now(), c.location)
	since := utils.AddDays(today, -streakLookbackDays)

	counts, err := c.exerciseRepo.DailyCountsSince(ctx, c.db.SQL, user.ID, since)
	if err != nil {
		return 0, log.Err("failed to fetch workout days", err, "userID", user.ID)
	}

	days := make(map[string]bool, len(counts))
	for _, count := range counts {
		days[utils.DateKey(utils.Normalize(count.Date))] = true
	}

	streak := 0
	day := today
	if !days[utils.DateKey(day)] {
		day = utils.AddDays(day, -1)
	}
	for days[utils.DateKey(day)] {
		streak++
		day = utils.AddDays(day, -1)
	}

	return streak, nil
}
