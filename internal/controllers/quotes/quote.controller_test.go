package quoteController

import (
	"context"
	"testing"
	"time"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

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

type fakeQuoteRepo struct {
	byMood map[string]*Quote
	random *Quote
}

func (f *fakeQuoteRepo) Create(ctx context.Context, tx *gorm.DB, quote *Quote) error { return nil }

func (f *fakeQuoteRepo) RandomByMood(
	ctx context.Context,
	tx *gorm.DB,
	mood string,
) (*Quote, error) {
	return f.byMood[mood], nil
}

func (f *fakeQuoteRepo) Random(ctx context.Context, tx *gorm.DB) (*Quote, error) {
	return f.random, nil
}

func (f *fakeQuoteRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]Quote, error) {
	return nil, nil
}

func (f *fakeQuoteRepo) Delete(ctx context.Context, tx *gorm.DB, quoteID int) error { return nil }

func newTestController(moodRepo *fakeMoodRepo, quoteRepo *fakeQuoteRepo) *QuoteController {
	return &QuoteController{
		quoteRepo: quoteRepo,
		moodRepo:  moodRepo,
		log:       logger.New("quoteController"),
	}
}

func TestGetQuote_MatchesLatestMood(t *testing.T) {
	sadQuote := &Quote{Quote: "Tough days build strong people.", Mood: MoodSad}
	controller := newTestController(
		&fakeMoodRepo{latest: &MoodEntry{Mood: MoodSad}},
		&fakeQuoteRepo{
			byMood: map[string]*Quote{MoodSad: sadQuote},
			random: &Quote{Quote: "generic", Mood: MoodNeutral},
		},
	)

	quote, err := controller.GetQuote(context.Background(), &User{})

	require.NoError(t, err)
	assert.Equal(t, sadQuote, quote)
}

func TestGetQuote_FallsBackToGlobalRandom(t *testing.T) {
	random := &Quote{Quote: "generic", Mood: MoodNeutral}
	controller := newTestController(
		&fakeMoodRepo{latest: &MoodEntry{Mood: MoodAngry}},
		&fakeQuoteRepo{byMood: map[string]*Quote{}, random: random},
	)

	quote, err := controller.GetQuote(context.Background(), &User{})

	require.NoError(t, err)
	assert.Equal(t, random, quote, "no quote for the mood widens to any quote")
}

func TestGetQuote_NoMoodLoggedUsesGlobalRandom(t *testing.T) {
	random := &Quote{Quote: "generic", Mood: MoodNeutral}
	controller := newTestController(
		&fakeMoodRepo{},
		&fakeQuoteRepo{random: random},
	)

	quote, err := controller.GetQuote(context.Background(), &User{})

	require.NoError(t, err)
	assert.Equal(t, random, quote)
}

func TestGetQuote_EmptyTableUsesBuiltInFallback(t *testing.T) {
	controller := newTestController(&fakeMoodRepo{}, &fakeQuoteRepo{})

	quote, err := controller.GetQuote(context.Background(), &User{})

	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, fallbackQuote.Quote, quote.Quote)
}
