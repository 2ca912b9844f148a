package quoteController

import (
	"context"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

// fallbackQuote keeps the endpoint useful before any quotes are seeded.
var fallbackQuote = Quote{
	Quote:    "Small steps every day add up to big changes.",
	Mood:     MoodNeutral,
	Category: "motivation",
}

type QuoteController struct {
	quoteRepo repositories.QuoteRepository
	moodRepo  repositories.MoodRepository
	db        database.DB
	log       logger.Logger
}

type QuoteControllerInterface interface {
	GetQuote(ctx context.Context, user *User) (*Quote, error)
}

func New(repos repositories.Repository, db database.DB) QuoteControllerInterface {
	return &QuoteController{
		quoteRepo: repos.Quote,
		moodRepo:  repos.Mood,
		db:        db,
		log:       logger.New("quoteController"),
	}
}

// GetQuote picks a random quote matching the user's latest mood, widening to
// any quote and finally a built-in fallback when the table is empty.
func (c *QuoteController) GetQuote(ctx context.Context, user *User) (*Quote, error) {
	log := c.log.TraceFromContext(ctx).Function("GetQuote")

	if latest, err := c.moodRepo.Latest(ctx, c.db.SQL, user.ID); err == nil && latest != nil {
		quote, err := c.quoteRepo.RandomByMood(ctx, c.db.SQL, latest.Mood)
		if err != nil {
			return nil, log.Err("failed to get quote by mood", err, "mood", latest.Mood)
		}
		if quote != nil {
			return quote, nil
		}
	}

	quote, err := c.quoteRepo.Random(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to get random quote", err)
	}
	if quote == nil {
		fallback := fallbackQuote
		return &fallback, nil
	}

	return quote, nil
}
