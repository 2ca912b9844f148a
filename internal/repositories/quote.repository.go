package repositories

import (
	"context"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type QuoteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quote *Quote) error
	RandomByMood(ctx context.Context, tx *gorm.DB, mood string) (*Quote, error)
	Random(ctx context.Context, tx *gorm.DB) (*Quote, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]Quote, error)
	Delete(ctx context.Context, tx *gorm.DB, quoteID int) error
}

type quoteRepository struct{}

func NewQuoteRepository() QuoteRepository {
	return &quoteRepository{}
}

func (r *quoteRepository) Create(ctx context.Context, tx *gorm.DB, quote *Quote) error {
	log := logger.New("quoteRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(quote).Error; err != nil {
		return log.Err("failed to create quote", err)
	}

	return nil
}

// RandomByMood returns nil without error when no quote matches the mood,
// letting the controller fall back to an unfiltered pick.
func (r *quoteRepository) RandomByMood(
	ctx context.Context,
	tx *gorm.DB,
	mood string,
) (*Quote, error) {
	log := logger.New("quoteRepository").TraceFromContext(ctx).Function("RandomByMood")

	var quote Quote
	if err := tx.WithContext(ctx).
		Where("mood = ?", mood).
		Order("RANDOM()").
		First(&quote).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get quote by mood", err, "mood", mood)
	}

	return &quote, nil
}

func (r *quoteRepository) Random(ctx context.Context, tx *gorm.DB) (*Quote, error) {
	log := logger.New("quoteRepository").TraceFromContext(ctx).Function("Random")

	var quote Quote
	if err := tx.WithContext(ctx).
		Order("RANDOM()").
		First(&quote).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get random quote", err)
	}

	return &quote, nil
}

func (r *quoteRepository) List(ctx context.Context, tx *gorm.DB, limit int) ([]Quote, error) {
	log := logger.New("quoteRepository").TraceFromContext(ctx).Function("List")

	var quotes []Quote
	if err := tx.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&quotes).Error; err != nil {
		return nil, log.Err("failed to list quotes", err)
	}

	return quotes, nil
}

func (r *quoteRepository) Delete(ctx context.Context, tx *gorm.DB, quoteID int) error {
	log := logger.New("quoteRepository").TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Quote{}, quoteID)
	if result.Error != nil {
		return log.Err("failed to delete quote", result.Error, "quoteID", quoteID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
