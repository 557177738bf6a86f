package repository

import (
	"context"

	"golang-filing-sentiment/internal/entity"

	"gorm.io/gorm"
)

// SentimentResultRepository defines the read interface over stored sentiment results.
type SentimentResultRepository interface {
	FindAll(ctx context.Context, limit int) ([]entity.SentimentResult, error)
	FindByTicker(ctx context.Context, ticker string) ([]entity.SentimentResult, error)
}

// NewSentimentResultRepository creates a new GORM-based sentiment result repository.
func NewSentimentResultRepository(db *gorm.DB) SentimentResultRepository {
	return &sentimentResultRepository{db: db}
}

type sentimentResultRepository struct {
	db *gorm.DB
}

// FindAll retrieves the most recent sentiment results across all tickers.
func (r *sentimentResultRepository) FindAll(ctx context.Context, limit int) ([]entity.SentimentResult, error) {
	var results []entity.SentimentResult
	query := r.db.WithContext(ctx).Order("filed_at DESC, accession_number DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindByTicker retrieves all sentiment results for a ticker ordered by filing date.
func (r *sentimentResultRepository) FindByTicker(ctx context.Context, ticker string) ([]entity.SentimentResult, error) {
	var results []entity.SentimentResult
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("filed_at ASC, accession_number ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
