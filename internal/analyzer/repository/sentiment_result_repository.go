package repository

import (
	"context"

	"golang-filing-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SentimentResultRepository defines the interface for sentiment result data operations.
type SentimentResultRepository interface {
	CreateIgnoreConflict(ctx context.Context, result *entity.SentimentResult) error
	FindByTicker(ctx context.Context, ticker string) ([]entity.SentimentResult, error)
}

// NewSentimentResultRepository creates a new GORM-based sentiment result repository.
func NewSentimentResultRepository(db *gorm.DB) SentimentResultRepository {
	return &sentimentResultRepository{db: db}
}

type sentimentResultRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict saves a sentiment result, skipping accession numbers already scored.
func (r *sentimentResultRepository) CreateIgnoreConflict(ctx context.Context, result *entity.SentimentResult) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "accession_number"}},
		DoNothing: true,
	}).Create(result).Error
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
