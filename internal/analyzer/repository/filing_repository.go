package repository

import (
	"context"

	"golang-filing-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilingRepository defines the interface for filing data operations.
type FilingRepository interface {
	Upsert(ctx context.Context, filing *entity.Filing) error
	FindByAccessionNumber(ctx context.Context, accessionNumber string) (*entity.Filing, error)
	FindExtractedByTicker(ctx context.Context, ticker string) ([]entity.Filing, error)
}

// NewFilingRepository creates a new GORM-based filing repository.
func NewFilingRepository(db *gorm.DB) FilingRepository {
	return &filingRepository{db: db}
}

type filingRepository struct {
	db *gorm.DB
}

// Upsert saves a filing, replacing the stored section when the accession number already exists.
func (r *filingRepository) Upsert(ctx context.Context, filing *entity.Filing) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "accession_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"section_text", "section_length", "status", "skip_reason", "updated_at"}),
	}).Create(filing).Error
}

// FindByAccessionNumber retrieves a filing by its accession number.
func (r *filingRepository) FindByAccessionNumber(ctx context.Context, accessionNumber string) (*entity.Filing, error) {
	var filing entity.Filing
	if err := r.db.WithContext(ctx).Where("accession_number = ?", accessionNumber).First(&filing).Error; err != nil {
		return nil, err
	}
	return &filing, nil
}

// FindExtractedByTicker retrieves all successfully extracted filings for a ticker, oldest first.
func (r *filingRepository) FindExtractedByTicker(ctx context.Context, ticker string) ([]entity.Filing, error) {
	var filings []entity.Filing
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND status = ?", ticker, entity.FilingStatusExtracted).
		Order("filed_at ASC, accession_number ASC").
		Find(&filings).Error
	if err != nil {
		return nil, err
	}
	return filings, nil
}
