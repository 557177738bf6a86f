package repository

import (
	"context"

	"golang-filing-sentiment/internal/analyzer/dto"
	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/internal/sentiment"
)

// ClassifierRepository scores sentences for sentiment.
type ClassifierRepository interface {
	ClassifySentences(ctx context.Context, sentences []string) ([]sentiment.Classification, error)
}

// EdgarRepository fetches filing metadata and documents from SEC EDGAR.
type EdgarRepository interface {
	GetRecentFilings(ctx context.Context, ticker string, docType entity.DocumentType, limit int) ([]dto.FilingRef, error)
	DownloadFiling(ctx context.Context, ref dto.FilingRef) (string, error)
}
