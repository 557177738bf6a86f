package service

import (
	"context"
	"fmt"

	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/internal/scheduler/dto"
	"golang-filing-sentiment/internal/scheduler/repository"
	"golang-filing-sentiment/internal/sentiment"
	"golang-filing-sentiment/pkg/logger"
)

// ResultService defines the read interface over sentiment results and trends.
type ResultService interface {
	GetResults(ctx context.Context, ticker string, limit int) ([]*dto.SentimentResultResponse, error)
	GetTrend(ctx context.Context, ticker string, window int) (*dto.TrendResponse, error)
}

// NewResultService creates a new result service.
func NewResultService(resultRepo repository.SentimentResultRepository, logger *logger.Logger) ResultService {
	return &resultService{
		resultRepo: resultRepo,
		logger:     logger,
	}
}

type resultService struct {
	resultRepo repository.SentimentResultRepository
	logger     *logger.Logger
}

// GetResults retrieves stored sentiment results, optionally scoped to a ticker.
func (s *resultService) GetResults(ctx context.Context, ticker string, limit int) ([]*dto.SentimentResultResponse, error) {
	var (
		results []entity.SentimentResult
		err     error
	)
	if ticker != "" {
		results, err = s.resultRepo.FindByTicker(ctx, ticker)
	} else {
		results, err = s.resultRepo.FindAll(ctx, limit)
	}
	if err != nil {
		s.logger.Error("Failed to get sentiment results", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	responses := make([]*dto.SentimentResultResponse, len(results))
	for i, r := range results {
		responses[i] = &dto.SentimentResultResponse{
			ID:              r.ID,
			Ticker:          r.Ticker,
			AccessionNumber: r.AccessionNumber,
			DocumentType:    string(r.DocumentType),
			NetScore:        r.NetScore,
			DominantLabel:   r.DominantLabel,
			SentenceCount:   r.SentenceCount,
			AvgPositive:     r.AvgPositive,
			AvgNegative:     r.AvgNegative,
			TopKeywords:     r.TopKeywords,
			FiledAt:         r.FiledAt,
		}
	}
	return responses, nil
}

// GetTrend derives the trend series for a ticker from its stored results.
func (s *resultService) GetTrend(ctx context.Context, ticker string, window int) (*dto.TrendResponse, error) {
	results, err := s.resultRepo.FindByTicker(ctx, ticker)
	if err != nil {
		s.logger.Error("Failed to get sentiment results for trend", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	entries := make([]sentiment.SeriesEntry, len(results))
	for i, r := range results {
		entries[i] = sentiment.SeriesEntry{
			FiledAt:   r.FiledAt,
			NetScore:  r.NetScore,
			Accession: r.AccessionNumber,
		}
	}

	if window <= 0 {
		window = sentiment.DefaultWindow
	}

	series, err := sentiment.BuildTrendSeries(entries, window)
	if err != nil {
		return nil, fmt.Errorf("nothing to analyze for %s: %w", ticker, err)
	}

	return &dto.TrendResponse{
		Ticker: ticker,
		Window: window,
		Points: series.Points,
	}, nil
}
