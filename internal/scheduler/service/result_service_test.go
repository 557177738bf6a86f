package service

import (
	"context"
	"testing"
	"time"

	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/internal/sentiment"
	"golang-filing-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResultRepo struct {
	results []entity.SentimentResult
}

func (s *stubResultRepo) FindAll(_ context.Context, limit int) ([]entity.SentimentResult, error) {
	if limit > 0 && limit < len(s.results) {
		return s.results[:limit], nil
	}
	return s.results, nil
}

func (s *stubResultRepo) FindByTicker(_ context.Context, ticker string) ([]entity.SentimentResult, error) {
	var out []entity.SentimentResult
	for _, r := range s.results {
		if r.Ticker == ticker {
			out = append(out, r)
		}
	}
	return out, nil
}

func newResultTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func seededResults() []entity.SentimentResult {
	base := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	scores := []float64{0.1, 0.2, 0.3, 0.4}
	results := make([]entity.SentimentResult, len(scores))
	for i, score := range scores {
		results[i] = entity.SentimentResult{
			ID:              uint(i + 1),
			Ticker:          "ACME",
			AccessionNumber: "acc-" + string(rune('1'+i)),
			DocumentType:    entity.DocumentTypeQuarterly,
			NetScore:        score,
			DominantLabel:   sentiment.LabelPositive,
			FiledAt:         base.AddDate(0, 3*i, 0),
		}
	}
	return results
}

func TestResultService_GetResults_ByTicker(t *testing.T) {
	svc := NewResultService(&stubResultRepo{results: seededResults()}, newResultTestLogger(t))

	results, err := svc.GetResults(context.Background(), "ACME", 0)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, "acc-1", results[0].AccessionNumber)
	assert.InDelta(t, 0.1, results[0].NetScore, 1e-9)

	none, err := svc.GetResults(context.Background(), "GONE", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResultService_GetResults_Limit(t *testing.T) {
	svc := NewResultService(&stubResultRepo{results: seededResults()}, newResultTestLogger(t))

	results, err := svc.GetResults(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestResultService_GetTrend(t *testing.T) {
	svc := NewResultService(&stubResultRepo{results: seededResults()}, newResultTestLogger(t))

	trend, err := svc.GetTrend(context.Background(), "ACME", 3)
	require.NoError(t, err)
	assert.Equal(t, "ACME", trend.Ticker)
	assert.Equal(t, 3, trend.Window)
	require.Len(t, trend.Points, 4)

	wantMA := []float64{0.1, 0.15, 0.2, 0.3}
	for i, point := range trend.Points {
		assert.InDelta(t, wantMA[i], point.MovingAverage, 1e-9, "point %d", i)
	}
}

func TestResultService_GetTrend_Empty(t *testing.T) {
	svc := NewResultService(&stubResultRepo{}, newResultTestLogger(t))

	_, err := svc.GetTrend(context.Background(), "GONE", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentiment.ErrNoAggregates)
}
