package strategy

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/analyzer/dto"
	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/internal/sentiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) SendMessage(text string) error {
	n.messages = append(n.messages, text)
	return nil
}

func trendTestConfig(outputDir string) *config.Config {
	return &config.Config{
		Analysis: config.Analysis{
			MovingAverageWindow: 3,
			TopKeywords:         5,
			OutputDir:           outputDir,
		},
	}
}

func seededResultRepo() *memResultRepo {
	base := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &memResultRepo{}
	scores := []float64{0.1, 0.2, 0.3, 0.4}
	for i, score := range scores {
		repo.results = append(repo.results, entity.SentimentResult{
			Ticker:          "ACME",
			AccessionNumber: "0000000123-23-00000" + string(rune('1'+i)),
			DocumentType:    entity.DocumentTypeQuarterly,
			NetScore:        score,
			DominantLabel:   sentiment.LabelPositive,
			FiledAt:         base.AddDate(0, 3*i, 0),
		})
	}
	return repo
}

func trendPayload(t *testing.T, payload dto.TrendReportPayload) datatypes.JSON {
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return datatypes.JSON(raw)
}

func TestTrendReportStrategy_GetType(t *testing.T) {
	s := NewTrendReportStrategy(trendTestConfig(t.TempDir()), newTestLogger(t), newMemFilingRepo(), &memResultRepo{}, nil)
	assert.Equal(t, entity.JobTypeTrendReport, s.GetType())
}

func TestTrendReportStrategy_Execute(t *testing.T) {
	outputDir := t.TempDir()
	filingRepo := newMemFilingRepo()
	section := strings.Repeat("Liquidity remained strong supported by robust operating cash flow. ", 20)
	require.NoError(t, filingRepo.Upsert(context.Background(), &entity.Filing{
		Ticker:          "ACME",
		DocumentType:    entity.DocumentTypeQuarterly,
		AccessionNumber: "0000000123-23-000001",
		FiledAt:         time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		SectionText:     section,
		SectionLength:   len(section),
		Status:          entity.FilingStatusExtracted,
	}))

	notifier := &recordingNotifier{}
	s := NewTrendReportStrategy(trendTestConfig(outputDir), newTestLogger(t), filingRepo, seededResultRepo(), notifier)

	job := &entity.Job{
		Type:    entity.JobTypeTrendReport,
		Payload: trendPayload(t, dto.TrendReportPayload{Ticker: "ACME"}),
	}

	output, err := s.Execute(context.Background(), job)
	require.NoError(t, err)

	var report dto.TrendReportResult
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	require.Len(t, report.Points, 4)
	wantMA := []float64{0.1, 0.15, 0.2, 0.3}
	for i, point := range report.Points {
		assert.InDelta(t, wantMA[i], point.MovingAverage, 1e-9, "point %d", i)
	}

	assert.NotEmpty(t, report.Keywords)
	assert.Equal(t, "liquidity", report.Keywords[0].Token)

	require.FileExists(t, report.CSVPath)
	file, err := os.Open(report.CSVPath)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5) // header + 4 points
	assert.Equal(t, []string{"filed_at", "accession_number", "document_type", "net_score", "moving_average", "z_score", "dominant_label"}, rows[0])
	assert.Equal(t, "2023-03-01", rows[1][0])

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "ACME")
	assert.Contains(t, notifier.messages[0], "liquidity")
}

func TestTrendReportStrategy_Execute_NoResults(t *testing.T) {
	s := NewTrendReportStrategy(trendTestConfig(t.TempDir()), newTestLogger(t), newMemFilingRepo(), &memResultRepo{}, nil)

	job := &entity.Job{
		Type:    entity.JobTypeTrendReport,
		Payload: trendPayload(t, dto.TrendReportPayload{Ticker: "GONE"}),
	}

	_, err := s.Execute(context.Background(), job)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentiment.ErrNoAggregates)
	assert.Contains(t, err.Error(), "nothing to analyze")
}
