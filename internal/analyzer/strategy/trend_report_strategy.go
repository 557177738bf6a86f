package strategy

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/analyzer/dto"
	"golang-filing-sentiment/internal/analyzer/repository"
	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/internal/mda"
	"golang-filing-sentiment/internal/sentiment"
	"golang-filing-sentiment/pkg/logger"
	"golang-filing-sentiment/pkg/telegram"
)

// TrendReportStrategy derives the per-ticker sentiment trend from stored
// results, exports it as CSV and pushes a summary notification.
type TrendReportStrategy struct {
	cfg        *config.Config
	logger     *logger.Logger
	filingRepo repository.FilingRepository
	resultRepo repository.SentimentResultRepository
	segmenter  *mda.Segmenter
	notifier   telegram.Notifier
}

// NewTrendReportStrategy creates a new instance of TrendReportStrategy. The
// notifier may be nil, in which case no notification is sent.
func NewTrendReportStrategy(
	cfg *config.Config,
	log *logger.Logger,
	filingRepo repository.FilingRepository,
	resultRepo repository.SentimentResultRepository,
	notifier telegram.Notifier,
) *TrendReportStrategy {
	return &TrendReportStrategy{
		cfg:        cfg,
		logger:     log,
		filingRepo: filingRepo,
		resultRepo: resultRepo,
		segmenter:  mda.NewSegmenter(cfg.Analysis.LegalPhrases),
		notifier:   notifier,
	}
}

// GetType returns the job type this strategy handles.
func (s *TrendReportStrategy) GetType() entity.JobType {
	return entity.JobTypeTrendReport
}

// Execute runs the trend report job.
func (s *TrendReportStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload dto.TrendReportPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}
	if payload.Ticker == "" {
		return "", fmt.Errorf("job payload has no ticker")
	}
	if payload.Window <= 0 {
		payload.Window = s.cfg.Analysis.MovingAverageWindow
	}
	if payload.TopKeywords <= 0 {
		payload.TopKeywords = s.cfg.Analysis.TopKeywords
	}

	results, err := s.resultRepo.FindByTicker(ctx, payload.Ticker)
	if err != nil {
		return "", fmt.Errorf("failed to load sentiment results for %s: %w", payload.Ticker, err)
	}

	entries := make([]sentiment.SeriesEntry, len(results))
	for i, r := range results {
		entries[i] = sentiment.SeriesEntry{
			FiledAt:   r.FiledAt,
			NetScore:  r.NetScore,
			Accession: r.AccessionNumber,
		}
	}

	series, err := sentiment.BuildTrendSeries(entries, payload.Window)
	if err != nil {
		return "", fmt.Errorf("nothing to analyze for %s: %w", payload.Ticker, err)
	}

	keywords, err := s.collectKeywords(ctx, payload.Ticker, payload.TopKeywords)
	if err != nil {
		return "", err
	}

	csvPath, err := s.exportCSV(payload.Ticker, results, series)
	if err != nil {
		return "", err
	}

	report := dto.TrendReportResult{
		Ticker:   payload.Ticker,
		Points:   series.Points,
		Keywords: keywords,
		CSVPath:  csvPath,
	}

	s.notify(report)

	output, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(output), nil
}

// collectKeywords re-segments the stored MD&A sections so the keyword corpus
// covers every extracted filing, not just the scored sentences of the last run.
func (s *TrendReportStrategy) collectKeywords(ctx context.Context, ticker string, topK int) ([]sentiment.KeywordCount, error) {
	filings, err := s.filingRepo.FindExtractedByTicker(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load filings for %s: %w", ticker, err)
	}

	var sentences []string
	for _, filing := range filings {
		sentences = append(sentences, s.segmenter.Split(mda.Normalize(filing.SectionText))...)
	}

	counter := sentiment.NewKeywordCounter(s.cfg.Analysis.Stopwords)
	return counter.Top(sentences, topK), nil
}

// exportCSV writes one row per filing: date, net score, moving average and
// z-score, in series order.
func (s *TrendReportStrategy) exportCSV(ticker string, results []entity.SentimentResult, series sentiment.TrendSeries) (string, error) {
	outputDir := s.cfg.Analysis.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	csvPath := filepath.Join(outputDir, fmt.Sprintf("%s_sentiment_results.csv", strings.ToLower(ticker)))
	file, err := os.Create(csvPath)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"filed_at", "accession_number", "document_type", "net_score", "moving_average", "z_score", "dominant_label"}); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, point := range series.Points {
		accession := ""
		docType := ""
		label := ""
		if i < len(results) {
			// Series order matches the repository order, both ascend by
			// filed_at then accession number.
			accession = results[i].AccessionNumber
			docType = string(results[i].DocumentType)
			label = results[i].DominantLabel
		}
		row := []string{
			point.FiledAt.Format("2006-01-02"),
			accession,
			docType,
			strconv.FormatFloat(point.NetScore, 'f', 6, 64),
			strconv.FormatFloat(point.MovingAverage, 'f', 6, 64),
			strconv.FormatFloat(point.ZScore, 'f', 6, 64),
			label,
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return csvPath, nil
}

func (s *TrendReportStrategy) notify(report dto.TrendReportResult) {
	if s.notifier == nil {
		return
	}

	last := report.Points[len(report.Points)-1]
	var keywordList []string
	for _, kw := range report.Keywords {
		keywordList = append(keywordList, kw.Token)
	}

	message := fmt.Sprintf(
		"*Sentiment Trend: %s*\nDocuments: %d\nLatest net score: %.4f\nMoving average: %.4f\nZ-score: %.4f\nTop keywords: %s",
		report.Ticker, len(report.Points), last.NetScore, last.MovingAverage, last.ZScore, strings.Join(keywordList, ", "),
	)

	if err := s.notifier.SendMessage(message); err != nil {
		s.logger.Error("Failed to send trend notification", logger.ErrorField(err), logger.StringField("ticker", report.Ticker))
	}
}
