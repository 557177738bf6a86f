package dto

import (
	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/internal/sentiment"
)

// FilingAnalyzerPayload configures one filing-analysis job run.
type FilingAnalyzerPayload struct {
	Ticker        string   `json:"ticker"`
	Reports       int      `json:"reports"`
	DocumentTypes []string `json:"document_types"`
}

// TrendReportPayload configures one trend-report job run.
type TrendReportPayload struct {
	Ticker      string `json:"ticker"`
	Window      int    `json:"window"`
	TopKeywords int    `json:"top_keywords"`
}

// DocumentDiagnostic identifies a skipped document and which stage rejected it.
type DocumentDiagnostic struct {
	AccessionNumber string              `json:"accession_number"`
	DocumentType    entity.DocumentType `json:"document_type"`
	Stage           string              `json:"stage"`
	Reason          string              `json:"reason"`
}

// FilingAnalyzerResult is the output of one filing-analysis job run.
type FilingAnalyzerResult struct {
	Ticker        string               `json:"ticker"`
	Analyzed      int                  `json:"analyzed"`
	Skipped       []DocumentDiagnostic `json:"skipped"`
	MeanNetScore  float64              `json:"mean_net_score"`
	DominantTrend string               `json:"dominant_trend"`
}

// TrendReportResult is the output of one trend-report job run.
type TrendReportResult struct {
	Ticker   string                   `json:"ticker"`
	Points   []sentiment.TrendPoint   `json:"points"`
	Keywords []sentiment.KeywordCount `json:"keywords"`
	CSVPath  string                   `json:"csv_path"`
}
