package dto

import (
	"time"

	"golang-filing-sentiment/internal/sentiment"
)

// SentimentResultResponse is the DTO for one stored per-filing aggregate.
type SentimentResultResponse struct {
	ID              uint      `json:"id"`
	Ticker          string    `json:"ticker"`
	AccessionNumber string    `json:"accession_number"`
	DocumentType    string    `json:"document_type"`
	NetScore        float64   `json:"net_score"`
	DominantLabel   string    `json:"dominant_label"`
	SentenceCount   int       `json:"sentence_count"`
	AvgPositive     float64   `json:"avg_positive"`
	AvgNegative     float64   `json:"avg_negative"`
	TopKeywords     []string  `json:"top_keywords"`
	FiledAt         time.Time `json:"filed_at"`
}

// TrendResponse is the DTO for the per-ticker sentiment trend.
type TrendResponse struct {
	Ticker string                 `json:"ticker"`
	Window int                    `json:"window"`
	Points []sentiment.TrendPoint `json:"points"`
}
