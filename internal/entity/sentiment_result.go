package entity

import (
	"time"

	"github.com/lib/pq"
)

// SentimentResult is the per-document aggregate: one row per processed filing.
type SentimentResult struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	FilingID        uint           `gorm:"not null" json:"filing_id"`
	Ticker          string         `gorm:"type:varchar(10);not null;index" json:"ticker"`
	AccessionNumber string         `gorm:"unique;not null" json:"accession_number"`
	DocumentType    DocumentType   `gorm:"type:varchar(10);not null" json:"document_type"`
	NetScore        float64        `gorm:"not null" json:"net_score"`
	DominantLabel   string         `gorm:"type:varchar(10);not null" json:"dominant_label"`
	SentenceCount   int            `gorm:"not null" json:"sentence_count"`
	AvgPositive     float64        `gorm:"not null" json:"avg_positive"`
	AvgNegative     float64        `gorm:"not null" json:"avg_negative"`
	TopKeywords     pq.StringArray `gorm:"type:text[]" json:"top_keywords"`
	FiledAt         time.Time      `gorm:"not null;index" json:"filed_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SentimentResult model.
func (SentimentResult) TableName() string {
	return "sentiment_results"
}
