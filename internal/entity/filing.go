package entity

import (
	"time"
)

// DocumentType identifies the form type of a regulatory filing.
type DocumentType string

const (
	DocumentTypeAnnual    DocumentType = "10-K"
	DocumentTypeQuarterly DocumentType = "10-Q"
)

// FilingStatus tracks the outcome of MD&A extraction for a filing.
type FilingStatus string

const (
	FilingStatusExtracted FilingStatus = "extracted"
	FilingStatusSkipped   FilingStatus = "skipped"
)

// Filing represents one regulatory filing instance. The extracted MD&A
// section text is kept so later stages can re-segment it without another
// download.
type Filing struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Ticker          string       `gorm:"type:varchar(10);not null;index" json:"ticker"`
	DocumentType    DocumentType `gorm:"type:varchar(10);not null" json:"document_type"`
	AccessionNumber string       `gorm:"unique;not null" json:"accession_number"`
	FiledAt         time.Time    `gorm:"not null" json:"filed_at"`
	SectionText     string       `gorm:"type:text" json:"section_text"`
	SectionLength   int          `json:"section_length"`
	Status          FilingStatus `gorm:"type:varchar(20);not null" json:"status"`
	SkipReason      string       `json:"skip_reason,omitempty"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Filing model.
func (Filing) TableName() string {
	return "filings"
}
