package dto

import (
	"time"

	"golang-filing-sentiment/internal/entity"
)

// FilingRef identifies one filing discovered on EDGAR, before download.
type FilingRef struct {
	Ticker          string              `json:"ticker"`
	CIK             string              `json:"cik"`
	DocumentType    entity.DocumentType `json:"document_type"`
	AccessionNumber string              `json:"accession_number"`
	FiledAt         time.Time           `json:"filed_at"`
}
