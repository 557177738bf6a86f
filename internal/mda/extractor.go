package mda

import (
	"errors"
	"regexp"
	"strings"

	"golang-filing-sentiment/internal/entity"

	"github.com/PuerkitoBio/goquery"
)

// ErrSectionNotFound is returned when no qualifying MD&A span exists in a filing.
var ErrSectionNotFound = errors.New("mda: section not found")

// DefaultMinSectionLength is the quality gate below which a candidate span is
// rejected as a table-of-contents reference rather than the section body.
const DefaultMinSectionLength = 1000

// ExtractionRule describes how to locate the MD&A section for one form type:
// a start pattern, the patterns of the sections that conventionally follow,
// and a minimum body length. New filing layouts are supported by appending
// rules, not by branching.
type ExtractionRule struct {
	DocumentType entity.DocumentType
	Start        *regexp.Regexp
	Ends         []*regexp.Regexp
	MinLength    int
}

// DefaultRules returns the extraction rules for annual and quarterly filings.
// The 10-Q rule carries its own end markers (Item 3 market risk, Item 4
// controls) instead of reusing the annual set, which truncated some quarterly
// sections early.
func DefaultRules() []ExtractionRule {
	return []ExtractionRule{
		{
			DocumentType: entity.DocumentTypeAnnual,
			Start:        regexp.MustCompile(`(?i)item\s+7\.?\s+management`),
			Ends: []*regexp.Regexp{
				regexp.MustCompile(`(?i)item\s+7a\.?\s+quantitative`),
				regexp.MustCompile(`(?i)item\s+8\.?\s+financial`),
			},
			MinLength: DefaultMinSectionLength,
		},
		{
			DocumentType: entity.DocumentTypeQuarterly,
			Start:        regexp.MustCompile(`(?i)item\s+2\.?\s+management`),
			Ends: []*regexp.Regexp{
				regexp.MustCompile(`(?i)item\s+3\.?\s+quantitative`),
				regexp.MustCompile(`(?i)item\s+4\.?\s+controls`),
			},
			MinLength: DefaultMinSectionLength,
		},
	}
}

// Extractor locates the MD&A section inside raw filing text.
type Extractor struct {
	rules []ExtractionRule
}

// NewExtractor creates an extractor with the given rules, or DefaultRules when
// none are provided.
func NewExtractor(rules ...ExtractionRule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Extractor{rules: rules}
}

// Extract returns the MD&A section of a raw filing, or ErrSectionNotFound.
// The rule matching the document-type hint is tried first; the remaining rules
// act as fallbacks when its start marker never appears. Start candidates are
// scanned from the last occurrence backward because filings put a table of
// contents before the real section body.
func (e *Extractor) Extract(raw string, docType entity.DocumentType) (string, error) {
	text := Flatten(raw)

	for _, rule := range e.orderedRules(docType) {
		starts := rule.Start.FindAllStringIndex(text, -1)
		if len(starts) == 0 {
			continue
		}

		for i := len(starts) - 1; i >= 0; i-- {
			startIdx := starts[i][1]

			endIdx := -1
			for _, end := range rule.Ends {
				if loc := end.FindStringIndex(text[startIdx:]); loc != nil {
					candidate := startIdx + loc[0]
					if endIdx == -1 || candidate < endIdx {
						endIdx = candidate
					}
				}
			}
			if endIdx == -1 {
				continue
			}

			candidate := text[startIdx:endIdx]
			if len(candidate) > rule.MinLength {
				return candidate, nil
			}
		}

		// The start marker matched, so the fallback rules do not apply; the
		// candidates just failed the quality gate.
		return "", ErrSectionNotFound
	}

	return "", ErrSectionNotFound
}

func (e *Extractor) orderedRules(docType entity.DocumentType) []ExtractionRule {
	ordered := make([]ExtractionRule, 0, len(e.rules))
	for _, r := range e.rules {
		if r.DocumentType == docType {
			ordered = append(ordered, r)
		}
	}
	for _, r := range e.rules {
		if r.DocumentType != docType {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// Flatten strips HTML markup when present and collapses all whitespace runs to
// single spaces, producing the text the extraction rules match against.
func Flatten(raw string) string {
	text := raw
	if strings.Contains(raw, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
