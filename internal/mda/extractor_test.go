package mda

import (
	"strings"
	"testing"

	"golang-filing-sentiment/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(n int) string {
	return strings.Repeat("a", n)
}

func TestExtractNoStartMarker(t *testing.T) {
	e := NewExtractor()

	section, err := e.Extract("This filing has no discussion section at all.", entity.DocumentTypeAnnual)

	assert.ErrorIs(t, err, ErrSectionNotFound)
	assert.Empty(t, section)
}

func TestExtractSyntheticFiling(t *testing.T) {
	e := NewExtractor()
	doc := "Item 7. Management" + body(1500) + "Item 7A. Quantitative disclosures follow."

	section, err := e.Extract(doc, entity.DocumentTypeAnnual)

	require.NoError(t, err)
	assert.Equal(t, body(1500), section)
	assert.Len(t, section, 1500)
}

func TestExtractPrefersLastStartOccurrence(t *testing.T) {
	e := NewExtractor()
	// A table-of-contents mention precedes the real section body.
	doc := "Item 7. Management toc reference " +
		"Item 7. Management" + body(2000) + "Item 8. Financial Statements"

	section, err := e.Extract(doc, entity.DocumentTypeAnnual)

	require.NoError(t, err)
	assert.Equal(t, body(2000), section)
}

func TestExtractSkipsShortSpanAndKeepsSearching(t *testing.T) {
	e := NewExtractor()
	// The later start candidate closes quickly (short span); the earlier one
	// holds the real body, so the search must continue backward.
	doc := "Item 7. Management" + body(3000) +
		"Item 7. Management short " +
		"Item 8. Financial Statements"

	section, err := e.Extract(doc, entity.DocumentTypeAnnual)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(section, body(3000)))
}

func TestExtractAllSpansTooShort(t *testing.T) {
	e := NewExtractor()
	doc := "Item 7. Management tiny body Item 8. Financial Statements"

	_, err := e.Extract(doc, entity.DocumentTypeAnnual)

	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestExtractNoEndMarker(t *testing.T) {
	e := NewExtractor()
	doc := "Item 7. Management" + body(5000)

	_, err := e.Extract(doc, entity.DocumentTypeAnnual)

	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestExtractEarliestEndMarkerWins(t *testing.T) {
	e := NewExtractor()
	doc := "Item 7. Management" + body(1200) +
		"Item 7A. Quantitative " + body(500) + "Item 8. Financial Statements"

	section, err := e.Extract(doc, entity.DocumentTypeAnnual)

	require.NoError(t, err)
	assert.Equal(t, body(1200), section)
}

func TestExtractQuarterlyFallback(t *testing.T) {
	e := NewExtractor()
	doc := "Item 2. Management" + body(1500) + "Item 3. Quantitative disclosures"

	section, err := e.Extract(doc, entity.DocumentTypeQuarterly)

	require.NoError(t, err)
	assert.Equal(t, body(1500), section)
}

func TestExtractQuarterlyControlsEndMarker(t *testing.T) {
	e := NewExtractor()
	doc := "Item 2. Management" + body(1500) + "Item 4. Controls and Procedures"

	section, err := e.Extract(doc, entity.DocumentTypeQuarterly)

	require.NoError(t, err)
	assert.Equal(t, body(1500), section)
}

func TestExtractFromHTML(t *testing.T) {
	e := NewExtractor()
	doc := "<html><body><p>Item 7. Management</p><p>" + body(1500) +
		"</p><p>Item 8. Financial Statements</p><script>var x = 1;</script></body></html>"

	section, err := e.Extract(doc, entity.DocumentTypeAnnual)

	require.NoError(t, err)
	assert.Contains(t, section, body(1500))
	assert.NotContains(t, section, "var x")
}

func TestFlattenCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "one two three", Flatten("one\t\ttwo\n\n  three"))
}
