package mda

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBasicSentences(t *testing.T) {
	s := NewSegmenter(nil)
	text := "Net sales increased by 10% to $100 million. " +
		"This was due to strong demand in the U.S. market! " +
		"However, cost of sales also increased significantly."

	sentences := s.Split(text)

	require.Len(t, sentences, 3)
	assert.Equal(t, "Net sales increased by 10% to $100 million.", sentences[0])
	assert.Equal(t, "This was due to strong demand in the U.S. market!", sentences[1])
}

func TestSplitDoesNotBreakOnDecimalOrLowercase(t *testing.T) {
	s := NewSegmenter(nil)
	// "1.5 billion" has a period not followed by whitespace and a capital.
	text := "Operating income reached $1.5 billion during the fiscal period under review."

	sentences := s.Split(text)

	require.Len(t, sentences, 1)
}

func TestSplitRejectsShortFragments(t *testing.T) {
	s := NewSegmenter(nil)
	text := "Overview. Total revenue for the segment grew across all major geographies."

	sentences := s.Split(text)

	for _, sent := range sentences {
		assert.Greater(t, utf8.RuneCountInString(sent), 20)
		assert.GreaterOrEqual(t, len(strings.Fields(sent)), 4)
	}
	require.Len(t, sentences, 1)
}

func TestSplitRejectsFewWords(t *testing.T) {
	s := NewSegmenter(nil)
	// Long enough in characters but only three words.
	sentences := s.Split("Extraordinarily unprecedented circumstances. Management reviewed the outlook for the full year.")

	require.Len(t, sentences, 1)
	assert.Contains(t, sentences[0], "Management reviewed")
}

func TestSplitRejectsLegalBoilerplate(t *testing.T) {
	s := NewSegmenter(nil)
	text := "Revenue grew faster than expectations this fiscal period. " +
		"This report contains Forward-Looking statements under the safe harbor provisions. " +
		"Margins expanded across every operating segment we report."

	sentences := s.Split(text)

	require.Len(t, sentences, 2)
	for _, sent := range sentences {
		assert.NotContains(t, strings.ToLower(sent), "forward-looking")
	}
}

func TestSplitCustomVocabulary(t *testing.T) {
	s := NewSegmenter([]string{"pursuant to"})

	sentences := s.Split("Pursuant to the indenture, the notes were redeemed early. " +
		"Cash flow from operations improved materially during the period under review.")

	require.Len(t, sentences, 1)
	assert.Contains(t, sentences[0], "Cash flow")
}

func TestSplitPreservesOrderAndIsIdempotent(t *testing.T) {
	s := NewSegmenter(nil)
	text := "Gross margin improved on favorable product mix this year. " +
		"Operating expenses declined as a share of total revenue. " +
		"Free cash flow reached a record level for the business."

	first := s.Split(text)
	second := s.Split(text)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Contains(t, first[0], "Gross margin")
	assert.Contains(t, first[2], "Free cash flow")
}

func TestSplitEmptyInput(t *testing.T) {
	s := NewSegmenter(nil)

	assert.Empty(t, s.Split(""))
}
