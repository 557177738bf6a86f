package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopKeywordsCountsAndOrder(t *testing.T) {
	c := NewKeywordCounter(nil)
	sentences := []string{
		"Revenue grew while revenue mix shifted toward services.",
		"Services revenue carried higher margins than hardware.",
	}

	keywords := c.Top(sentences, 3)

	require.NotEmpty(t, keywords)
	assert.Equal(t, "revenue", keywords[0].Token)
	assert.Equal(t, 3, keywords[0].Count)
	assert.Equal(t, "services", keywords[1].Token)
	assert.Equal(t, 2, keywords[1].Count)
}

func TestTopKeywordsExcludesStopwordsAndShortTokens(t *testing.T) {
	c := NewKeywordCounter(nil)

	keywords := c.Top([]string{"We saw the company grow as it expanded"}, 10)

	for _, kw := range keywords {
		assert.NotContains(t, []string{"we", "the", "company", "as", "it"}, kw.Token)
		assert.GreaterOrEqual(t, len(kw.Token), 3)
	}
}

func TestTopKeywordsTieBreaksByFirstEncounter(t *testing.T) {
	c := NewKeywordCounter([]string{})

	keywords := c.Top([]string{"zebra apple zebra apple"}, 2)

	require.Len(t, keywords, 2)
	// Equal counts keep first-encountered order.
	assert.Equal(t, "zebra", keywords[0].Token)
	assert.Equal(t, "apple", keywords[1].Token)
}

func TestTopKeywordsLowercases(t *testing.T) {
	c := NewKeywordCounter(nil)

	keywords := c.Top([]string{"Margin MARGIN margin"}, 1)

	require.Len(t, keywords, 1)
	assert.Equal(t, "margin", keywords[0].Token)
	assert.Equal(t, 3, keywords[0].Count)
}

func TestTopKeywordsCustomStopwords(t *testing.T) {
	c := NewKeywordCounter([]string{"margin"})

	keywords := c.Top([]string{"margin growth margin growth growth"}, 5)

	require.Len(t, keywords, 1)
	assert.Equal(t, "growth", keywords[0].Token)
}
