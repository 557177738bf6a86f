package sentiment

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultTopKeywords is the number of keywords reported when none is requested.
const DefaultTopKeywords = 10

var tokenPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// DefaultStopwords returns the general-English stopwords plus the
// report-generic financial terms excluded from keyword counts.
func DefaultStopwords() []string {
	return []string{
		"the", "and", "of", "to", "in", "a", "that", "for", "is", "on", "with", "as",
		"our", "we", "are", "by", "it", "from", "an", "be", "files", "company",
		"may", "such", "period", "results", "year", "quarter", "other", "have",
	}
}

// KeywordCount is one token with its occurrence count.
type KeywordCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// KeywordCounter tokenizes sentences and counts non-stopword tokens.
type KeywordCounter struct {
	stopwords map[string]struct{}
}

// NewKeywordCounter creates a counter excluding the given stopwords.
// Nil means DefaultStopwords.
func NewKeywordCounter(stopwords []string) *KeywordCounter {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &KeywordCounter{stopwords: set}
}

// Top returns the k most frequent lowercase alphabetic tokens of length >= 3
// across the sentences, ties broken by first-encountered order.
func (c *KeywordCounter) Top(sentences []string, k int) []KeywordCount {
	if k <= 0 {
		k = DefaultTopKeywords
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order int

	for _, s := range sentences {
		for _, token := range tokenPattern.FindAllString(s, -1) {
			token = strings.ToLower(token)
			if _, skip := c.stopwords[token]; skip {
				continue
			}
			if _, seen := counts[token]; !seen {
				firstSeen[token] = order
				order++
			}
			counts[token]++
		}
	}

	keywords := make([]KeywordCount, 0, len(counts))
	for token, count := range counts {
		keywords = append(keywords, KeywordCount{Token: token, Count: count})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return firstSeen[keywords[i].Token] < firstSeen[keywords[j].Token]
	})

	if len(keywords) > k {
		keywords = keywords[:k]
	}
	return keywords
}
