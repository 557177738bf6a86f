package repository

import (
	"fmt"
	"strings"
)

// BuildClassifySentencesPrompt builds the prompt for scoring a batch of
// sentences. The response contract is one JSON object per input sentence, in
// input order, so the caller can validate lengths before trusting the scores.
func BuildClassifySentencesPrompt(sentences []string) string {
	var sentenceBuilder strings.Builder
	for i, sentence := range sentences {
		sentenceBuilder.WriteString(fmt.Sprintf("%d. %s\n", i+1, sentence))
	}

	promptTemplate := `You are a financial-text sentiment classifier. Below are %d sentences taken from the Management's Discussion and Analysis section of a regulatory filing.

%s
Score each sentence independently for financial sentiment. Respond with a JSON array containing exactly %d objects, one per sentence in the same order, with this shape:

[
  {"positive": 0.0, "negative": 0.0, "neutral": 1.0}
]

Rules:
- positive, negative and neutral are probabilities between 0.0 and 1.0 and should sum to 1.0
- judge financial outlook, not grammar or tone
- respond with the JSON array only, no commentary`

	return fmt.Sprintf(promptTemplate, len(sentences), sentenceBuilder.String(), len(sentences))
}
