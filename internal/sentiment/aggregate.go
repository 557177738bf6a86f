package sentiment

// Dominant sentiment labels.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Aggregation policy thresholds on the net score. Fixed constants, not
// configurable per sentence.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Classification is the classifier output for one sentence: three
// probabilities summing to 1.
type Classification struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Label returns the argmax label of the classification.
func (c Classification) Label() string {
	switch {
	case c.Positive >= c.Negative && c.Positive >= c.Neutral:
		return LabelPositive
	case c.Negative >= c.Neutral:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// DocumentAggregate is the document-level sentiment summary.
type DocumentAggregate struct {
	NetScore      float64 `json:"net_score"`
	AvgPositive   float64 `json:"avg_positive"`
	AvgNegative   float64 `json:"avg_negative"`
	DominantLabel string  `json:"dominant_label"`
	SentenceCount int     `json:"sentence_count"`
}

// Aggregate combines per-sentence classifications into one document summary.
// An empty input yields the neutral default rather than an error.
func Aggregate(results []Classification) DocumentAggregate {
	if len(results) == 0 {
		return DocumentAggregate{DominantLabel: LabelNeutral}
	}

	var sumPos, sumNeg float64
	for _, r := range results {
		sumPos += r.Positive
		sumNeg += r.Negative
	}
	avgPos := sumPos / float64(len(results))
	avgNeg := sumNeg / float64(len(results))
	net := avgPos - avgNeg

	label := LabelNeutral
	if net > positiveThreshold {
		label = LabelPositive
	} else if net < negativeThreshold {
		label = LabelNegative
	}

	return DocumentAggregate{
		NetScore:      net,
		AvgPositive:   avgPos,
		AvgNegative:   avgNeg,
		DominantLabel: label,
		SentenceCount: len(results),
	}
}
