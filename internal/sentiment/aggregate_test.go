package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateNetScore(t *testing.T) {
	results := []Classification{
		{Positive: 0.9, Negative: 0.05, Neutral: 0.05},
		{Positive: 0.1, Negative: 0.8, Neutral: 0.1},
		{Positive: 0.5, Negative: 0.3, Neutral: 0.2},
	}

	agg := Aggregate(results)

	assert.InDelta(t, 0.5, agg.AvgPositive, 1e-9)
	assert.InDelta(t, 0.383333333, agg.AvgNegative, 1e-6)
	assert.InDelta(t, 0.116666666, agg.NetScore, 1e-6)
	assert.Equal(t, LabelPositive, agg.DominantLabel)
	assert.Equal(t, 3, agg.SentenceCount)
}

func TestAggregateEmptyIsNeutralDefault(t *testing.T) {
	agg := Aggregate(nil)

	assert.Equal(t, LabelNeutral, agg.DominantLabel)
	assert.Zero(t, agg.NetScore)
	assert.Zero(t, agg.SentenceCount)
}

func TestAggregateThresholdBoundaries(t *testing.T) {
	// Exactly at the positive threshold stays neutral.
	atThreshold := Aggregate([]Classification{{Positive: 0.05, Negative: 0.0, Neutral: 0.95}})
	assert.Equal(t, LabelNeutral, atThreshold.DominantLabel)

	justAbove := Aggregate([]Classification{{Positive: 0.0501, Negative: 0.0, Neutral: 0.9499}})
	assert.Equal(t, LabelPositive, justAbove.DominantLabel)

	negative := Aggregate([]Classification{{Positive: 0.0, Negative: 0.2, Neutral: 0.8}})
	assert.Equal(t, LabelNegative, negative.DominantLabel)
}

func TestClassificationLabel(t *testing.T) {
	assert.Equal(t, LabelPositive, Classification{Positive: 0.7, Negative: 0.2, Neutral: 0.1}.Label())
	assert.Equal(t, LabelNegative, Classification{Positive: 0.1, Negative: 0.6, Neutral: 0.3}.Label())
	assert.Equal(t, LabelNeutral, Classification{Positive: 0.2, Negative: 0.2, Neutral: 0.6}.Label())
}
