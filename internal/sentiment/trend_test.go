package sentiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverageExpandingWindow(t *testing.T) {
	got := MovingAverage([]float64{0.1, 0.2, 0.3, 0.4}, 3)

	want := []float64{0.1, 0.15, 0.2, 0.3}
	require.Len(t, got, 4)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestMovingAverageSingleValue(t *testing.T) {
	got := MovingAverage([]float64{0.25}, 3)

	require.Len(t, got, 1)
	assert.InDelta(t, 0.25, got[0], 1e-9)
}

func TestZScoresSingleElement(t *testing.T) {
	got := ZScores([]float64{0.42})

	require.Len(t, got, 1)
	// Deviation substituted with 1, so the z-score degenerates to value-mean.
	assert.InDelta(t, 0.0, got[0], 1e-9)
}

func TestZScoresZeroDeviation(t *testing.T) {
	got := ZScores([]float64{0.3, 0.3, 0.3})

	for _, z := range got {
		assert.InDelta(t, 0.0, z, 1e-9)
	}
}

func TestZScoresStandardizes(t *testing.T) {
	got := ZScores([]float64{1, 2, 3})

	require.Len(t, got, 3)
	assert.InDelta(t, -1.0, got[0], 1e-9)
	assert.InDelta(t, 0.0, got[1], 1e-9)
	assert.InDelta(t, 1.0, got[2], 1e-9)
}

func TestBuildTrendSeriesOrdersByFilingDate(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []SeriesEntry{
		{FiledAt: base.AddDate(0, 6, 0), NetScore: 0.3, Accession: "0003"},
		{FiledAt: base, NetScore: 0.1, Accession: "0001"},
		{FiledAt: base.AddDate(0, 3, 0), NetScore: 0.2, Accession: "0002"},
	}

	series, err := BuildTrendSeries(entries, 3)

	require.NoError(t, err)
	require.Len(t, series.Points, 3)
	assert.InDelta(t, 0.1, series.Points[0].NetScore, 1e-9)
	assert.InDelta(t, 0.2, series.Points[1].NetScore, 1e-9)
	assert.InDelta(t, 0.3, series.Points[2].NetScore, 1e-9)
	assert.InDelta(t, 0.15, series.Points[1].MovingAverage, 1e-9)
	assert.True(t, series.Points[0].FiledAt.Before(series.Points[1].FiledAt))
}

func TestBuildTrendSeriesEmpty(t *testing.T) {
	_, err := BuildTrendSeries(nil, 3)

	assert.ErrorIs(t, err, ErrNoAggregates)
}

func TestBuildTrendSeriesTieBrokenByAccession(t *testing.T) {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []SeriesEntry{
		{FiledAt: day, NetScore: 0.5, Accession: "B"},
		{FiledAt: day, NetScore: -0.5, Accession: "A"},
	}

	series, err := BuildTrendSeries(entries, 3)

	require.NoError(t, err)
	assert.InDelta(t, -0.5, series.Points[0].NetScore, 1e-9)
	assert.InDelta(t, 0.5, series.Points[1].NetScore, 1e-9)
}
