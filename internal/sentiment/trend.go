package sentiment

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrNoAggregates is returned when a trend is requested over zero documents.
var ErrNoAggregates = errors.New("sentiment: no aggregates to analyze")

// DefaultWindow is the moving-average window size.
const DefaultWindow = 3

// SeriesEntry is one document aggregate placed on the time axis.
type SeriesEntry struct {
	FiledAt  time.Time
	NetScore float64
	// Accession breaks ordering ties so the series is deterministic.
	Accession string
}

// TrendPoint is one element of the derived trend series.
type TrendPoint struct {
	FiledAt       time.Time `json:"filed_at"`
	NetScore      float64   `json:"net_score"`
	MovingAverage float64   `json:"moving_average"`
	ZScore        float64   `json:"z_score"`
}

// TrendSeries is the ordered per-ticker trend with its derived series.
type TrendSeries struct {
	Points []TrendPoint `json:"points"`
}

// BuildTrendSeries orders entries by filing date ascending and derives the
// moving-average and z-score series. Returns ErrNoAggregates on empty input.
func BuildTrendSeries(entries []SeriesEntry, window int) (TrendSeries, error) {
	if len(entries) == 0 {
		return TrendSeries{}, ErrNoAggregates
	}
	if window <= 0 {
		window = DefaultWindow
	}

	sorted := make([]SeriesEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].FiledAt.Equal(sorted[j].FiledAt) {
			return sorted[i].FiledAt.Before(sorted[j].FiledAt)
		}
		return sorted[i].Accession < sorted[j].Accession
	})

	values := make([]float64, len(sorted))
	for i, e := range sorted {
		values[i] = e.NetScore
	}

	ma := MovingAverage(values, window)
	z := ZScores(values)

	points := make([]TrendPoint, len(sorted))
	for i, e := range sorted {
		points[i] = TrendPoint{
			FiledAt:       e.FiledAt,
			NetScore:      e.NetScore,
			MovingAverage: ma[i],
			ZScore:        z[i],
		}
	}

	return TrendSeries{Points: points}, nil
}

// MovingAverage computes a simple rolling mean. Positions with fewer than
// window preceding points average over what is available, so the output has
// the same length as the input and is defined everywhere.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 {
		window = DefaultWindow
	}

	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(n)
	}
	return out
}

// ZScores standardizes the series against its own mean and standard deviation.
// With fewer than 2 points, or a zero deviation, the deviation is substituted
// with 1 so the result is always defined.
func ZScores(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	std := 1.0
	if len(values) >= 2 {
		var sq float64
		for _, v := range values {
			sq += (v - mean) * (v - mean)
		}
		// Sample deviation, matching the source statistics.
		std = math.Sqrt(sq / float64(len(values)-1))
		if std == 0 {
			std = 1
		}
	}

	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}
