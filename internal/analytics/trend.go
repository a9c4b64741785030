package analytics

import (
	"errors"
	"math"
)

// Direction classifies a productivity trend.
type Direction string

const (
	TrendUp     Direction = "up"
	TrendDown   Direction = "down"
	TrendStable Direction = "stable"
)

// TrendResult is the classification of a recent score window.
type TrendResult struct {
	Direction Direction
	// Change is the rounded magnitude of the average shift, never signed.
	Change int
}

// ErrNoScores is returned when the score series is empty.
var ErrNoScores = errors.New("trend requires at least one score")

// trendThreshold is the average-shift magnitude beyond which a trend is
// no longer stable. Exactly +5 or -5 stays stable.
const trendThreshold = 5.0

// Trend classifies the direction of a chronologically ordered series of
// daily productivity scores (0-100), looking at the last seven days.
func Trend(scores []float64) (TrendResult, error) {
	if len(scores) == 0 {
		return TrendResult{}, ErrNoScores
	}

	window := scores
	if len(window) > 7 {
		window = window[len(window)-7:]
	}

	head := window
	if len(head) > 3 {
		head = head[:3]
	}
	tail := window
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}

	diff := mean(tail) - mean(head)
	change := int(math.Round(math.Abs(diff)))

	switch {
	case diff > trendThreshold:
		return TrendResult{Direction: TrendUp, Change: change}, nil
	case diff < -trendThreshold:
		return TrendResult{Direction: TrendDown, Change: change}, nil
	default:
		return TrendResult{Direction: TrendStable, Change: change}, nil
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
