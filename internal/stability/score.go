// Package stability turns a set of timed latency probes into a bounded
// 0-100 score and a categorical rating.
//
// The score is based on the coefficient of variation (sample standard
// deviation over sample mean) of the probe durations: it is dimensionless,
// so it works regardless of absolute latency, and it saturates at a CV of
// 0.5, which maps to a score of 0.
package stability

import "math"

// Rating is the categorical label derived from a stability score.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
	RatingVeryPoor  Rating = "Very Poor"
)

// Score computes the stability score for a set of latency samples in
// milliseconds. Fewer than two samples score 0. The result is rounded to
// two decimal places and clamped to [0, 100].
func Score(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	mean := 0.0
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))

	// Bessel-corrected sample standard deviation.
	var sq float64
	for _, s := range samples {
		d := s - mean
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(len(samples)-1))

	cv := 0.0
	if mean > 0 {
		cv = sd / mean
	}

	score := 100 * (1 - 2*cv)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return round2(score)
}

// RatingFor maps a score to its rating. Boundaries are inclusive on the
// lower bound: exactly 90 is Excellent, exactly 70 is Good, and so on.
func RatingFor(score float64) Rating {
	switch {
	case score >= 90:
		return RatingExcellent
	case score >= 70:
		return RatingGood
	case score >= 50:
		return RatingFair
	case score >= 30:
		return RatingPoor
	default:
		return RatingVeryPoor
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
