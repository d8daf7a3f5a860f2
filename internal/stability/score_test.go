package stability

import (
	"math"
	"testing"
)

func TestScoreConstantSamples(t *testing.T) {
	score := Score([]float64{10, 10, 10, 10})
	if score != 100 {
		t.Fatalf("expected score 100 for constant samples, got %v", score)
	}
	if r := RatingFor(score); r != RatingExcellent {
		t.Fatalf("expected Excellent, got %q", r)
	}
}

func TestScoreAlternatingSamples(t *testing.T) {
	// mean=15, sample stdev=sqrt(100/3)≈5.7735, cv≈0.38490,
	// score = 100*(1-2*cv) ≈ 23.02
	score := Score([]float64{10, 20, 10, 20})
	if math.Abs(score-23.02) > 0.005 {
		t.Fatalf("expected score ≈23.02, got %v", score)
	}
	if r := RatingFor(score); r != RatingVeryPoor {
		t.Fatalf("expected Very Poor for score %v, got %q", score, r)
	}
}

func TestScoreTooFewSamples(t *testing.T) {
	for _, samples := range [][]float64{nil, {}, {42.0}} {
		score := Score(samples)
		if score != 0 {
			t.Fatalf("expected score 0 for %d samples, got %v", len(samples), score)
		}
		if r := RatingFor(score); r != RatingVeryPoor {
			t.Fatalf("expected Very Poor, got %q", r)
		}
	}
}

func TestScoreClampsAtZero(t *testing.T) {
	// Massive jitter: cv well beyond 0.5 must clamp, not go negative.
	score := Score([]float64{1, 1000, 1, 1000})
	if score != 0 {
		t.Fatalf("expected clamped score 0, got %v", score)
	}
}

func TestScoreIsRounded(t *testing.T) {
	score := Score([]float64{10, 11, 10, 11, 10})
	if got := math.Round(score*100) / 100; got != score {
		t.Fatalf("score %v not rounded to 2 decimals", score)
	}
}

func TestRatingBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Rating
	}{
		{100, RatingExcellent},
		{90.00, RatingExcellent},
		{89.99, RatingGood},
		{70.00, RatingGood},
		{69.99, RatingFair},
		{50.00, RatingFair},
		{49.99, RatingPoor},
		{30.00, RatingPoor},
		{29.99, RatingVeryPoor},
		{0, RatingVeryPoor},
	}
	for _, c := range cases {
		if got := RatingFor(c.score); got != c.want {
			t.Fatalf("RatingFor(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}
