// Package history persists speed test results as an append-only JSON log.
package history

import (
	"math"
	"time"

	"netpulse/internal/stability"
)

// Record is one fully-assembled test outcome. Records are immutable once
// created and are persisted in append order.
type Record struct {
	Timestamp       time.Time `json:"timestamp"`
	DownloadMbps    float64   `json:"download_speed"`
	UploadMbps      float64   `json:"upload_speed"`
	PingMs          float64   `json:"ping"`
	StabilityScore  float64   `json:"stability_score"`
	StabilityRating string    `json:"stability_rating"`
}

// NewRecord assembles a record, rounding metrics to two decimal places and
// deriving the rating from the score so the two can never disagree.
func NewRecord(ts time.Time, downloadMbps, uploadMbps, pingMs, score float64) Record {
	score = round2(score)
	return Record{
		Timestamp:       ts,
		DownloadMbps:    round2(downloadMbps),
		UploadMbps:      round2(uploadMbps),
		PingMs:          round2(pingMs),
		StabilityScore:  score,
		StabilityRating: string(stability.RatingFor(score)),
	}
}

// Valid reports whether the stored rating matches the one recomputable from
// the score.
func (r Record) Valid() bool {
	return r.StabilityRating == string(stability.RatingFor(r.StabilityScore))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
