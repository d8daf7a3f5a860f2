package session

import (
	"fmt"

	"netpulse/internal/history"
)

// Summary formats one record as a console block.
func Summary(rec history.Record) string {
	return fmt.Sprintf(
		"Test Results\n"+
			"━━━━━━━━━━━━━━━━━━━━\n"+
			"Download:  %.2f Mbps\n"+
			"Upload:    %.2f Mbps\n"+
			"Ping:      %.2f ms\n"+
			"Stability: %.2f%% (%s)\n"+
			"Time:      %s",
		rec.DownloadMbps,
		rec.UploadMbps,
		rec.PingMs,
		rec.StabilityScore,
		rec.StabilityRating,
		rec.Timestamp.Format("2006-01-02 15:04:05"),
	)
}
