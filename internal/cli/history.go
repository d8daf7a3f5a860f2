package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"netpulse/internal/session"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent results, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, log, err := setup()
		if err != nil {
			return err
		}
		defer svc.Close()

		ctrl := session.NewController(cfg, log)
		records := ctrl.Store().All()
		if len(records) == 0 {
			fmt.Println("No speed test history available.")
			return nil
		}

		limit := historyLimit
		if limit <= 0 || limit > len(records) {
			limit = len(records)
		}

		fmt.Printf("Recent %d of %d results\n", limit, len(records))
		for i := 0; i < limit; i++ {
			r := records[len(records)-1-i]
			fmt.Printf("%d. %s  ↓ %.2f Mbps  ↑ %.2f Mbps  ping %.2f ms  stability %.2f%% (%s)\n",
				i+1,
				r.Timestamp.Format("2006-01-02 15:04:05"),
				r.DownloadMbps,
				r.UploadMbps,
				r.PingMs,
				r.StabilityScore,
				r.StabilityRating,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of results to print")
}
