package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"netpulse/internal/chart"
	"netpulse/internal/session"
)

var chartHistory bool

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a chart of the latest result (or the full history)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, log, err := setup()
		if err != nil {
			return err
		}
		defer svc.Close()

		ctrl := session.NewController(cfg, log)

		if chartHistory {
			path, err := ctrl.RenderHistory()
			if errors.Is(err, chart.ErrNoHistory) {
				fmt.Println("No historical data available.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("History visualization saved as %q\n", path)
			return nil
		}

		rec, ok := ctrl.Latest()
		if !ok {
			fmt.Println("No results to visualize.")
			return nil
		}
		path, err := ctrl.RenderSnapshot(rec)
		if err != nil {
			return err
		}
		fmt.Printf("Results visualization saved as %q\n", path)
		return nil
	},
}

func init() {
	chartCmd.Flags().BoolVar(&chartHistory, "history", false, "render the historical trend instead of the latest snapshot")
}
