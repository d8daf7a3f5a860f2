package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"netpulse/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one speed test and log the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, log, err := setup()
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx, stop := signalContext(cmd)
		defer stop()

		ctrl := session.NewController(cfg, log)

		fmt.Println("Running speed test... (this may take a minute)")
		rec, err := ctrl.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(session.Summary(rec))
		fmt.Printf("\nResults logged to %s\n", ctrl.Store().Path())
		return nil
	},
}
