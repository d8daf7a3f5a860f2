package cli

import (
	"os"

	"github.com/spf13/cobra"

	"netpulse/internal/session"
)

// runMenu is the default action: the interactive menu loop on stdin/stdout.
func runMenu(cmd *cobra.Command, args []string) error {
	cfg, svc, log, err := setup()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signalContext(cmd)
	defer stop()

	ctrl := session.NewController(cfg, log)
	return ctrl.Menu(ctx, os.Stdin, os.Stdout)
}
