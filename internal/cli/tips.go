package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"netpulse/internal/session"
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show improvement tips for the most recent result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, log, err := setup()
		if err != nil {
			return err
		}
		defer svc.Close()

		ctrl := session.NewController(cfg, log)
		rec, ok := ctrl.Latest()
		if !ok {
			fmt.Println("Run a speed test first to get personalized tips.")
			return nil
		}

		fmt.Println(strings.Join(ctrl.Tips(rec), "\n"))
		return nil
	},
}
