package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"netpulse/internal/config"
	"netpulse/internal/scheduler"
	"netpulse/internal/session"
	"netpulse/pkg/logx"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run speed tests on a schedule and log every result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, log, err := setup()
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx, stop := signalContext(cmd)
		defer stop()

		// The active controller is swapped on config reload; the scheduled
		// job always resolves the current one.
		var mu sync.Mutex
		ctrl := session.NewController(cfg, log)
		current := func() *session.Controller {
			mu.Lock()
			defer mu.Unlock()
			return ctrl
		}

		sched := scheduler.New(log)
		addJob := func(c *config.Config) error {
			return sched.AddCron("speedtest-auto", c.Watch.Schedule, runTimeout(c),
				func(jctx context.Context) error {
					_, err := current().Run(jctx)
					return err
				})
		}
		if err := addJob(cfg); err != nil {
			return fmt.Errorf("invalid watch schedule %q: %w", cfg.Watch.Schedule, err)
		}
		sched.Start()
		defer sched.Stop(context.Background())

		go func() {
			_ = config.Watch(ctx, configFilePath(), log, func(nc *config.Config) {
				mu.Lock()
				ctrl = session.NewController(nc, log)
				mu.Unlock()
				if err := addJob(nc); err != nil {
					log.Warn("new watch schedule rejected",
						logx.String("schedule", nc.Watch.Schedule),
						logx.Err(err),
					)
				}
			})
		}()

		// Best effort; a no-op outside systemd.
		if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
			log.Debug("sd_notify failed", logx.Err(err))
		} else if sent {
			log.Debug("systemd readiness notified")
		}

		log.Info("watch mode started",
			logx.String("schedule", cfg.Watch.Schedule),
			logx.String("history_file", cfg.HistoryFile),
		)

		<-ctx.Done()
		log.Info("watch mode stopping")
		return nil
	},
}

// runTimeout bounds one scheduled run: the measurement timeout plus the
// full sampling window plus slack for server selection.
func runTimeout(c *config.Config) time.Duration {
	sampling := time.Duration(c.Stability.Samples) * c.ProbeInterval()
	return c.Timeout() + sampling + 30*time.Second
}
