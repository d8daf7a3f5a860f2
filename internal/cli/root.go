// Package cli defines the netpulse command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"netpulse/internal/config"
	"netpulse/pkg/logx"
)

var (
	version = "dev"

	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "netpulse",
	Short: "netpulse - internet speed and stability tester",
	Long: `netpulse - internet speed and stability tester

  Measures download/upload throughput, ping and connection stability,
  keeps a JSON log of results, and renders snapshot and trend charts.

  Quick start:
    netpulse              interactive menu
    netpulse run          one test, logged
    netpulse chart --history
    netpulse watch        scheduled tests (cron-style)`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runMenu,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("netpulse %s\n", version)
	},
}

func configFilePath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultPath
}

// setup loads the config and builds the logger shared by all commands.
func setup() (*config.Config, *logx.Service, logx.Logger, error) {
	cfg, err := config.Load(configFilePath())
	if err != nil {
		return nil, nil, logx.Logger{}, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	svc, log := logx.New(logx.Config{Level: level, File: cfg.Log.File})
	return cfg, svc, log, nil
}

// signalContext is the base context for commands that do network work.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
