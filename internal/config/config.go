// Package config loads and validates netpulse's YAML configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

// DefaultPath is consulted when no --config flag is given. A missing file
// is not an error: the tool runs fine with built-in defaults.
const DefaultPath = "netpulse.yaml"

type Config struct {
	Log         LogConfig       `yaml:"log"`
	HistoryFile string          `yaml:"history_file"`
	Speedtest   SpeedtestConfig `yaml:"speedtest"`
	Stability   StabilityConfig `yaml:"stability"`
	Charts      ChartsConfig    `yaml:"charts"`
	Watch       WatchConfig     `yaml:"watch"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type SpeedtestConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	ServerCount    int `yaml:"server_count"`
}

type StabilityConfig struct {
	Samples    int `yaml:"samples"`
	IntervalMS int `yaml:"interval_ms"`
}

type ChartsConfig struct {
	SnapshotPath string `yaml:"snapshot_path"`
	HistoryPath  string `yaml:"history_path"`
}

type WatchConfig struct {
	Schedule string `yaml:"schedule"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:         LogConfig{Level: "info"},
		HistoryFile: "logs/speed_test_log.json",
		Speedtest:   SpeedtestConfig{TimeoutSeconds: 120, ServerCount: 5},
		Stability:   StabilityConfig{Samples: 10, IntervalMS: 500},
		Charts: ChartsConfig{
			SnapshotPath: "current_speed_test.png",
			HistoryPath:  "speed_test_history.png",
		},
		Watch: WatchConfig{Schedule: "@every 1h"},
	}
}

// Load reads the config at path. A missing file yields the defaults; a
// present file is decoded strictly (unknown fields are rejected) on top of
// the defaults and then validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HistoryFile == "" {
		return fmt.Errorf("history_file must not be empty")
	}
	if c.Speedtest.TimeoutSeconds <= 0 {
		return fmt.Errorf("speedtest.timeout_seconds must be positive")
	}
	if c.Speedtest.ServerCount <= 0 {
		return fmt.Errorf("speedtest.server_count must be positive")
	}
	if c.Stability.Samples < 2 {
		return fmt.Errorf("stability.samples must be at least 2")
	}
	if c.Stability.IntervalMS < 0 {
		return fmt.Errorf("stability.interval_ms must not be negative")
	}
	if c.Charts.SnapshotPath == "" || c.Charts.HistoryPath == "" {
		return fmt.Errorf("chart paths must not be empty")
	}
	return nil
}

// Timeout returns the per-run measurement timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Speedtest.TimeoutSeconds) * time.Second
}

// ProbeInterval returns the inter-probe pacing delay.
func (c *Config) ProbeInterval() time.Duration {
	return time.Duration(c.Stability.IntervalMS) * time.Millisecond
}
