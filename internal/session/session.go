// Package session orchestrates test runs and the interactive menu.
package session

import (
	"context"
	"fmt"
	"time"

	"netpulse/internal/chart"
	"netpulse/internal/config"
	"netpulse/internal/history"
	"netpulse/internal/report"
	"netpulse/internal/speedtest"
	"netpulse/internal/stability"
	"netpulse/pkg/logx"
)

// TestRunner produces one unsaved test record: measurement, stability
// sampling, and scoring. The controller owns persistence.
type TestRunner interface {
	Run(ctx context.Context) (history.Record, error)
}

// Controller wires the measurement, scoring, persistence and visualization
// pieces together. It is the sole owner of its collaborators for the
// duration of a run; all operations are sequential.
type Controller struct {
	runner TestRunner
	store  *history.Store

	snapshotPath string
	historyPath  string

	log logx.Logger
}

func NewController(cfg *config.Config, log logx.Logger) *Controller {
	client := speedtest.New(speedtest.Config{
		ServerCount: cfg.Speedtest.ServerCount,
		Timeout:     cfg.Timeout(),
	}, log)

	return &Controller{
		runner: &speedtestRunner{
			client:   client,
			samples:  cfg.Stability.Samples,
			interval: cfg.ProbeInterval(),
			log:      log,
		},
		store:        history.NewStore(cfg.HistoryFile, log),
		snapshotPath: cfg.Charts.SnapshotPath,
		historyPath:  cfg.Charts.HistoryPath,
		log:          log,
	}
}

// Store exposes the result log (read-only use by the CLI).
func (c *Controller) Store() *history.Store { return c.store }

// Run executes one full test and appends the result to the log. A
// measurement or sampling fault aborts with no record persisted; an append
// fault is surfaced rather than silently dropping the result.
func (c *Controller) Run(ctx context.Context) (history.Record, error) {
	rec, err := c.runner.Run(ctx)
	if err != nil {
		return history.Record{}, err
	}
	if err := c.store.Append(rec); err != nil {
		return history.Record{}, fmt.Errorf("save result: %w", err)
	}
	c.log.Info("result logged",
		logx.String("path", c.store.Path()),
		logx.Float64("stability_score", rec.StabilityScore),
		logx.String("stability_rating", rec.StabilityRating),
	)
	return rec, nil
}

// Latest returns the most recently appended record, if any.
func (c *Controller) Latest() (history.Record, bool) {
	records := c.store.All()
	if len(records) == 0 {
		return history.Record{}, false
	}
	return records[len(records)-1], true
}

// Tips returns improvement advice for a record.
func (c *Controller) Tips(rec history.Record) []string {
	return report.Tips(rec)
}

// RenderSnapshot writes the snapshot chart for a record and returns the
// artifact path.
func (c *Controller) RenderSnapshot(rec history.Record) (string, error) {
	if err := chart.RenderSnapshot(rec, c.snapshotPath); err != nil {
		return "", err
	}
	return c.snapshotPath, nil
}

// RenderHistory writes the trend chart for the whole log and returns the
// artifact path.
func (c *Controller) RenderHistory() (string, error) {
	if err := chart.RenderHistory(c.store.All(), c.historyPath); err != nil {
		return "", err
	}
	return c.historyPath, nil
}

// speedtestRunner is the production TestRunner: one measurement, then a
// fixed-size stability sampling run against a freshly selected server.
type speedtestRunner struct {
	client   *speedtest.Client
	samples  int
	interval time.Duration
	log      logx.Logger
}

func (r *speedtestRunner) Run(ctx context.Context) (history.Record, error) {
	m, err := r.client.Measure(ctx)
	if err != nil {
		return history.Record{}, err
	}

	prober, err := r.client.NewProber(ctx)
	if err != nil {
		return history.Record{}, err
	}
	sampler := stability.NewSampler(prober, r.samples, r.interval, r.log)
	samples, err := sampler.Collect(ctx)
	if err != nil {
		return history.Record{}, err
	}

	score := stability.Score(samples)
	return history.NewRecord(time.Now(), m.DownloadMbps, m.UploadMbps, m.PingMs, score), nil
}
