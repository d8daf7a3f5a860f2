package stability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"netpulse/pkg/logx"
)

// Defaults for a sampling run.
const (
	DefaultSamples  = 10
	DefaultInterval = 500 * time.Millisecond
)

// Prober issues one latency round-trip against the measurement target.
type Prober interface {
	Probe(ctx context.Context) error
}

// Sampler collects a fixed-size set of timed latency probes.
//
// Probes run strictly sequentially. The first probe fires immediately;
// subsequent probes are paced by the configured interval. A probe failure
// aborts the whole run: a partial sample set would silently skew the score.
type Sampler struct {
	prober   Prober
	samples  int
	interval time.Duration
	log      logx.Logger
}

func NewSampler(p Prober, samples int, interval time.Duration, log logx.Logger) *Sampler {
	if samples <= 0 {
		samples = DefaultSamples
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{prober: p, samples: samples, interval: interval, log: log}
}

// Collect runs the configured number of probes and returns their wall-clock
// durations in milliseconds, in probe order.
func (s *Sampler) Collect(ctx context.Context) ([]float64, error) {
	limiter := rate.NewLimiter(rate.Every(s.interval), 1)

	out := make([]float64, 0, s.samples)
	for i := 0; i < s.samples; i++ {
		// Honors both the pacing delay and context cancellation.
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := s.prober.Probe(ctx); err != nil {
			return nil, fmt.Errorf("latency probe %d/%d: %w", i+1, s.samples, err)
		}
		ms := float64(time.Since(start)) / float64(time.Millisecond)
		out = append(out, ms)

		s.log.Debug("latency probe",
			logx.Int("n", i+1),
			logx.Float64("ms", ms),
		)
	}
	return out, nil
}
