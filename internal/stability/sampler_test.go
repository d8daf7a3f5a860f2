package stability

import (
	"context"
	"errors"
	"testing"
	"time"

	"netpulse/pkg/logx"
)

type fakeProber struct {
	calls   int
	failAt  int // 1-based call index that errors; 0 = never
	latency time.Duration
}

func (f *fakeProber) Probe(ctx context.Context) error {
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return errors.New("probe blew up")
	}
	if f.latency > 0 {
		time.Sleep(f.latency)
	}
	return nil
}

func TestCollectReturnsFixedSampleCount(t *testing.T) {
	p := &fakeProber{}
	s := NewSampler(p, 10, time.Millisecond, logx.Nop())

	samples, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(samples) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(samples))
	}
	if p.calls != 10 {
		t.Fatalf("expected 10 probes, got %d", p.calls)
	}
	for i, ms := range samples {
		if ms < 0 {
			t.Fatalf("sample %d negative: %v", i, ms)
		}
	}
}

func TestCollectFailsFast(t *testing.T) {
	p := &fakeProber{failAt: 3}
	s := NewSampler(p, 10, time.Millisecond, logx.Nop())

	samples, err := s.Collect(context.Background())
	if err == nil {
		t.Fatalf("expected error from failing probe")
	}
	if samples != nil {
		t.Fatalf("expected no samples on failure, got %d", len(samples))
	}
	if p.calls != 3 {
		t.Fatalf("expected sampling to stop at probe 3, got %d probes", p.calls)
	}
}

func TestCollectHonorsPacing(t *testing.T) {
	const interval = 10 * time.Millisecond
	p := &fakeProber{}
	s := NewSampler(p, 5, interval, logx.Nop())

	start := time.Now()
	if _, err := s.Collect(context.Background()); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	// First probe is immediate, the remaining four are paced.
	if elapsed := time.Since(start); elapsed < 4*interval-interval/2 {
		t.Fatalf("sampling finished too fast: %v", elapsed)
	}
}

func TestCollectStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSampler(&fakeProber{}, 10, time.Second, logx.Nop())
	if _, err := s.Collect(ctx); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestNewSamplerDefaults(t *testing.T) {
	s := NewSampler(&fakeProber{}, 0, 0, logx.Nop())
	if s.samples != DefaultSamples {
		t.Fatalf("expected default sample count %d, got %d", DefaultSamples, s.samples)
	}
	if s.interval != DefaultInterval {
		t.Fatalf("expected default interval %v, got %v", DefaultInterval, s.interval)
	}
}
