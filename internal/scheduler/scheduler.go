// Package scheduler runs named jobs on cron schedules for watch mode.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"netpulse/pkg/logx"
)

// Jobs run one at a time with a per-run timeout; a slow run skips the next
// tick instead of overlapping it.
type Service struct {
	log    logx.Logger
	parser cron.Parser

	mu      sync.Mutex
	c       *cron.Cron
	entries map[string]cron.EntryID
	running bool
}

func New(log logx.Logger) *Service {
	return &Service{
		log:     log,
		parser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		entries: map[string]cron.EntryID{},
	}
}

func (s *Service) newCron() *cron.Cron {
	// SkipIfStillRunning keeps one slow run from overlapping the next tick.
	return cron.New(
		cron.WithParser(s.parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}

// ValidateSpec reports whether spec is an acceptable schedule (standard
// 5-field cron or a descriptor like "@every 1h").
func (s *Service) ValidateSpec(spec string) error {
	_, err := s.parser.Parse(spec)
	return err
}

func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		s.c = s.newCron()
	}
	if !s.running {
		s.c.Start()
		s.running = true
		s.log.Info("scheduler started")
	}
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil || !s.running {
		return
	}
	stopped := s.c.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	s.running = false
	s.log.Info("scheduler stopped")
}

// AddCron registers (or replaces, by name) a scheduled job. Each run gets a
// fresh context bounded by timeout.
func (s *Service) AddCron(name, spec string, timeout time.Duration, job func(ctx context.Context) error) error {
	if job == nil {
		return errors.New("nil job")
	}
	sched, err := s.parser.Parse(spec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		s.c = s.newCron()
	}
	if id, ok := s.entries[name]; ok {
		s.c.Remove(id)
	}

	id := s.c.Schedule(sched, cron.FuncJob(func() {
		started := time.Now()
		ctx := context.Background()
		cancel := func() {}
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()

		err := job(ctx)
		dur := time.Since(started)
		if err != nil {
			s.log.Warn("scheduled job failed",
				logx.String("job", name),
				logx.Duration("took", dur),
				logx.Err(err),
			)
			return
		}
		s.log.Info("scheduled job finished",
			logx.String("job", name),
			logx.Duration("took", dur),
		)
	}))
	s.entries[name] = id
	s.log.Info("job scheduled", logx.String("job", name), logx.String("spec", spec))
	return nil
}
