// Package scheduler triggers cycles on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"yad2watch/internal/model"
)

// CycleFunc runs one full cycle over the given filters.
type CycleFunc func(ctx context.Context, filters []model.Filter) []model.CycleResult

// FilterSource returns the current filter list at the start of each cycle,
// so edits to the filters file take effect without a restart.
type FilterSource func() ([]model.Filter, error)

// Scheduler runs cycles on a fixed interval via cron. Cycles never overlap:
// a tick that fires while the previous cycle is still running is skipped.
type Scheduler struct {
	interval time.Duration
	filters  FilterSource
	run      CycleFunc
	log      *slog.Logger

	mu      sync.Mutex
	running bool
}

// New creates a Scheduler that triggers run every interval.
func New(interval time.Duration, filters FilterSource, run CycleFunc, log *slog.Logger) *Scheduler {
	return &Scheduler{interval: interval, filters: filters, run: run, log: log}
}

// Run fires one immediate cycle, then schedules the rest, blocking until
// ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.tick(ctx)

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("schedule cycle: %w", err)
	}
	c.Start()
	s.log.Info("scheduler started", "interval", s.interval.String())

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn("previous cycle still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	filters, err := s.filters()
	if err != nil {
		s.log.Error("load filters", "error", err)
		return
	}

	results := s.run(ctx, filters)
	logCycle(s.log, results)
}

func logCycle(log *slog.Logger, results []model.CycleResult) {
	newTotal := 0
	for _, r := range results {
		if r.Err != nil {
			log.Warn("filter failed", "filter", r.Filter, "error", r.Err)
			continue
		}
		newTotal += len(r.New)
	}
	log.Info("cycle finished", "filters", len(results), "new", newTotal)
}
