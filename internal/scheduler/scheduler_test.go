package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"yad2watch/internal/model"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunFiresImmediateCycle(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	filters := func() ([]model.Filter, error) {
		return []model.Filter{{Name: "a"}}, nil
	}
	run := func(ctx context.Context, f []model.Filter) []model.CycleResult {
		runs.Add(1)
		cancel()
		return []model.CycleResult{{Filter: f[0].Name}}
	}

	done := make(chan error, 1)
	go func() { done <- New(time.Hour, filters, run, discard()).Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := runs.Load(); got != 1 {
		t.Errorf("cycle ran %d times, want 1 immediate run", got)
	}
}

func TestTickReloadsFilters(t *testing.T) {
	var calls atomic.Int32
	filters := func() ([]model.Filter, error) {
		calls.Add(1)
		return nil, nil
	}
	run := func(ctx context.Context, f []model.Filter) []model.CycleResult { return nil }

	s := New(time.Hour, filters, run, discard())
	ctx := context.Background()
	s.tick(ctx)
	s.tick(ctx)

	if got := calls.Load(); got != 2 {
		t.Errorf("filter source called %d times, want once per tick", got)
	}
}

func TestTickSkipsWhenFilterSourceFails(t *testing.T) {
	ran := false
	filters := func() ([]model.Filter, error) { return nil, errors.New("yaml: broken") }
	run := func(ctx context.Context, f []model.Filter) []model.CycleResult {
		ran = true
		return nil
	}

	New(time.Hour, filters, run, discard()).tick(context.Background())

	if ran {
		t.Error("cycle ran despite filter load failure")
	}
}

func TestTicksDoNotOverlap(t *testing.T) {
	var active, maxActive atomic.Int32
	release := make(chan struct{})

	filters := func() ([]model.Filter, error) { return nil, nil }
	run := func(ctx context.Context, f []model.Filter) []model.CycleResult {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		<-release
		active.Add(-1)
		return nil
	}

	s := New(time.Hour, filters, run, discard())
	ctx := context.Background()

	started := make(chan struct{})
	go func() {
		close(started)
		s.tick(ctx)
	}()
	<-started
	// give the first tick time to take the running flag
	for i := 0; i < 100; i++ {
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			break
		}
		time.Sleep(time.Millisecond)
	}

	s.tick(ctx) // should be skipped, not block
	close(release)

	if got := maxActive.Load(); got != 1 {
		t.Errorf("max concurrent cycles = %d, want 1", got)
	}
}

func TestTickIgnoresCancelledContext(t *testing.T) {
	ran := false
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(time.Hour,
		func() ([]model.Filter, error) { return nil, nil },
		func(ctx context.Context, f []model.Filter) []model.CycleResult {
			ran = true
			return nil
		}, discard())
	s.tick(ctx)

	if ran {
		t.Error("cycle ran on a cancelled context")
	}
}
