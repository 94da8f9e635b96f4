package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"yad2watch/internal/config"
	"yad2watch/internal/model"
	"yad2watch/internal/scheduler"
)

// NewRunCmd creates the run command (long-lived periodic mode).
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run cycles on a fixed interval until interrupted",
		RunE:  runRunCmd,
	}
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	filters := func() ([]model.Filter, error) {
		return config.LoadFilters(cfg.FiltersFile)
	}

	log.Info("starting watcher", "interval", cfg.Interval.String(), "backend", cfg.StorageBackend)
	sched := scheduler.New(cfg.Interval, filters, a.runner.RunCycle, log)
	if err := sched.Run(ctx); err != nil {
		return err
	}
	log.Info("watcher stopped")
	return nil
}
