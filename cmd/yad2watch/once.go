package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"yad2watch/internal/config"
	"yad2watch/internal/cycle"
	"yad2watch/internal/model"
)

// NewOnceCmd creates the once command (single cycle, then exit).
func NewOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single cycle over all filters and exit",
		Long: `Once runs one fetch-diff-notify-commit pass over every configured
filter and exits. A degraded cycle (some filters failed) still exits
zero but lists the failures; the exit code is nonzero only when every
filter failed.`,
		RunE: runOnceCmd,
	}
}

func runOnceCmd(cmd *cobra.Command, _ []string) error {
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

	filters, err := config.LoadFilters(cfg.FiltersFile)
	if err != nil {
		return err
	}

	results := a.runner.RunCycle(ctx, filters)
	printResults(cmd, results)

	if status := cycle.Summarize(results); status == model.StatusFailed && len(results) > 0 {
		return fmt.Errorf("cycle failed: every filter errored")
	}
	return nil
}

func printResults(cmd *cobra.Command, results []model.CycleResult) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No filters configured; nothing to do.")
		return
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "%-20s FAILED: %v\n", r.Filter, r.Err)
			continue
		}
		fmt.Fprintf(out, "%-20s fetched %d, new %d, notified %d\n",
			r.Filter, r.Fetched, len(r.New), r.Notified)
	}
	fmt.Fprintf(out, "cycle status: %s\n", cycle.Summarize(results))
}
