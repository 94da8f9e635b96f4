package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for yad2watch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yad2watch",
		Short: "Watch Yad2 car searches and get Telegram alerts for new listings",
		Long: `yad2watch periodically queries Yad2 car search results for user-defined
filters and sends a Telegram notification when a genuinely new listing
appears. Already-seen listings are tracked per filter in a local file,
SQLite database, or S3 bucket.

Configuration comes from environment variables (TELEGRAM_BOT_TOKEN,
TELEGRAM_CHAT_ID, STORAGE_BACKEND, ...) and a declarative filters.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewOnceCmd())
	cmd.AddCommand(NewFiltersCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewTelegramCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if verbose, err := cmd.Root().PersistentFlags().GetBool("verbose"); err == nil && verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
