package main

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"yad2watch/internal/config"
	"yad2watch/migrations"
)

// NewMigrateCmd creates the migrate command for the sqlite blob backend.
func NewMigrateCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:       "migrate <up|down|status|version>",
		Short:     "Run schema migrations for the sqlite storage backend",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				dbPath = cfg.DatabasePath
			}

			db, err := sql.Open("sqlite", dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			goose.SetBaseFS(migrations.FS)
			if err := goose.SetDialect("sqlite3"); err != nil {
				return fmt.Errorf("set dialect: %w", err)
			}

			switch args[0] {
			case "up":
				err = goose.Up(db, ".")
			case "down":
				err = goose.Down(db, ".")
			case "status":
				err = goose.Status(db, ".")
			case "version":
				err = goose.Version(db, ".")
			default:
				return fmt.Errorf("unknown command: %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite database (default from configuration)")
	return cmd
}
