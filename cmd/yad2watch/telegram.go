package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yad2watch/internal/config"
	"yad2watch/internal/notify"
)

// NewTelegramCmd creates the telegram command group.
func NewTelegramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telegram",
		Short: "Telegram connectivity helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test message to the configured chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg.LogLevel)

			n, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID, log)
			if err != nil {
				return err
			}
			if err := n.SendStatus("Test message: your bot token and chat id work."); err != nil {
				return fmt.Errorf("telegram test: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test message sent.")
			return nil
		},
	})

	return cmd
}
