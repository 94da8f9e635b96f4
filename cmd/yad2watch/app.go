package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"yad2watch/internal/config"
	"yad2watch/internal/cycle"
	"yad2watch/internal/fetcher"
	"yad2watch/internal/notify"
	"yad2watch/internal/state"
	"yad2watch/internal/storage"
)

// app bundles the wired pipeline shared by the run and once commands.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	blobs    storage.Blob
	notifier *notify.Notifier
	runner   *cycle.Runner
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	blobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID, log)
	if err != nil {
		_ = blobs.Close()
		return nil, fmt.Errorf("create notifier: %w", err)
	}

	f := fetcher.New(http.DefaultClient, fetcher.DefaultPolicy(), log)
	runner := cycle.New(f, state.New(blobs), notifier, cfg.NotifyOnSeed, log)

	return &app{
		cfg:      cfg,
		log:      log,
		blobs:    blobs,
		notifier: notifier,
		runner:   runner,
	}, nil
}

func (a *app) close() {
	if err := a.blobs.Close(); err != nil {
		a.log.Error("close blob store", "error", err)
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (storage.Blob, error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		s, err := storage.NewS3(ctx, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("open s3 store: %w", err)
		}
		return s, nil
	case config.BackendSQLite:
		s, err := storage.NewSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	default:
		s, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	}
}
