// Package config handles application configuration from environment
// variables and the declarative filters file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"yad2watch/internal/catalog"
	"yad2watch/internal/model"
)

// Storage backend selectors for STORAGE_BACKEND.
const (
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	TelegramChatID   int64
	StorageBackend   string
	DataDir          string
	DatabasePath     string
	S3Bucket         string
	S3Prefix         string
	FiltersFile      string
	Interval         time.Duration
	NotifyOnSeed     bool
	LogLevel         string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	rawChat := os.Getenv("TELEGRAM_CHAT_ID")
	if rawChat == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	chatID, err := strconv.ParseInt(rawChat, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", rawChat, err)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(xdg.DataHome, "yad2watch")
	}

	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = BackendFile
	}
	switch backend {
	case BackendFile, BackendS3, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}

	bucket := os.Getenv("S3_BUCKET_NAME")
	if backend == BackendS3 && bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME is required for the s3 backend")
	}

	prefix := os.Getenv("S3_PREFIX")
	if prefix == "" {
		prefix = "yad2watch/"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "state.db")
	}

	filtersFile := os.Getenv("FILTERS_FILE")
	if filtersFile == "" {
		filtersFile = filepath.Join(dataDir, "filters.yaml")
	}

	interval := 15 * time.Minute
	if raw := os.Getenv("SCRAPE_INTERVAL"); raw != "" {
		interval, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPE_INTERVAL %q: %w", raw, err)
		}
		if interval < time.Minute {
			return nil, fmt.Errorf("SCRAPE_INTERVAL %s is below the 1m minimum", interval)
		}
	}

	notifyOnSeed := false
	if raw := os.Getenv("NOTIFY_ON_SEED"); raw != "" {
		notifyOnSeed, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_ON_SEED %q: %w", raw, err)
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		TelegramBotToken: token,
		TelegramChatID:   chatID,
		StorageBackend:   backend,
		DataDir:          dataDir,
		DatabasePath:     dbPath,
		S3Bucket:         bucket,
		S3Prefix:         prefix,
		FiltersFile:      filtersFile,
		Interval:         interval,
		NotifyOnSeed:     notifyOnSeed,
		LogLevel:         logLevel,
	}, nil
}

type filtersFile struct {
	Filters []model.Filter `yaml:"filters"`
}

// LoadFilters reads the filters file. A missing file is not an error; it
// yields an empty filter list. Manufacturer and model params given by name
// are resolved to ids through the catalog.
func LoadFilters(path string) ([]model.Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read filters file: %w", err)
	}

	var f filtersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse filters file: %w", err)
	}

	seen := make(map[string]bool, len(f.Filters))
	for i := range f.Filters {
		flt := &f.Filters[i]
		if flt.Name == "" {
			return nil, fmt.Errorf("filter %d has no name", i+1)
		}
		if seen[flt.Name] {
			return nil, fmt.Errorf("duplicate filter name %q", flt.Name)
		}
		seen[flt.Name] = true
		if err := ResolveNames(flt); err != nil {
			return nil, fmt.Errorf("filter %q: %w", flt.Name, err)
		}
	}
	return f.Filters, nil
}

// SaveFilters writes the filters file, creating its directory if needed.
func SaveFilters(path string, filters []model.Filter) error {
	data, err := yaml.Marshal(filtersFile{Filters: filters})
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create filters directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write filters file: %w", err)
	}
	return nil
}

// ResolveNames rewrites manufacturer and model params given as names into
// the numeric ids the site expects. Numeric values pass through unchanged.
func ResolveNames(f *model.Filter) error {
	m, ok := f.Params["manufacturer"]
	if !ok || m == "" {
		return nil
	}
	id, found := catalog.FindManufacturer(m)
	if !found {
		return fmt.Errorf("unknown manufacturer %q", m)
	}
	f.Params["manufacturer"] = id

	if mdl, ok := f.Params["model"]; ok && mdl != "" {
		if _, err := strconv.Atoi(mdl); err == nil {
			return nil
		}
		mid, found := catalog.FindModel(id, mdl)
		if !found {
			return fmt.Errorf("unknown model %q for manufacturer %s", mdl, catalog.ManufacturerName(id))
		}
		f.Params["model"] = mid
	}
	return nil
}
