package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"yad2watch/internal/model"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234")
	for _, k := range []string{
		"DATA_DIR", "STORAGE_BACKEND", "S3_BUCKET_NAME", "S3_PREFIX",
		"DATABASE_PATH", "FILTERS_FILE", "SCRAPE_INTERVAL", "NOTIFY_ON_SEED", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATA_DIR", "/var/lib/yad2watch")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TelegramChatID != -1001234 {
		t.Errorf("TelegramChatID = %d, want -1001234", cfg.TelegramChatID)
	}
	if cfg.StorageBackend != BackendFile {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendFile)
	}
	if cfg.Interval != 15*time.Minute {
		t.Errorf("Interval = %s, want 15m", cfg.Interval)
	}
	if cfg.NotifyOnSeed {
		t.Error("NotifyOnSeed should default to false")
	}
	if want := filepath.Join("/var/lib/yad2watch", "state.db"); cfg.DatabasePath != want {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, want)
	}
	if want := filepath.Join("/var/lib/yad2watch", "filters.yaml"); cfg.FiltersFile != want {
		t.Errorf("FiltersFile = %q, want %q", cfg.FiltersFile, want)
	}
	if cfg.S3Prefix != "yad2watch/" {
		t.Errorf("S3Prefix = %q, want default prefix", cfg.S3Prefix)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing token", env: map[string]string{"TELEGRAM_BOT_TOKEN": ""}},
		{name: "missing chat id", env: map[string]string{"TELEGRAM_CHAT_ID": ""}},
		{name: "bad chat id", env: map[string]string{"TELEGRAM_CHAT_ID": "not-a-number"}},
		{name: "unknown backend", env: map[string]string{"STORAGE_BACKEND": "redis"}},
		{name: "s3 without bucket", env: map[string]string{"STORAGE_BACKEND": "s3"}},
		{name: "bad interval", env: map[string]string{"SCRAPE_INTERVAL": "soon"}},
		{name: "interval below minimum", env: map[string]string{"SCRAPE_INTERVAL": "30s"}},
		{name: "bad notify flag", env: map[string]string{"NOTIFY_ON_SEED": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
				if v == "" {
					os.Unsetenv(k)
				}
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadS3Backend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_BUCKET_NAME", "my-bucket")
	t.Setenv("S3_PREFIX", "watch/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.S3Bucket != "my-bucket" || cfg.S3Prefix != "watch/" {
		t.Errorf("s3 settings = %q %q", cfg.S3Bucket, cfg.S3Prefix)
	}
}

func TestLoadFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	doc := `filters:
  - name: small-seat
    params:
      manufacturer: Seat
      model: Ibiza
      price: 20000-60000
  - name: any-mazda
    params:
      manufacturer: "25"
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFilters(path)
	if err != nil {
		t.Fatalf("LoadFilters: %v", err)
	}

	want := []model.Filter{
		{Name: "small-seat", Params: map[string]string{
			"manufacturer": "37", "model": "10507", "price": "20000-60000",
		}},
		{Name: "any-mazda", Params: map[string]string{"manufacturer": "25"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFiltersMissingFile(t *testing.T) {
	got, err := LoadFilters(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestLoadFiltersRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "duplicate names", doc: "filters:\n  - name: a\n  - name: a\n"},
		{name: "unnamed filter", doc: "filters:\n  - params:\n      manufacturer: Seat\n"},
		{name: "unknown manufacturer", doc: "filters:\n  - name: a\n    params:\n      manufacturer: Trabant\n"},
		{name: "unknown model", doc: "filters:\n  - name: a\n    params:\n      manufacturer: Seat\n      model: Golf\n"},
		{name: "broken yaml", doc: "filters: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "filters.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFilters(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestSaveFiltersRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filters.yaml")
	want := []model.Filter{
		{Name: "commuter", Params: map[string]string{"manufacturer": "19", "year": "2018-2024"}},
	}

	if err := SaveFilters(path, want); err != nil {
		t.Fatalf("SaveFilters: %v", err)
	}
	got, err := LoadFilters(path)
	if err != nil {
		t.Fatalf("LoadFilters: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveNamesNumericPassthrough(t *testing.T) {
	f := model.Filter{Name: "x", Params: map[string]string{"manufacturer": "37", "model": "10508"}}
	if err := ResolveNames(&f); err != nil {
		t.Fatalf("ResolveNames: %v", err)
	}
	if f.Params["manufacturer"] != "37" || f.Params["model"] != "10508" {
		t.Errorf("numeric params changed: %v", f.Params)
	}
}
