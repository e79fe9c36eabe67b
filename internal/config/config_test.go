package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Crawler.Concurrency != 2 {
		t.Fatalf("expected default concurrency 2, got %d", cfg.Crawler.Concurrency)
	}
	if cfg.Crawler.MaxPages != 0 {
		t.Fatalf("expected unlimited pages by default, got %d", cfg.Crawler.MaxPages)
	}
	if !strings.Contains(cfg.Crawler.BaseURL, "law_list.php") {
		t.Fatalf("unexpected default base URL %q", cfg.Crawler.BaseURL)
	}
	if cfg.Dataset.Path != "data/documents.json" {
		t.Fatalf("unexpected default dataset path %q", cfg.Dataset.Path)
	}
	if cfg.View.Timezone != "Asia/Taipei" {
		t.Fatalf("unexpected default timezone %q", cfg.View.Timezone)
	}
	if got := cfg.RequestDelay(); got != 200*time.Millisecond {
		t.Fatalf("expected 200ms request delay, got %v", got)
	}
	if got := cfg.FetchTimeout(); got != 15*time.Second {
		t.Fatalf("expected 15s fetch timeout, got %v", got)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
crawler:
  base_url: https://example.org/law_list.asp
  concurrency: 6
  delay_ms: 50
  max_pages: 3
  user_agent: lawwatch-test
  referer: https://example.org/
  timeout_seconds: 45
dataset:
  path: /tmp/docs.json
view:
  timezone: UTC
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Crawler.Concurrency != 6 || cfg.Crawler.MaxPages != 3 {
		t.Fatalf("expected crawler overrides to apply: %+v", cfg.Crawler)
	}
	if cfg.Crawler.UserAgent != "lawwatch-test" {
		t.Fatalf("expected user agent override, got %q", cfg.Crawler.UserAgent)
	}
	if cfg.Logging.Development {
		t.Fatal("expected development logging to be disabled")
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad port", "server:\n  port: 0\n", "server.port"},
		{"bad concurrency", "crawler:\n  concurrency: -1\n", "crawler.concurrency"},
		{"negative delay", "crawler:\n  delay_ms: -5\n", "crawler.delay_ms"},
		{"empty dataset path", "dataset:\n  path: \"\"\n", "dataset.path"},
		{"bad timezone", "view:\n  timezone: Mars/Olympus\n", "view.timezone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
