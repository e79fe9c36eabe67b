// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	View    ViewConfig    `mapstructure:"view"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CrawlerConfig governs the listing and detail fetch pipeline.
type CrawlerConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Concurrency    int    `mapstructure:"concurrency"`
	DelayMs        int    `mapstructure:"delay_ms"`
	MaxPages       int    `mapstructure:"max_pages"`
	UserAgent      string `mapstructure:"user_agent"`
	Referer        string `mapstructure:"referer"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DatasetConfig sets where the crawl artifact is written and served from.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// ViewConfig controls date classification anchoring.
type ViewConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LAWWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("crawler.base_url", "https://www.kaa.org.tw/law_list.php")
	v.SetDefault("crawler.concurrency", 2)
	v.SetDefault("crawler.delay_ms", 200)
	v.SetDefault("crawler.max_pages", 0)
	v.SetDefault("crawler.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("crawler.referer", "https://www.kaa.org.tw/")
	v.SetDefault("crawler.timeout_seconds", 15)
	v.SetDefault("dataset.path", "data/documents.json")
	v.SetDefault("view.timezone", "Asia/Taipei")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Crawler.BaseURL == "" {
		return fmt.Errorf("crawler.base_url must be set")
	}
	if c.Crawler.Concurrency <= 0 {
		return fmt.Errorf("crawler.concurrency must be > 0")
	}
	if c.Crawler.DelayMs < 0 {
		return fmt.Errorf("crawler.delay_ms must be >= 0")
	}
	if c.Crawler.MaxPages < 0 {
		return fmt.Errorf("crawler.max_pages must be >= 0")
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be > 0")
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path must be set")
	}
	if _, err := time.LoadLocation(c.View.Timezone); err != nil {
		return fmt.Errorf("view.timezone: %w", err)
	}
	return nil
}

// FetchTimeout converts the timeout knob into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Crawler.TimeoutSeconds) * time.Second
}

// RequestDelay converts the politeness delay knob into a duration.
func (c Config) RequestDelay() time.Duration {
	return time.Duration(c.Crawler.DelayMs) * time.Millisecond
}

// Location resolves the configured timezone. Validate has already checked it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.View.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
