package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Records
	Format   string
	PagesDir string
	ItemsDir string

	// Batch parsing
	Workers     int
	CacheSize   int
	MetricsAddr string

	// Embedded data decoding
	Lenient     bool
	EvalTimeout time.Duration
}

// Default returns a Config populated with package defaults
func Default() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		JSONLog:     DefaultJSONLog,
		Format:      DefaultFormat,
		PagesDir:    DefaultPagesDir,
		ItemsDir:    DefaultItemsDir,
		Workers:     DefaultWorkers,
		CacheSize:   DefaultCacheSize,
		MetricsAddr: DefaultMetricsAddr,
		Lenient:     DefaultLenient,
		EvalTimeout: DefaultEvalTimeout,
	}
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Flags only override when explicitly set on the command line.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if cmd != nil {
		if err := applyFlags(cmd, cfg); err != nil {
			return nil, fmt.Errorf("invalid flags: %w", err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ITEMSCRAPE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ITEMSCRAPE_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("ITEMSCRAPE_PAGES_DIR"); v != "" {
		cfg.PagesDir = v
	}
	if v := os.Getenv("ITEMSCRAPE_ITEMS_DIR"); v != "" {
		cfg.ItemsDir = v
	}
	if v := os.Getenv("ITEMSCRAPE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("ITEMSCRAPE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ITEMSCRAPE_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if changed("pages-dir") {
		cfg.PagesDir, _ = flags.GetString("pages-dir")
	}
	if changed("items-dir") {
		cfg.ItemsDir, _ = flags.GetString("items-dir")
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if changed("cache-size") {
		cfg.CacheSize, _ = flags.GetInt("cache-size")
	}
	if changed("lenient") {
		cfg.Lenient, _ = flags.GetBool("lenient")
	}
	if changed("eval-timeout") {
		s, _ := flags.GetString("eval-timeout")
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("eval-timeout: %w", err)
		}
		cfg.EvalTimeout = d
	}
	if changed("json") {
		cfg.JSONLog, _ = flags.GetBool("json")
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}
	if q, _ := flags.GetBool("quiet"); q {
		cfg.LogLevel = "error"
	}

	return nil
}
