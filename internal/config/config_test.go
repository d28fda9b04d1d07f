package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	RegisterFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	return cmd
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format != DefaultFormat {
		t.Errorf("Expected format %q, got %q", DefaultFormat, cfg.Format)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Expected workers %d, got %d", DefaultWorkers, cfg.Workers)
	}
	if cfg.EvalTimeout != DefaultEvalTimeout {
		t.Errorf("Expected eval timeout %s, got %s", DefaultEvalTimeout, cfg.EvalTimeout)
	}
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("ITEMSCRAPE_FORMAT", "json")
	t.Setenv("ITEMSCRAPE_ITEMS_DIR", "/tmp/from-env")
	t.Setenv("ITEMSCRAPE_WORKERS", "3")

	cmd := newTestCommand(t, "--items-dir", "/tmp/from-flag", "--lenient", "--eval-timeout", "20ms", "-v")

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format != "json" {
		t.Errorf("Expected env format json, got %q", cfg.Format)
	}
	if cfg.ItemsDir != "/tmp/from-flag" {
		t.Errorf("Expected flag to override env, got %q", cfg.ItemsDir)
	}
	if cfg.Workers != 3 {
		t.Errorf("Expected workers 3, got %d", cfg.Workers)
	}
	if !cfg.Lenient {
		t.Error("Expected lenient to be enabled")
	}
	if cfg.EvalTimeout != 20*time.Millisecond {
		t.Errorf("Expected eval timeout 20ms, got %s", cfg.EvalTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "bad format", args: []string{"--format", "xml"}},
		{name: "negative workers", args: []string{"--workers", "-1"}},
		{name: "too many workers", args: []string{"--workers", "1000"}},
		{name: "zero cache", args: []string{"--cache-size", "0"}},
		{name: "bad timeout", args: []string{"--eval-timeout", "soon"}},
		{name: "timeout too long", args: []string{"--eval-timeout", "1m"}},
		{name: "bad env workers", env: map[string]string{"ITEMSCRAPE_WORKERS": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cmd := newTestCommand(t, tt.args...)

			if _, err := Load(cmd); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
