package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"flexdb/pkg/logging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flexdb.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "." {
		t.Errorf("Expected data dir '.', got %q", cfg.DataDir)
	}
	if cfg.Log.Level != "WARN" || cfg.Log.Format != "text" || cfg.Log.Output != "" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Preload.Enabled || cfg.Preload.Workers != 4 {
		t.Errorf("Unexpected preload defaults: %+v", cfg.Preload)
	}
	if cfg.Browse.PageSize != 20 {
		t.Errorf("Expected page size 20, got %d", cfg.Browse.PageSize)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
data_dir: /srv/file-data
log:
  level: debug
  format: json
preload:
  workers: 8
browse:
  page_size: 50
`)
	t.Setenv("FLEXDB_LOG_LEVEL", "error")
	t.Setenv("FLEXDB_BROWSE_PAGE_SIZE", "30")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.Int("page-size", 0, "")
	if err := flags.Parse([]string{"--page-size=10"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"file value", cfg.Preload.Workers, 8},
		{"file value under unset flag", cfg.DataDir, "/srv/file-data"},
		{"env over file", cfg.Log.Level, "error"},
		{"flag over env", cfg.Browse.PageSize, 10},
		{"file format", cfg.Log.Format, "json"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, tt.got)
		}
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("Expected error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DataDir: "/data",
			Log:     LogConfig{Level: "info", Format: "text"},
			Preload: PreloadConfig{Workers: 1},
			Browse:  BrowseConfig{PageSize: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = " " }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"uppercase format", func(c *Config) { c.Log.Format = "JSON" }, false},
		{"zero workers", func(c *Config) { c.Preload.Workers = 0 }, true},
		{"zero page size", func(c *Config) { c.Browse.PageSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := Config{Log: LogConfig{Level: "debug", Format: "JSON", Output: "/tmp/flexdb.log"}}
	lc := cfg.LoggingConfig()

	if lc.Level != logging.LevelDebug {
		t.Errorf("Expected DEBUG, got %s", lc.Level)
	}
	if lc.Format != "json" || lc.OutputPath != "/tmp/flexdb.log" {
		t.Errorf("Unexpected logging config: %+v", lc)
	}
}
