package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Limit != 0 {
		t.Errorf("expected default limit 0 (ask), got %d", cfg.Limit)
	}
	if !cfg.Color {
		t.Error("expected color to be enabled by default")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected default log level 'warn', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected default log output 'stderr', got %q", cfg.Logging.Output)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestInterpolateEnv(t *testing.T) {
	getenv := func(key string) string {
		switch key {
		case "CALC_LIMIT":
			return "42"
		case "CALC_LOCALE":
			return "de-DE"
		default:
			return ""
		}
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple substitution",
			input:    "limit: ${CALC_LIMIT}",
			expected: "limit: 42",
		},
		{
			name:     "with default (env set)",
			input:    "locale: ${CALC_LOCALE:-en-US}",
			expected: "locale: de-DE",
		},
		{
			name:     "with default (env not set)",
			input:    "locale: ${UNSET_VAR:-en-US}",
			expected: "locale: en-US",
		},
		{
			name:     "unset without default",
			input:    "history: ${UNSET_VAR}",
			expected: "history: ",
		},
		{
			name:     "no substitution needed",
			input:    "color: false",
			expected: "color: false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := string(interpolateEnv([]byte(tt.input), getenv))
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "setcalc.yaml")

	configContent := `
limit: 10
history: history.txt
color: false
locale: en-US
scripts:
  - init.txt
logging:
  level: debug
  output: calc.log
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, path, err := LoadWithPath(configPath, func(string) string { return "" })
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if path != configPath {
		t.Errorf("expected path %q, got %q", configPath, path)
	}
	if cfg.Limit != 10 {
		t.Errorf("expected limit 10, got %d", cfg.Limit)
	}
	if cfg.Color {
		t.Error("expected color to be disabled")
	}
	if cfg.Locale != "en-US" {
		t.Errorf("expected locale 'en-US', got %q", cfg.Locale)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Logging.Level)
	}

	// Relative paths resolve against the config directory
	if want := filepath.Join(dir, "history.txt"); cfg.History != want {
		t.Errorf("expected history %q, got %q", want, cfg.History)
	}
	if want := filepath.Join(dir, "calc.log"); cfg.Logging.Output != want {
		t.Errorf("expected log output %q, got %q", want, cfg.Logging.Output)
	}
	if len(cfg.Scripts) != 1 || cfg.Scripts[0] != filepath.Join(dir, "init.txt") {
		t.Errorf("expected scripts [%q], got %v", filepath.Join(dir, "init.txt"), cfg.Scripts)
	}
	if cfg.Printer() == nil {
		t.Error("expected a printer for a configured locale")
	}
}

func TestLoadWithEnvInterpolation(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "setcalc.yaml")

	configContent := `
limit: ${CALC_LIMIT:-5}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	getenv := func(key string) string {
		if key == "CALC_LIMIT" {
			return "50"
		}
		return ""
	}

	cfg, err := Load(configPath, getenv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limit != 50 {
		t.Errorf("expected limit 50, got %d", cfg.Limit)
	}

	cfg, err = Load(configPath, func(string) string { return "" })
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limit != 5 {
		t.Errorf("expected limit 5 (default), got %d", cfg.Limit)
	}
}

func TestLoadFromEnvPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("limit: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load("", func(key string) string {
		if key == "SETCALC_CONFIG" {
			return configPath
		}
		return ""
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limit != 7 {
		t.Errorf("expected limit 7, got %d", cfg.Limit)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), func(string) string { return "" })
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "ask for limit",
			modify: func(c *Config) { c.Limit = 0 },
		},
		{
			name:   "lowest limit",
			modify: func(c *Config) { c.Limit = 3 },
		},
		{
			name:   "highest limit",
			modify: func(c *Config) { c.Limit = 100 },
		},
		{
			name:    "limit too small",
			modify:  func(c *Config) { c.Limit = 2 },
			wantErr: "invalid limit: 2",
		},
		{
			name:    "limit too large",
			modify:  func(c *Config) { c.Limit = 101 },
			wantErr: "invalid limit: 101",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad locale",
			modify:  func(c *Config) { c.Locale = "not a locale!" },
			wantErr: "invalid locale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
