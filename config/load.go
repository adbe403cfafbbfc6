package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/sambeau/setcalc/pkg/setcalc/logging"
	"github.com/sambeau/setcalc/pkg/setcalc/registry"
)

// Load reads configuration from a file with ENV interpolation.
// If configPath is empty, it searches default locations; finding nothing
// there is not an error and yields Defaults().
func Load(configPath string, getenv func(string) string) (*Config, error) {
	cfg, _, err := LoadWithPath(configPath, getenv)
	return cfg, err
}

// LoadWithPath reads configuration and returns both the config and the resolved path.
// The path is "" when no file was found and defaults are used.
func LoadWithPath(configPath string, getenv func(string) string) (*Config, string, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		cfg := Defaults()
		if err := Validate(cfg); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	// Get absolute path and directory for resolving relative paths
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	baseDir := filepath.Dir(absPath)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.BaseDir = baseDir

	if cfg.History != "" && !filepath.IsAbs(cfg.History) {
		cfg.History = filepath.Join(baseDir, cfg.History)
	}
	for i := range cfg.Scripts {
		if !filepath.IsAbs(cfg.Scripts[i]) {
			cfg.Scripts[i] = filepath.Join(baseDir, cfg.Scripts[i])
		}
	}
	switch cfg.Logging.Output {
	case "", "stderr", "stdout":
	default:
		if !filepath.IsAbs(cfg.Logging.Output) {
			cfg.Logging.Output = filepath.Join(baseDir, cfg.Logging.Output)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, "", err
	}

	return cfg, absPath, nil
}

// Validate checks the configuration for errors.
// Call it again after applying CLI overrides.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Limit != 0 {
		if err := registry.CheckLimit(cfg.Limit); err != nil {
			errs = append(errs, fmt.Sprintf("invalid limit: %d (must be %d-%d, or 0 to ask)", cfg.Limit, registry.MinLimit, registry.MaxLimit))
		}
	}

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level: %v", err))
	}

	if cfg.Locale != "" {
		if _, err := language.Parse(cfg.Locale); err != nil {
			errs = append(errs, fmt.Sprintf("invalid locale %q: %v", cfg.Locale, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > SETCALC_CONFIG env > ./setcalc.yaml > ~/.config/setcalc/setcalc.yaml
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("SETCALC_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("SETCALC_CONFIG file not found: %s", envPath)
		}
		return envPath, nil
	}

	if _, err := os.Stat("setcalc.yaml"); err == nil {
		return "setcalc.yaml", nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".config", "setcalc", "setcalc.yaml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := string(parts[1])
		value := getenv(varName)

		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}

// Printer returns a message printer for cfg.Locale, or nil when no locale
// is configured.
func (c *Config) Printer() *message.Printer {
	if c.Locale == "" {
		return nil
	}
	return message.NewPrinter(language.Make(c.Locale))
}
