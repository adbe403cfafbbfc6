package config

// Config represents the complete setcalc configuration
type Config struct {
	BaseDir string        `yaml:"-"`       // Directory containing config file, for resolving relative paths
	Limit   int           `yaml:"limit"`   // Startup capacity limit (3-100); 0 asks interactively
	History string        `yaml:"history"` // Line editor history file ("" = temp dir)
	Color   bool          `yaml:"color"`   // Colour error prefixes on terminals
	Locale  string        `yaml:"locale"`  // BCP 47 tag for digit grouping in printed sets, e.g. "en-US"
	Scripts []string      `yaml:"scripts"` // Command files replayed before the first prompt
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Output string `yaml:"output"` // stderr, stdout, or file path
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Limit: 0,
		Color: true,
		Logging: LoggingConfig{
			Level:  "warn",
			Output: "stderr",
		},
	}
}
