package config

import "flag"

// Default values applied when neither flags nor environment set a field.
const (
	DefaultWorkers  = 4
	DefaultLogLevel = "info"
	DefaultLang     = "en"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TABLESCHEMA_"

// Config is the merged CLI configuration.
type Config struct {
	// Schema is the path to a JSON or YAML schema document.
	Schema string `env:"SCHEMA"`
	// Data is the path to a CSV file. "-" reads stdin.
	Data string `env:"DATA"`
	// MissingValues overrides the schema's missing value sentinels.
	MissingValues []string `env:"MISSING_VALUES" envSeparator:","`
	// Workers bounds the row casting pool.
	Workers int `env:"WORKERS"`
	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL"`
	// Lang selects the issue message language ("en" or "ja").
	Lang string `env:"LANG"`
	// NoHeader treats the first CSV record as data.
	NoHeader bool `env:"NO_HEADER"`
}

// Load parses args with fs, reads the environment and applies defaults.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	return newConfigBuilder().
		withFlags(fs, args).
		withEnv().
		withDefaults().
		build()
}

func defaults() *Config {
	return &Config{
		Workers:  DefaultWorkers,
		LogLevel: DefaultLogLevel,
		Lang:     DefaultLang,
	}
}
