package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks the merged configuration before it is used.
func (cfg *Config) validate() error {
	if cfg.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers)
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	switch cfg.Lang {
	case "en", "ja":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLang, cfg.Lang)
	}

	return nil
}
