package config

import (
	"fmt"

	"github.com/hdlforge/bob/internal/errors"
)

// Validate checks the configuration for invalid values. It is called by Load
// after unmarshaling, so a successful Load always returns a valid config.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if cfg.Progress.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive, got %s",
			errors.ErrConfigInvalidProgress, cfg.Progress.PollInterval)
	}
	if cfg.Progress.BarWidth <= 0 {
		return fmt.Errorf("%w: bar_width must be positive, got %d",
			errors.ErrConfigInvalidProgress, cfg.Progress.BarWidth)
	}

	if cfg.Execution.CommandTimeout < 0 {
		return fmt.Errorf("%w: command_timeout must not be negative, got %s",
			errors.ErrConfigInvalidExecution, cfg.Execution.CommandTimeout)
	}

	return nil
}
