package config

import (
	"github.com/spf13/viper"

	"github.com/hdlforge/bob/internal/constants"
)

// DefaultConfig returns a new Config with default values. These defaults are
// the base layer overridden by config files and environment variables.
func DefaultConfig() *Config {
	return &Config{
		Progress: ProgressConfig{
			PollInterval: constants.DefaultPollInterval,
			BarWidth:     constants.DefaultBarWidth,
		},
		Execution: ExecutionConfig{
			// CommandTimeout: zero means unlimited, matching build tools
			// whose runs can take hours.
			CommandTimeout: 0,
		},
		Parts: PartsConfig{
			File: "",
		},
	}
}

// setDefaults registers default values on a viper instance so they sit below
// config files and environment variables in precedence.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("progress.poll_interval", defaults.Progress.PollInterval)
	v.SetDefault("progress.bar_width", defaults.Progress.BarWidth)
	v.SetDefault("execution.command_timeout", defaults.Execution.CommandTimeout)
	v.SetDefault("parts.file", defaults.Parts.File)
}
