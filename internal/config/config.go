// Package config provides configuration management for bob with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (BOB_* prefix)
//  2. Project config (.bob/config.yaml)
//  3. Global config (~/.bob/config.yaml)
//  4. Built-in defaults
//
// Each higher level overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for bob.
type Config struct {
	// Progress contains settings for the progress display.
	Progress ProgressConfig `yaml:"progress" mapstructure:"progress"`

	// Execution contains settings for command execution.
	Execution ExecutionConfig `yaml:"execution" mapstructure:"execution"`

	// Parts contains settings for part templates.
	Parts PartsConfig `yaml:"parts" mapstructure:"parts"`
}

// ProgressConfig contains settings for the progress monitor.
type ProgressConfig struct {
	// PollInterval is how often the monitor samples run state.
	// Default: 100ms
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// BarWidth is the progress bar width in terminal cells.
	// Default: 40
	BarWidth int `yaml:"bar_width" mapstructure:"bar_width"`
}

// ExecutionConfig contains settings for external command execution.
type ExecutionConfig struct {
	// CommandTimeout bounds each individual build command. Zero disables
	// the limit; full buildroot runs can legitimately take hours.
	// Default: 0
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`
}

// PartsConfig contains settings for part templates.
type PartsConfig struct {
	// File is an optional YAML file of custom part templates merged over
	// the built-ins. Entries with a built-in name replace that built-in.
	File string `yaml:"file" mapstructure:"file"`
}
