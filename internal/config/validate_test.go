package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlforge/bob/internal/errors"
)

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
}

func TestValidate_NilConfig(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigNil)
}

func TestValidate_ProgressValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "zero poll interval",
			mutate: func(c *Config) { c.Progress.PollInterval = 0 },
		},
		{
			name:   "negative poll interval",
			mutate: func(c *Config) { c.Progress.PollInterval = -time.Second },
		},
		{
			name:   "zero bar width",
			mutate: func(c *Config) { c.Progress.BarWidth = 0 },
		},
		{
			name:   "negative bar width",
			mutate: func(c *Config) { c.Progress.BarWidth = -5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrConfigInvalidProgress)
		})
	}
}

func TestValidate_NegativeCommandTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Execution.CommandTimeout = -time.Minute
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigInvalidExecution)
}

func TestValidate_ZeroCommandTimeoutMeansUnlimited(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Execution.CommandTimeout = 0
	require.NoError(t, Validate(cfg))
}
