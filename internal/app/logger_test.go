//go:build !integration

package app

import (
	"testing"

	"github.com/guttosm/pantry-service/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		expected zerolog.Level
	}{
		{
			name:     "initializes with default log level",
			cfg:      config.LogConfig{},
			expected: zerolog.InfoLevel,
		},
		{
			name:     "initializes with custom log level",
			cfg:      config.LogConfig{Level: "debug"},
			expected: zerolog.DebugLevel,
		},
		{
			name:     "initializes with pretty output enabled",
			cfg:      config.LogConfig{Level: "warn", Pretty: true},
			expected: zerolog.WarnLevel,
		},
		{
			name:     "falls back to info on unknown level",
			cfg:      config.LogConfig{Level: "loud"},
			expected: zerolog.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				InitializeLogger(tt.cfg)
			})
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
