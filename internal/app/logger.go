// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/logger"
)

// InitializeLogger initializes the JSON logger from the log section of the configuration.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
