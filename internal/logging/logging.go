// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the service-wide zerolog logger: JSON
// output for production, console output for development.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// New builds the root logger from config. Unknown levels fall back to
// info rather than failing startup.
func New(cfg types.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(cfg.Format, "console") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
