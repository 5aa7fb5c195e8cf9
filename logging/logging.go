// Package logging configures the zerolog base logger for the game
// The terminal owns stdout, so output goes to a file or nowhere
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer, discarded when nil
	Service string    // optional service name attached to every entry
}

var (
	once sync.Once
	base = zerolog.Nop()
)

// New builds a logger from cfg without touching global state
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = io.Discard
	}

	service := cfg.Service
	if service == "" {
		service = "outpost"
	}

	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Configure initialises the global logger exactly once
func Configure(cfg Config) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		base = New(cfg)
	})
}

// Base returns the configured base logger, a no-op logger before Configure
func Base() zerolog.Logger {
	return base
}

// WithComponent returns a child logger annotated with the given component name
func WithComponent(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// Discard returns a logger that drops everything, for tests and headless runs
func Discard() zerolog.Logger {
	return zerolog.Nop()
}

// OpenFile creates dir if needed and opens path inside it for appending
func OpenFile(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create dir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", name, err)
	}
	return f, nil
}
