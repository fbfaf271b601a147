// Package config defines process configuration and its loading.
//
// Conventions:
// - New returns a Config holding every default.
// - Load layers a YAML file and OPPR_* environment variables on top.
package config

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/rating/glicko"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WorkerCount sets the number of decay batch workers.
	WorkerCount int `koanf:"worker_count"`

	// RatingSystem is the registry id used when a caller names none.
	RatingSystem string `koanf:"rating_system"`

	// TopEventsCount is how many best events count toward ranking points
	// and top-N efficiency.
	TopEventsCount int `koanf:"top_events_count"`

	// TrendWindow is the number of most recent events compared against the
	// overall efficiency.
	TrendWindow int `koanf:"trend_window"`

	// OpponentsRange bounds how many finishers on each side a player is
	// compared with when ratings are updated.
	OpponentsRange int `koanf:"opponents_range"`

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		WorkerCount:      runtime.NumCPU(),
		RatingSystem:     glicko.ID,
		TopEventsCount:   constants.TopEventsCount,
		TrendWindow:      constants.TrendWindowSize,
		OpponentsRange:   constants.OpponentsRange,
		MetricsNamespace: "oppr",
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
		}
	}
	check(c.WorkerCount >= 1, "worker_count must be at least 1, got %d", c.WorkerCount)
	check(c.TopEventsCount >= 1, "top_events_count must be at least 1, got %d", c.TopEventsCount)
	check(c.TrendWindow >= 1, "trend_window must be at least 1, got %d", c.TrendWindow)
	check(c.OpponentsRange >= 1, "opponents_range must be at least 1, got %d", c.OpponentsRange)
	check(c.RatingSystem != "", "rating_system must not be empty")
	check(c.MetricsNamespace != "", "metrics_namespace must not be empty")
	return errors.Join(errs...)
}
