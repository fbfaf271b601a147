package app

import (
	"time"

	"github.com/themcaffee/OPPR-sub003/internal/domain/rating"
	"github.com/themcaffee/OPPR-sub003/pkg/logger"
	"github.com/themcaffee/OPPR-sub003/pkg/metrics"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records on m instead of the global metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithRegistry replaces the default rating registry.
func WithRegistry(r *rating.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithWorkerCount sets the number of decay batch workers.
func WithWorkerCount(count int) Option {
	return func(e *Engine) {
		if count > 0 {
			e.workerCount = count
		}
	}
}

// WithTopEvents sets how many best events count toward ranking points and
// top-N efficiency.
func WithTopEvents(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topEvents = n
		}
	}
}

// WithTrendWindow sets the number of recent events used for trends.
func WithTrendWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.trendWindow = n
		}
	}
}

// WithOpponentsRange bounds the opponents considered on each side when
// ratings are updated.
func WithOpponentsRange(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.opponentsRange = n
		}
	}
}

// WithDefaultRatingSystem selects the system used when a caller names none.
func WithDefaultRatingSystem(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.defaultSystem = id
		}
	}
}

// WithClock sets the clock used for batches without a reference date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.clock = now
		}
	}
}
