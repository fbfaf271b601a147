package worker

import (
	"time"

	"github.com/themcaffee/OPPR-sub003/pkg/logger"
	"github.com/themcaffee/OPPR-sub003/pkg/metrics"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets the number of workers. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics records batch metrics on m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(p *Pool) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithClock sets the clock used when a batch has no reference date.
func WithClock(now func() time.Time) Option {
	return func(p *Pool) {
		if now != nil {
			p.now = now
		}
	}
}
