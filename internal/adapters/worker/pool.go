// Package worker shards batch recomputation across goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/themcaffee/OPPR-sub003/internal/domain/decay"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/pkg/logger"
	"github.com/themcaffee/OPPR-sub003/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Default pool configuration constants.
const (
	minShardSize  = 256 // smaller batches run on fewer goroutines
	cancelCheckAt = 1024
)

// Report summarises one decay batch.
type Report struct {
	BatchID       string        `json:"batch_id"`
	ReferenceDate time.Time     `json:"reference_date"`
	Items         int           `json:"items"`
	Active        int           `json:"active"`
	Shards        int           `json:"shards"`
	Duration      time.Duration `json:"duration"`
}

// Pool runs batch jobs over a fixed number of workers.
type Pool struct {
	workers int
	logger  logger.Logger
	metrics *metrics.Manager
	now     func() time.Time
}

// NewPool creates a pool. Without WithWorkers it uses one worker per CPU.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workers: runtime.NumCPU(),
		logger:  logger.GetOrNop().Named("worker-pool"),
		metrics: metrics.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers reports the pool size.
func (p *Pool) Workers() int { return p.workers }

// RecalculateTimeDecay recomputes decay for every event against one
// reference date. A zero referenceDate is replaced by the pool clock, read
// once for the whole batch. The input is not modified; the result keeps
// input order. On cancellation no events are returned.
func (p *Pool) RecalculateTimeDecay(ctx context.Context, events []model.PlayerEvent, referenceDate time.Time) ([]model.PlayerEvent, Report, error) {
	start := time.Now()
	ref := referenceDate
	if ref.IsZero() {
		ref = p.now()
	}
	report := Report{BatchID: uuid.NewString(), ReferenceDate: ref, Items: len(events)}

	out := make([]model.PlayerEvent, len(events))
	shards := p.shards(len(events))
	report.Shards = len(shards)

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range shards {
		s := s
		g.Go(func() error {
			for i := s.lo; i < s.hi; i++ {
				if (i-s.lo)%cancelCheckAt == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				out[i] = decay.RecalculateEvent(events[i], ref)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn(ctx, "decay batch aborted",
			logger.String("batch_id", report.BatchID),
			logger.Int("items", report.Items),
			logger.Error(err),
		)
		return nil, report, fmt.Errorf("decay batch %s: %w", report.BatchID, err)
	}

	for _, ev := range out {
		if ev.DecayMultiplier > 0 {
			report.Active++
		}
	}
	report.Duration = time.Since(start)
	p.metrics.RecordDecayBatch(report.Items, float64(report.Duration.Microseconds())/1000)

	p.logger.Debug(ctx, "decay batch done",
		logger.String("batch_id", report.BatchID),
		logger.String("reference_date", ref.Format(time.DateOnly)),
		logger.Int("items", report.Items),
		logger.Int("active", report.Active),
		logger.Int("shards", report.Shards),
		logger.Duration("duration", report.Duration),
	)
	return out, report, nil
}

type shard struct{ lo, hi int }

// shards splits n items into at most p.workers contiguous ranges.
func (p *Pool) shards(n int) []shard {
	if n == 0 {
		return nil
	}
	count := min(p.workers, (n+minShardSize-1)/minShardSize)
	count = max(count, 1)
	size := (n + count - 1) / count

	out := make([]shard, 0, count)
	for lo := 0; lo < n; lo += size {
		out = append(out, shard{lo: lo, hi: min(lo+size, n)})
	}
	return out
}
