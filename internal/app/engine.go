// Package app wires the valuation, distribution, decay, efficiency and
// rating components into one Engine used by the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/themcaffee/OPPR-sub003/internal/adapters/worker"
	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/distribution"
	"github.com/themcaffee/OPPR-sub003/internal/domain/efficiency"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/internal/domain/ranking"
	"github.com/themcaffee/OPPR-sub003/internal/domain/rating"
	"github.com/themcaffee/OPPR-sub003/internal/domain/rating/glicko"
	"github.com/themcaffee/OPPR-sub003/internal/domain/valuation"
	"github.com/themcaffee/OPPR-sub003/pkg/logger"
	"github.com/themcaffee/OPPR-sub003/pkg/metrics"
)

// Engine is the entry point for every engine operation. It is safe for
// concurrent use once constructed.
type Engine struct {
	registry *rating.Registry
	pool     *worker.Pool

	// Configuration
	workerCount    int
	topEvents      int
	trendWindow    int
	opponentsRange int
	defaultSystem  string
	clock          func() time.Time

	logger  logger.Logger
	metrics *metrics.Manager
}

// Scorecard is a valued event together with its point distribution.
type Scorecard struct {
	Valuation     valuation.Valuation       `json:"valuation"`
	Distributions []model.PointDistribution `json:"distributions"`
	TotalPoints   float64                   `json:"total_points"`
}

// Efficiency summarises a player's history.
type Efficiency struct {
	Stats   efficiency.Stats `json:"stats"`
	TopN    float64          `json:"top_n"`
	Decayed float64          `json:"decayed"`
	Trend   efficiency.Trend `json:"trend"`
	// RankingPoints is the sum of the best decayed events.
	RankingPoints float64 `json:"ranking_points"`
}

// New constructs an Engine. Without WithRegistry the registry holds the
// Glicko system only.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		workerCount:    runtime.NumCPU(),
		topEvents:      constants.TopEventsCount,
		trendWindow:    constants.TrendWindowSize,
		opponentsRange: constants.OpponentsRange,
		defaultSystem:  glicko.ID,
		clock:          time.Now,
		logger:         logger.GetOrNop().Named("engine"),
		metrics:        metrics.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := rating.NewRegistry(glicko.Strategy())
		if err != nil {
			return nil, fmt.Errorf("build rating registry: %w", err)
		}
		e.registry = reg
	}
	if !e.registry.Has(e.defaultSystem) {
		return nil, fmt.Errorf("default rating system: %w", e.lookupError(e.defaultSystem))
	}

	e.pool = worker.NewPool(
		worker.WithWorkers(e.workerCount),
		worker.WithLogger(e.logger.Named("pool")),
		worker.WithMetrics(e.metrics),
		worker.WithClock(e.clock),
	)
	return e, nil
}

// Registry returns the rating registry.
func (e *Engine) Registry() *rating.Registry { return e.registry }

// Systems lists the registered rating systems.
func (e *Engine) Systems() []string { return e.registry.IDs() }

// ValueEvent validates an event and computes its value.
func (e *Engine) ValueEvent(ctx context.Context, in valuation.EventInput) (valuation.Valuation, error) {
	v, err := valuation.Calculate(in)
	if err != nil {
		e.recordValidation(ctx, err)
		return valuation.Valuation{}, err
	}
	e.metrics.RecordEventValued(v.FirstPlaceValue)
	e.logger.Debug(ctx, "event valued",
		logger.Int("rated_players", v.RatedPlayerCount),
		logger.Float64("base_value", v.BaseValue),
		logger.Float64("tva", v.TVA.Total),
		logger.Float64("tgp", v.TGP),
		logger.String("booster", string(v.EventBooster)),
		logger.Float64("first_place_value", v.FirstPlaceValue),
	)
	return v, nil
}

// ScoreEvent values an event and distributes its points over the results.
func (e *Engine) ScoreEvent(ctx context.Context, in valuation.EventInput) (Scorecard, error) {
	if len(in.Results) == 0 {
		err := model.NewValidationError("results", "finishing order is required to distribute points")
		e.recordValidation(ctx, err)
		return Scorecard{}, err
	}
	v, err := e.ValueEvent(ctx, in)
	if err != nil {
		return Scorecard{}, err
	}
	dists, err := distribution.Distribute(in.Results, v.FirstPlaceValue)
	if err != nil {
		if errors.Is(err, distribution.ErrNoActiveResults) {
			e.recordValidation(ctx, model.NewValidationError("results", "%v", err))
		}
		return Scorecard{}, fmt.Errorf("distribute points: %w", err)
	}

	total := distribution.Total(dists)
	e.metrics.RecordDistribution(total)
	e.logger.Debug(ctx, "points distributed",
		logger.Int("players", len(dists)),
		logger.Float64("total_points", total),
	)
	return Scorecard{Valuation: v, Distributions: dists, TotalPoints: total}, nil
}

// RecalculateDecay recomputes decay for events against referenceDate. A zero
// date means now, sampled once for the batch.
func (e *Engine) RecalculateDecay(ctx context.Context, events []model.PlayerEvent, referenceDate time.Time) ([]model.PlayerEvent, worker.Report, error) {
	return e.pool.RecalculateTimeDecay(ctx, events, referenceDate)
}

// PlayerEfficiency summarises a player's history. Events should already
// carry current decay values.
func (e *Engine) PlayerEfficiency(events []model.PlayerEvent) Efficiency {
	return Efficiency{
		Stats:         efficiency.GetStats(events),
		TopN:          efficiency.TopN(events, e.topEvents),
		Decayed:       efficiency.Decayed(events),
		Trend:         efficiency.AnalyzeTrend(events, e.trendWindow),
		RankingPoints: ranking.RankingPoints(events, e.topEvents),
	}
}

// RankPlayers computes ranking points per player and orders them.
func (e *Engine) RankPlayers(histories map[string][]model.PlayerEvent) []ranking.Standing {
	standings := make([]ranking.Standing, 0, len(histories))
	for id, events := range histories {
		standings = append(standings, ranking.Standing{
			PlayerID: id,
			Points:   ranking.RankingPoints(events, e.topEvents),
		})
	}
	return ranking.Rank(standings)
}

// ApplyRankings ranks players by their histories and returns copies of
// players carrying the new rankings. Players without a history keep theirs.
func (e *Engine) ApplyRankings(players []model.Player, histories map[string][]model.PlayerEvent) []model.Player {
	return ranking.Apply(players, e.RankPlayers(histories))
}

// UpdateRatings rates one event with the named system. players must be in
// finishing order; an empty systemID selects the default system.
func (e *Engine) UpdateRatings(ctx context.Context, systemID string, players []model.Player) ([]model.Player, error) {
	if systemID == "" {
		systemID = e.defaultSystem
	}
	s, ok := e.registry.Lookup(systemID)
	if !ok {
		return nil, e.lookupError(systemID)
	}
	updated, err := rating.RateEvent(s, players, e.opponentsRange)
	if err != nil {
		e.logger.Error(ctx, "rating update failed", logger.String("system", systemID), logger.Error(err))
		return nil, err
	}
	e.metrics.RecordRatingUpdates(systemID, len(updated))
	e.logger.Debug(ctx, "ratings updated", logger.String("system", systemID), logger.Int("players", len(updated)))
	return updated, nil
}

func (e *Engine) lookupError(id string) error {
	e.metrics.RecordRegistryLookupError()
	_, err := e.registry.Get(id)
	return err
}

func (e *Engine) recordValidation(ctx context.Context, err error) {
	verrs := model.ValidationErrors(err)
	for _, ve := range verrs {
		e.metrics.RecordValidationError(ve.Field)
	}
	e.logger.Debug(ctx, "input rejected", logger.Int("problems", len(verrs)), logger.Error(err))
}
