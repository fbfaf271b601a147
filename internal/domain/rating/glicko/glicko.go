// Package glicko implements a Glicko rating system for the rating registry.
//
// Ratings carry a value and a rating deviation (RD). The deviation narrows as
// a player competes and widens again while they are inactive.
package glicko

import (
	"math"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/internal/domain/rating"
)

// ID is the registry key of the Glicko system.
const ID = "glicko"

// Rating is a Glicko strength estimate.
type Rating struct {
	Value     float64 `json:"value"`
	Deviation float64 `json:"deviation"`
}

// Config holds the system parameters.
type Config struct {
	InitialRating        float64
	InitialDeviation     float64
	MinDeviation         float64
	MaxDeviation         float64
	ProvisionalDeviation float64
	ProvisionalEvents    int
}

// DefaultConfig returns the standard parameters.
func DefaultConfig() Config {
	return Config{
		InitialRating:        constants.DefaultRating,
		InitialDeviation:     constants.DefaultRatingDeviation,
		MinDeviation:         constants.MinRatingDeviation,
		MaxDeviation:         constants.MaxRatingDeviation,
		ProvisionalDeviation: constants.ProvisionalDeviation,
		ProvisionalEvents:    constants.RatedPlayerThreshold,
	}
}

// Option applies a configuration option to the System.
type Option func(*System)

// WithConfig replaces the system parameters.
func WithConfig(cfg Config) Option {
	return func(s *System) {
		s.cfg = cfg
	}
}

// System implements rating.System[Rating].
type System struct {
	cfg Config
}

var _ rating.System[Rating] = (*System)(nil)

// New creates a Glicko system.
func New(opts ...Option) *System {
	s := &System{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strategy returns the system ready to be registered.
func Strategy(opts ...Option) rating.Strategy {
	return rating.Erase[Rating](New(opts...))
}

// ID implements rating.System.
func (s *System) ID() string { return ID }

// CreateNewRating returns the rating assigned to a newcomer.
func (s *System) CreateNewRating() Rating {
	return Rating{Value: s.cfg.InitialRating, Deviation: s.cfg.InitialDeviation}
}

// g reduces the weight of opponents whose rating is uncertain.
func g(rd float64) float64 {
	q := constants.GlickoQ
	return 1 / math.Sqrt(1+3*q*q*rd*rd/(math.Pi*math.Pi))
}

// expected is the expected score of r against an opponent.
func expected(r, opponent, gOpp float64) float64 {
	return 1 / (1 + math.Pow(10, -gOpp*(r-opponent)/400))
}

// UpdateRating applies one rating period of results. With no results, or
// results carrying no information, the rating is returned unchanged.
func (s *System) UpdateRating(current Rating, results []rating.MatchResult[Rating]) rating.UpdateResult[Rating] {
	if len(results) == 0 {
		return rating.UpdateResult[Rating]{NewRating: current}
	}
	q := constants.GlickoQ
	rd := s.clampDeviation(current.Deviation)

	var variance, improvement float64
	for _, res := range results {
		gj := g(res.Opponent.Deviation)
		ej := expected(current.Value, res.Opponent.Value, gj)
		variance += gj * gj * ej * (1 - ej)
		improvement += gj * (res.Score - ej)
	}
	if variance == 0 || math.IsNaN(variance) {
		return rating.UpdateResult[Rating]{NewRating: current}
	}

	dSquared := 1 / (q * q * variance)
	denom := 1/(rd*rd) + 1/dSquared

	return rating.UpdateResult[Rating]{NewRating: Rating{
		Value:     current.Value + q/denom*improvement,
		Deviation: s.clampDeviation(math.Sqrt(1 / denom)),
	}}
}

// RatingValue implements rating.System.
func (s *System) RatingValue(r Rating) float64 { return r.Value }

// IsProvisional reports whether the rating is still settling: too few events
// or a deviation above the provisional threshold.
func (s *System) IsProvisional(r Rating, eventCount int) bool {
	return eventCount < s.cfg.ProvisionalEvents || r.Deviation > s.cfg.ProvisionalDeviation
}

// FromPlayer reads a player's stored rating, treating a missing deviation as a
// newcomer's.
func (s *System) FromPlayer(p model.Player) Rating {
	if p.RatingDeviation <= 0 && p.Rating == 0 {
		return s.CreateNewRating()
	}
	rd := p.RatingDeviation
	if rd <= 0 {
		rd = s.cfg.InitialDeviation
	}
	return Rating{Value: p.Rating, Deviation: s.clampDeviation(rd)}
}

// ApplyToPlayer implements rating.System.
func (s *System) ApplyToPlayer(r Rating, p model.Player) model.Player {
	p.Rating = r.Value
	p.RatingDeviation = r.Deviation
	return p
}

func (s *System) clampDeviation(rd float64) float64 {
	return clamp(s.cfg.MinDeviation, rd, s.cfg.MaxDeviation)
}

// clamp bounds v to [low, high].
func clamp(low, v, high float64) float64 {
	if v < low {
		return low
	} else if v > high {
		return high
	}
	return v
}
