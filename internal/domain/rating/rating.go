// Package rating defines the pluggable rating-system contract and the
// registry rating systems are selected from at runtime.
//
// Valuation, distribution and decay never depend on a concrete rating
// algorithm: callers resolve a Strategy by id and drive it through this
// interface only.
package rating

import (
	"errors"
	"fmt"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// ErrRatingType is returned when a Strategy receives a rating produced by a
// different rating system.
var ErrRatingType = errors.New("rating value belongs to a different rating system")

// MatchResult is one head-to-head outcome against an opponent.
// Score is 1 for a win, 0.5 for a draw and 0 for a loss.
type MatchResult[T any] struct {
	Opponent T
	Score    float64
}

// UpdateResult carries the outcome of a rating update.
type UpdateResult[T any] struct {
	NewRating T
}

// System is a rating algorithm over its own rating type T.
type System[T any] interface {
	// ID is the registry key of the system.
	ID() string
	CreateNewRating() T
	UpdateRating(current T, results []MatchResult[T]) UpdateResult[T]
	RatingValue(r T) float64
	IsProvisional(r T, eventCount int) bool
	// FromPlayer reads the player's stored rating fields.
	FromPlayer(p model.Player) T
	// ApplyToPlayer returns a copy of p carrying r.
	ApplyToPlayer(r T, p model.Player) model.Player
}

// Strategy is a System with its rating type erased so systems with different
// rating types can share a Registry.
type Strategy interface {
	ID() string
	CreateNewRating() any
	UpdateRating(current any, results []MatchResult[any]) (UpdateResult[any], error)
	RatingValue(r any) (float64, error)
	IsProvisional(r any, eventCount int) (bool, error)
	FromPlayer(p model.Player) any
	ApplyToPlayer(r any, p model.Player) (model.Player, error)
}

// Erase wraps a typed System as a Strategy.
func Erase[T any](s System[T]) Strategy {
	return erased[T]{sys: s}
}

type erased[T any] struct {
	sys System[T]
}

func (e erased[T]) ID() string { return e.sys.ID() }

func (e erased[T]) CreateNewRating() any { return e.sys.CreateNewRating() }

func (e erased[T]) cast(v any) (T, error) {
	r, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: got %T: %w", e.sys.ID(), v, ErrRatingType)
	}
	return r, nil
}

func (e erased[T]) UpdateRating(current any, results []MatchResult[any]) (UpdateResult[any], error) {
	cur, err := e.cast(current)
	if err != nil {
		return UpdateResult[any]{}, err
	}
	typed := make([]MatchResult[T], len(results))
	for i, res := range results {
		opp, err := e.cast(res.Opponent)
		if err != nil {
			return UpdateResult[any]{}, fmt.Errorf("opponent %d: %w", i, err)
		}
		typed[i] = MatchResult[T]{Opponent: opp, Score: res.Score}
	}
	out := e.sys.UpdateRating(cur, typed)
	return UpdateResult[any]{NewRating: out.NewRating}, nil
}

func (e erased[T]) RatingValue(r any) (float64, error) {
	v, err := e.cast(r)
	if err != nil {
		return 0, err
	}
	return e.sys.RatingValue(v), nil
}

func (e erased[T]) IsProvisional(r any, eventCount int) (bool, error) {
	v, err := e.cast(r)
	if err != nil {
		return false, err
	}
	return e.sys.IsProvisional(v, eventCount), nil
}

func (e erased[T]) FromPlayer(p model.Player) any { return e.sys.FromPlayer(p) }

func (e erased[T]) ApplyToPlayer(r any, p model.Player) (model.Player, error) {
	v, err := e.cast(r)
	if err != nil {
		return p, err
	}
	return e.sys.ApplyToPlayer(v, p), nil
}

// MatchResults turns a finishing order into head-to-head results for the
// player at index: every finisher within opponentsRange places above counts
// as a loss and every one within range below counts as a win.
func MatchResults[T any](order []T, index, opponentsRange int) []MatchResult[T] {
	if index < 0 || index >= len(order) {
		return nil
	}
	if opponentsRange <= 0 {
		opponentsRange = constants.OpponentsRange
	}
	lo := max(0, index-opponentsRange)
	hi := min(len(order)-1, index+opponentsRange)

	results := make([]MatchResult[T], 0, hi-lo)
	for j := lo; j <= hi; j++ {
		if j == index {
			continue
		}
		score := 0.0
		if j > index {
			score = 1
		}
		results = append(results, MatchResult[T]{Opponent: order[j], Score: score})
	}
	return results
}

// RateEvent updates every player of one event. Players must be given in
// finishing order; all updates use the ratings held before the event. Each
// returned player has its event count incremented and its rated flag
// refreshed.
func RateEvent(s Strategy, players []model.Player, opponentsRange int) ([]model.Player, error) {
	before := make([]any, len(players))
	for i, p := range players {
		before[i] = s.FromPlayer(p)
	}

	out := make([]model.Player, len(players))
	for i, p := range players {
		res, err := s.UpdateRating(before[i], MatchResults(before, i, opponentsRange))
		if err != nil {
			return nil, fmt.Errorf("rate player %q: %w", p.ID, err)
		}
		updated, err := s.ApplyToPlayer(res.NewRating, p)
		if err != nil {
			return nil, fmt.Errorf("apply rating to %q: %w", p.ID, err)
		}
		updated.EventCount++
		updated.IsRated = updated.EventCount >= constants.RatedPlayerThreshold
		out[i] = updated
	}
	return out, nil
}
