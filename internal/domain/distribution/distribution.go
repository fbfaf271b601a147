// Package distribution splits an event's first-place value across its
// finishers using a linear share and a top-heavy dynamic share.
package distribution

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// ErrNoActiveResults is returned when every result is opted out or the
// result set is empty.
var ErrNoActiveResults = errors.New("no active results to distribute")

// Points is the award for a single position.
type Points struct {
	Linear  float64
	Dynamic float64
	Total   float64
}

// LinearPoints is the even share: every finisher earns some, last place the
// least.
func LinearPoints(position, playerCount int, firstPlaceValue float64) float64 {
	if playerCount <= 0 || position < 1 || position > playerCount {
		return 0
	}
	return float64(playerCount+1-position) * constants.LinearPercentage * (firstPlaceValue / float64(playerCount))
}

// DynamicWindow is the number of top positions eligible for dynamic points:
// half the rated field, at most MaxDynamicPlayers.
func DynamicWindow(ratedPlayerCount int) float64 {
	if ratedPlayerCount <= 0 {
		return 0
	}
	return math.Min(float64(ratedPlayerCount)/constants.DynamicWindowRatio, constants.MaxDynamicPlayers)
}

// DynamicPoints is the top-heavy share. It is exactly zero outside the
// dynamic window.
func DynamicPoints(position, ratedPlayerCount int, firstPlaceValue float64) float64 {
	if position < 1 {
		return 0
	}
	window := DynamicWindow(ratedPlayerCount)
	offset := float64(position - 1)
	if offset >= window {
		return 0
	}
	r := offset / window
	return math.Pow(1-math.Pow(r, constants.PositionExponent), constants.ValueExponent) * constants.DynamicPercentage * firstPlaceValue
}

// CalculatePlayerPoints returns the award for one position without building
// the full distribution.
func CalculatePlayerPoints(position, playerCount, ratedPlayerCount int, firstPlaceValue float64) Points {
	p := Points{
		Linear:  LinearPoints(position, playerCount, firstPlaceValue),
		Dynamic: DynamicPoints(position, ratedPlayerCount, firstPlaceValue),
	}
	p.Total = p.Linear + p.Dynamic
	return p
}

// Active returns the results that take part in the distribution, ordered by
// position.
func Active(results []model.PlayerResult) []model.PlayerResult {
	active := make([]model.PlayerResult, 0, len(results))
	for _, r := range results {
		if !r.OptedOut {
			active = append(active, r)
		}
	}
	slices.SortStableFunc(active, func(a, b model.PlayerResult) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return active
}

// Distribute awards points to every active result. Opted-out players are
// removed before the player and rated counts are taken, and the remaining
// finishers are ranked by their recorded order. The returned Position is
// that active rank (1..n), not the recorded position, so gaps left by
// opted-out players close up.
func Distribute(results []model.PlayerResult, firstPlaceValue float64) ([]model.PointDistribution, error) {
	active := Active(results)
	if len(active) == 0 {
		return nil, ErrNoActiveResults
	}

	playerCount := len(active)
	rated := 0
	for _, r := range active {
		if r.IsRated {
			rated++
		}
	}

	out := make([]model.PointDistribution, len(active))
	for i, r := range active {
		pos := i + 1
		pts := CalculatePlayerPoints(pos, playerCount, rated, firstPlaceValue)
		out[i] = model.PointDistribution{
			PlayerID:      r.PlayerID,
			Position:      pos,
			LinearPoints:  pts.Linear,
			DynamicPoints: pts.Dynamic,
			TotalPoints:   pts.Total,
		}
	}
	return out, nil
}

// Total sums the points handed out by a distribution.
func Total(dists []model.PointDistribution) float64 {
	sum := 0.0
	for _, d := range dists {
		sum += d.TotalPoints
	}
	return sum
}
