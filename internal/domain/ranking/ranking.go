// Package ranking turns decayed event history into ranking points and
// orders players into a ranking list.
package ranking

import (
	"cmp"
	"slices"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// Standing is a player's ranking points before ordering.
type Standing struct {
	PlayerID string  `json:"player_id"`
	Points   float64 `json:"points"`
	// Ranking is 1-based; nil for players without points.
	Ranking *int `json:"ranking,omitempty"`
}

// IsRated reports whether a player with eventCount events is rated.
func IsRated(eventCount int) bool {
	return eventCount >= constants.RatedPlayerThreshold
}

// RankingPoints sums the decayed points of the topN best active events.
// A non-positive topN uses the default window.
func RankingPoints(events []model.PlayerEvent, topN int) float64 {
	if topN <= 0 {
		topN = constants.TopEventsCount
	}
	points := make([]float64, 0, len(events))
	for _, ev := range events {
		if ev.DecayMultiplier > 0 && ev.DecayedPoints > 0 {
			points = append(points, ev.DecayedPoints)
		}
	}
	slices.SortFunc(points, func(a, b float64) int { return cmp.Compare(b, a) })

	var total float64
	for _, p := range points[:min(topN, len(points))] {
		total += p
	}
	return total
}

// Rank orders standings by points, highest first, breaking ties by player
// id, and assigns consecutive rankings. Players with no points stay
// unranked at the end. The input is not modified.
func Rank(standings []Standing) []Standing {
	out := slices.Clone(standings)
	slices.SortStableFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	next := 1
	for i := range out {
		if out[i].Points <= 0 {
			out[i].Ranking = nil
			continue
		}
		r := next
		out[i].Ranking = &r
		next++
	}
	return out
}

// Apply copies rankings onto players matched by id. Players missing from
// standings keep their current ranking.
func Apply(players []model.Player, standings []Standing) []model.Player {
	byID := make(map[string]*int, len(standings))
	for _, s := range standings {
		byID[s.PlayerID] = s.Ranking
	}
	out := slices.Clone(players)
	for i := range out {
		if r, ok := byID[out[i].ID]; ok {
			out[i].Ranking = r
		}
	}
	return out
}
