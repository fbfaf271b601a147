// Package efficiency measures how much of the available value a player
// captured, per event and across their active events.
package efficiency

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// Direction classifies a trend.
type Direction string

// Trend directions.
const (
	Improving Direction = "improving"
	Declining Direction = "declining"
	Stable    Direction = "stable"
)

// Trend compares recent efficiency with overall efficiency.
type Trend struct {
	Direction  Direction `json:"direction"`
	Overall    float64   `json:"overall"`
	Recent     float64   `json:"recent"`
	Difference float64   `json:"difference"`
}

// Stats summarises a player's efficiency. All fields are zero without
// active events.
type Stats struct {
	Overall float64 `json:"overall"`
	Top15   float64 `json:"top15"`
	Best    float64 `json:"best"`
	Worst   float64 `json:"worst"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
}

// Event returns earned points as a percentage of the first-place value, or 0
// when the event had no value.
func Event(pointsEarned, firstPlaceValue float64) float64 {
	if firstPlaceValue == 0 {
		return 0
	}
	return pointsEarned / firstPlaceValue * 100
}

// active keeps events whose points still count.
func active(events []model.PlayerEvent) []model.PlayerEvent {
	out := make([]model.PlayerEvent, 0, len(events))
	for _, ev := range events {
		if ev.DecayMultiplier > 0 {
			out = append(out, ev)
		}
	}
	return out
}

// ratio sums a numerator field over the summed first-place values.
func ratio(events []model.PlayerEvent, points func(model.PlayerEvent) float64) float64 {
	earned, available := 0.0, 0.0
	for _, ev := range events {
		earned += points(ev)
		available += ev.FirstPlaceValue
	}
	return Event(earned, available)
}

func earned(ev model.PlayerEvent) float64  { return ev.PointsEarned }
func decayed(ev model.PlayerEvent) float64 { return ev.DecayedPoints }

// Overall is total earned over total available across active events.
func Overall(events []model.PlayerEvent) float64 {
	return ratio(active(events), earned)
}

// TopN is Overall restricted to the topN active events by raw points earned.
// A non-positive topN uses the ranking window.
func TopN(events []model.PlayerEvent, topN int) float64 {
	if topN <= 0 {
		topN = constants.TopEventsCount
	}
	act := active(events)
	slices.SortStableFunc(act, func(a, b model.PlayerEvent) int {
		return cmp.Compare(b.PointsEarned, a.PointsEarned)
	})
	if len(act) > topN {
		act = act[:topN]
	}
	return ratio(act, earned)
}

// Decayed is Overall with decayed points in the numerator.
func Decayed(events []model.PlayerEvent) float64 {
	return ratio(active(events), decayed)
}

// AnalyzeTrend compares the windowSize most recent active events against all
// active events. Differences within the deadband are stable. A non-positive
// windowSize uses the default window.
func AnalyzeTrend(events []model.PlayerEvent, windowSize int) Trend {
	if windowSize <= 0 {
		windowSize = constants.TrendWindowSize
	}
	act := active(events)
	overall := ratio(act, earned)

	slices.SortStableFunc(act, func(a, b model.PlayerEvent) int {
		return b.Date.Compare(a.Date)
	})
	if len(act) > windowSize {
		act = act[:windowSize]
	}
	recent := ratio(act, earned)

	t := Trend{Overall: overall, Recent: recent, Difference: recent - overall, Direction: Stable}
	switch {
	case t.Difference > constants.TrendDeadbandPercentPoint:
		t.Direction = Improving
	case t.Difference < -constants.TrendDeadbandPercentPoint:
		t.Direction = Declining
	}
	return t
}

// GetStats computes the efficiency summary from per-event efficiencies of
// active events.
func GetStats(events []model.PlayerEvent) Stats {
	act := active(events)
	if len(act) == 0 {
		return Stats{}
	}

	per := make([]float64, len(act))
	for i, ev := range act {
		per[i] = Event(ev.PointsEarned, ev.FirstPlaceValue)
	}
	slices.Sort(per)

	return Stats{
		Overall: ratio(act, earned),
		Top15:   TopN(act, constants.TopEventsCount),
		Best:    per[len(per)-1],
		Worst:   per[0],
		Average: stat.Mean(per, nil),
		Median:  median(per),
	}
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
