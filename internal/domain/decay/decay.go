// Package decay ages awarded points: each full year since an event lowers the
// share of its points that still counts, and events older than three years
// stop counting.
package decay

import (
	"math"
	"time"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// Options carries the reference date decay is measured against. A zero
// ReferenceDate means now.
type Options struct {
	ReferenceDate time.Time
}

// Reference returns the reference date, sampling the clock when unset.
func (o Options) Reference() time.Time {
	if o.ReferenceDate.IsZero() {
		return time.Now()
	}
	return o.ReferenceDate
}

// DaysBetween returns the whole days from a to b, floored, using the
// millisecond difference. Same instants yield 0.
func DaysBetween(a, b time.Time) int {
	diff := b.UnixMilli() - a.UnixMilli()
	days := diff / millisPerDay
	if diff%millisPerDay != 0 && diff < 0 {
		days--
	}
	return int(days)
}

// EventAge returns the age of an event in years of 365 days.
func EventAge(eventDate, referenceDate time.Time) float64 {
	return float64(DaysBetween(eventDate, referenceDate)) / constants.DaysPerYear
}

// Multiplier maps an age in years onto its decay band. Each band includes
// its lower edge, so an age of exactly 1.0 is already in the second band.
// Future events (negative age) count in full.
func Multiplier(ageInYears float64) float64 {
	switch {
	case math.IsNaN(ageInYears):
		return constants.DecayExpired
	case ageInYears < 1:
		return constants.DecayYearOne
	case ageInYears < 2:
		return constants.DecayYearTwo
	case ageInYears < constants.ActiveWindowYears:
		return constants.DecayYearThree
	default:
		return constants.DecayExpired
	}
}

// Apply returns points scaled by the decay multiplier of the event's age.
func Apply(points float64, eventDate time.Time, opts Options) float64 {
	return points * Multiplier(EventAge(eventDate, opts.Reference()))
}

// IsActive reports whether an event still counts toward rankings.
func IsActive(eventDate time.Time, opts Options) bool {
	return Multiplier(EventAge(eventDate, opts.Reference())) > 0
}

// Result is the decay computed for one event.
type Result struct {
	AgeInDays       int     `json:"age_in_days"`
	AgeInYears      float64 `json:"age_in_years"`
	DecayMultiplier float64 `json:"decay_multiplier"`
	DecayedPoints   float64 `json:"decayed_points"`
}

// Evaluate computes the full decay breakdown for points earned on a date.
func Evaluate(points float64, eventDate, referenceDate time.Time) Result {
	days := DaysBetween(eventDate, referenceDate)
	age := float64(days) / constants.DaysPerYear
	m := Multiplier(age)
	return Result{
		AgeInDays:       days,
		AgeInYears:      age,
		DecayMultiplier: m,
		DecayedPoints:   points * m,
	}
}

// RecalculateEvent returns a copy of ev with its decay fields recomputed from
// the raw points, so repeated runs never compound.
func RecalculateEvent(ev model.PlayerEvent, referenceDate time.Time) model.PlayerEvent {
	r := Evaluate(ev.PointsEarned, ev.Date, referenceDate)
	ev.DecayMultiplier = r.DecayMultiplier
	ev.DecayedPoints = r.DecayedPoints
	return ev
}

// Recalculate recomputes decay for every event against one reference date
// snapshot. Inputs are not modified.
func Recalculate(events []model.PlayerEvent, opts Options) []model.PlayerEvent {
	ref := opts.Reference()
	out := make([]model.PlayerEvent, len(events))
	for i, ev := range events {
		out[i] = RecalculateEvent(ev, ref)
	}
	return out
}
