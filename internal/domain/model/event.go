// Package model contains domain models passed between layers.
package model

import "time"

// EventBooster is the prestige tier of an event.
type EventBooster string

// Known booster tiers.
const (
	BoosterNone               EventBooster = "none"
	BoosterCertified          EventBooster = "certified"
	BoosterCertifiedPlus      EventBooster = "certified-plus"
	BoosterChampionshipSeries EventBooster = "championship-series"
	BoosterMajor              EventBooster = "major"
)

// PlayerResult links one player to one event's finishing order.
type PlayerResult struct {
	PlayerID string `json:"player_id" koanf:"player_id"`
	Position int    `json:"position" koanf:"position"` // 1-based, unique within the event
	OptedOut bool   `json:"opted_out" koanf:"opted_out"`
	IsRated  bool   `json:"is_rated" koanf:"is_rated"`
}

// PointDistribution is the award computed for one finishing position.
type PointDistribution struct {
	PlayerID      string  `json:"player_id"`
	Position      int     `json:"position"`
	LinearPoints  float64 `json:"linear_points"`
	DynamicPoints float64 `json:"dynamic_points"`
	TotalPoints   float64 `json:"total_points"`
}

// PlayerEvent is a player's award from one event, as seen by the decay and
// efficiency calculators.
type PlayerEvent struct {
	EventID         string    `json:"event_id"`
	PointsEarned    float64   `json:"points_earned"`
	FirstPlaceValue float64   `json:"first_place_value"`
	DecayMultiplier float64   `json:"decay_multiplier"`
	DecayedPoints   float64   `json:"decayed_points"`
	Date            time.Time `json:"date"`
}
