// Package valuation computes an event's first-place value from the strength
// of its field, its format, and its prestige tier.
package valuation

import (
	"errors"

	"github.com/themcaffee/OPPR-sub003/internal/domain/booster"
	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// EventInput is everything needed to value one event.
type EventInput struct {
	// Players is the full field. Opted-out players still count toward the
	// strength of the event.
	Players []model.Player
	// Results is the finishing order; optional for valuation.
	Results []model.PlayerResult
	TGP     model.TGPConfig
	// Booster forces a tier. When empty the tier is derived from the field.
	Booster      model.EventBooster
	DurationDays int
}

// Valuation is the outbound breakdown of an event's value.
type Valuation struct {
	RatedPlayerCount       int                `json:"rated_player_count"`
	BaseValue              float64            `json:"base_value"`
	TVA                    TVABreakdown       `json:"tva"`
	TGP                    float64            `json:"tgp"`
	EventBooster           model.EventBooster `json:"event_booster"`
	EventBoosterMultiplier float64            `json:"event_booster_multiplier"`
	FirstPlaceValue        float64            `json:"first_place_value"`
}

// FirstPlaceValue scales base plus adjustment by the grading fraction and
// then by the booster multiplier, with no intermediate rounding.
func FirstPlaceValue(baseValue, tva, tgp float64, tier model.EventBooster) float64 {
	return booster.Apply((baseValue+tva)*tgp, tier)
}

// RatedPlayerCount counts rated players in the field.
func RatedPlayerCount(players []model.Player) int {
	n := 0
	for _, p := range players {
		if p.IsRated {
			n++
		}
	}
	return n
}

// Criteria builds booster classification criteria for the event.
func Criteria(in EventInput) booster.Criteria {
	return booster.Criteria{
		RatedPlayerCount:   RatedPlayerCount(in.Players),
		HasValidQualifying: HasValidQualifying(in.TGP),
		HasValidFinals:     HasValidFinals(in.TGP),
		FinalistCount:      in.TGP.Finals.FinalistCount,
		DurationDays:       in.DurationDays,
	}
}

// Calculate validates the event and assembles its valuation.
func Calculate(in EventInput) (Valuation, error) {
	if err := ValidateEvent(in); err != nil {
		return Valuation{}, err
	}

	tier := in.Booster
	if tier == "" {
		tier = booster.Determine(Criteria(in))
	}

	rated := RatedPlayerCount(in.Players)
	v := Valuation{
		RatedPlayerCount:       rated,
		BaseValue:              BaseValue(rated),
		TVA:                    TVA(in.Players),
		TGP:                    TGP(in.TGP),
		EventBooster:           tier,
		EventBoosterMultiplier: booster.Multiplier(tier),
	}
	v.FirstPlaceValue = FirstPlaceValue(v.BaseValue, v.TVA.Total, v.TGP, tier)
	return v, nil
}

// ValidateEvent checks the event description and returns every problem
// found, joined.
func ValidateEvent(in EventInput) error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, model.NewValidationError(field, format, args...))
	}

	participants := len(in.Players)
	if len(in.Results) > 0 {
		participants = len(in.Results)
	}
	if participants < constants.MinPlayers {
		add("players", "event needs at least %d players, got %d", constants.MinPlayers, participants)
	}

	players := make(map[string]bool, len(in.Players))
	for _, p := range in.Players {
		if p.ID == "" {
			continue
		}
		if players[p.ID] {
			add("player_id", "duplicate player %q", p.ID)
		}
		players[p.ID] = true
	}

	seen := make(map[int]bool, len(in.Results))
	finishers := make(map[string]bool, len(in.Results))
	for _, r := range in.Results {
		if r.PlayerID != "" {
			if finishers[r.PlayerID] {
				add("player_id", "duplicate player %q in results", r.PlayerID)
			}
			finishers[r.PlayerID] = true
		}
		if r.Position < 1 {
			add("position", "player %q has position %d; positions start at 1", r.PlayerID, r.Position)
			continue
		}
		if seen[r.Position] {
			add("position", "position %d is used more than once", r.Position)
		}
		seen[r.Position] = true
	}

	if in.Booster != "" {
		if _, err := booster.Parse(string(in.Booster)); err != nil {
			errs = append(errs, err)
		}
	}
	if in.DurationDays < 0 {
		add("duration_days", "must not be negative")
	}

	cfg := in.TGP
	switch cfg.BallCountAdjustment {
	case 0, constants.BallCountOneThird, constants.BallCountTwoThirds, constants.BallCountFull:
	default:
		add("ball_count_adjustment", "must be one of 0.33, 0.66 or 1.0, got %v", cfg.BallCountAdjustment)
	}
	if !cfg.Qualifying.Type.Known() {
		add("qualifying.type", "unknown qualifying type %q", cfg.Qualifying.Type)
	}
	if cfg.Qualifying.MeaningfulGames < 0 {
		add("qualifying.meaningful_games", "must not be negative")
	}
	if cfg.Qualifying.Hours < 0 {
		add("qualifying.hours", "must not be negative")
	}
	if !cfg.Finals.FormatType.Known() {
		add("finals.format_type", "unknown finals format %q", cfg.Finals.FormatType)
	}
	if cfg.Finals.MeaningfulGames < 0 {
		add("finals.meaningful_games", "must not be negative")
	}
	finalists := cfg.Finals.FinalistCount
	if finalists < 0 {
		add("finals.finalist_count", "must not be negative")
	}
	if participants > 0 && finalists > participants {
		add("finals.finalist_count", "%d finalists exceed %d players", finalists, participants)
	}
	if HasValidFinals(cfg) && finalists > 0 && finalists < constants.MinFinalists {
		add("finals.finalist_count", "finals need at least %d finalists", constants.MinFinalists)
	}

	return errors.Join(errs...)
}
