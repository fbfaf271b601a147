// Package booster classifies events into prestige tiers and applies the
// tier's value multiplier.
package booster

import (
	"fmt"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// Criteria are the objective event signals used for classification.
type Criteria struct {
	RatedPlayerCount   int
	HasValidQualifying bool
	HasValidFinals     bool
	FinalistCount      int
	DurationDays       int
}

var multipliers = map[model.EventBooster]float64{
	model.BoosterNone:               constants.BoosterNoneMultiplier,
	model.BoosterCertified:          constants.BoosterCertifiedMultiplier,
	model.BoosterCertifiedPlus:      constants.BoosterCertifiedPlusMultiplier,
	model.BoosterChampionshipSeries: constants.BoosterChampionshipSeriesMultiplier,
	model.BoosterMajor:              constants.BoosterMajorMultiplier,
}

// QualifiesForCertified reports whether the event meets the certified tier.
// The rated player count is not considered at this tier.
func QualifiesForCertified(c Criteria) bool {
	return c.HasValidQualifying &&
		c.HasValidFinals &&
		c.FinalistCount >= constants.CertifiedMinFinalists &&
		c.DurationDays <= constants.CertifiedMaxDurationDays
}

// QualifiesForCertifiedPlus reports whether the event meets the certified-plus
// tier. It never holds when QualifiesForCertified does not.
func QualifiesForCertifiedPlus(c Criteria) bool {
	return QualifiesForCertified(c) && c.RatedPlayerCount >= constants.CertifiedPlusMinRatedPlayer
}

// Determine returns the highest tier the criteria earn. Championship series
// and major are assigned directly and never derived here.
func Determine(c Criteria) model.EventBooster {
	switch {
	case QualifiesForCertifiedPlus(c):
		return model.BoosterCertifiedPlus
	case QualifiesForCertified(c):
		return model.BoosterCertified
	default:
		return model.BoosterNone
	}
}

// Multiplier returns the value multiplier for a tier; unknown tiers count as none.
func Multiplier(tier model.EventBooster) float64 {
	if m, ok := multipliers[tier]; ok {
		return m
	}
	return constants.BoosterNoneMultiplier
}

// Apply scales value by the tier multiplier.
func Apply(value float64, tier model.EventBooster) float64 {
	return value * Multiplier(tier)
}

// Parse converts a tier name into an EventBooster. The empty string is none.
func Parse(s string) (model.EventBooster, error) {
	if s == "" {
		return model.BoosterNone, nil
	}
	tier := model.EventBooster(s)
	if _, ok := multipliers[tier]; !ok {
		return "", model.NewValidationError("event_booster", "unknown tier %q", s)
	}
	return tier, nil
}

// String renders criteria for logs.
func (c Criteria) String() string {
	return fmt.Sprintf("rated=%d qualifying=%t finals=%t finalists=%d days=%d",
		c.RatedPlayerCount, c.HasValidQualifying, c.HasValidFinals, c.FinalistCount, c.DurationDays)
}
