package valuation

import (
	"math"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// HasValidQualifying reports whether the config describes a qualifying stage
// that contributes games.
func HasValidQualifying(cfg model.TGPConfig) bool {
	t := cfg.Qualifying.Type
	return t != "" && t != model.QualifyingNone && t.Known() && cfg.Qualifying.MeaningfulGames > 0
}

// HasValidFinals reports whether the config describes a finals stage that
// contributes games.
func HasValidFinals(cfg model.TGPConfig) bool {
	f := cfg.Finals.FormatType
	return f != "" && f != model.FinalsNone && f.Known() && cfg.Finals.MeaningfulGames > 0
}

// groupFactor returns the multiplier for group play; four-player groups win
// when both flags are set.
func groupFactor(four, three bool) float64 {
	switch {
	case four:
		return constants.FourPlayerGroupFactor
	case three:
		return constants.ThreePlayerGroupFactor
	default:
		return 1
	}
}

// ballCount returns the configured adjustment, treating zero as a full count.
func ballCount(cfg model.TGPConfig) float64 {
	if cfg.BallCountAdjustment <= 0 {
		return constants.BallCountFull
	}
	return cfg.BallCountAdjustment
}

// HourBonus is the extra grading earned by unlimited qualifying: one percent
// per hour, reaching its maximum at twenty hours.
func HourBonus(hours float64) float64 {
	if hours <= 0 {
		return 0
	}
	return math.Min(hours*constants.UnlimitedPercentPerHour, constants.UnlimitedMaxHourBonus)
}

// QualifyingTGP is the grading fraction contributed by the qualifying stage.
func QualifyingTGP(cfg model.TGPConfig) float64 {
	if !HasValidQualifying(cfg) {
		return 0
	}
	q := cfg.Qualifying
	v := constants.BaseGameValue * q.MeaningfulGames * groupFactor(q.FourPlayerGroups, q.ThreePlayerGroups) * ballCount(cfg)
	if q.Type == model.QualifyingUnlimited {
		v += HourBonus(q.Hours)
	}
	return v
}

// FinalsTGP is the grading fraction contributed by the finals stage.
func FinalsTGP(cfg model.TGPConfig) float64 {
	if !HasValidFinals(cfg) {
		return 0
	}
	f := cfg.Finals
	return constants.BaseGameValue * f.MeaningfulGames * groupFactor(f.FourPlayerGroups, f.ThreePlayerGroups) * ballCount(cfg)
}

// MaxTGP is the grading cap for the config: 200% when both stages are
// present, 100% otherwise.
func MaxTGP(cfg model.TGPConfig) float64 {
	if HasValidQualifying(cfg) && HasValidFinals(cfg) {
		return constants.MaxTGPWithFinals
	}
	return constants.MaxTGPWithoutFinals
}

// TGP returns the tournament grading percentage as a fraction (1.0 is 100%).
func TGP(cfg model.TGPConfig) float64 {
	total := QualifyingTGP(cfg) + FinalsTGP(cfg)
	return math.Max(0, math.Min(MaxTGP(cfg), total))
}
