package model

// QualifyingType describes how the qualifying stage is run.
type QualifyingType string

// Qualifying formats.
const (
	QualifyingNone      QualifyingType = "none"
	QualifyingLimited   QualifyingType = "limited"
	QualifyingUnlimited QualifyingType = "unlimited"
)

// FinalsFormat describes how the finals stage is run.
type FinalsFormat string

// Finals formats.
const (
	FinalsNone              FinalsFormat = "none"
	FinalsSingleElimination FinalsFormat = "single-elimination"
	FinalsDoubleElimination FinalsFormat = "double-elimination"
	FinalsMatchPlay         FinalsFormat = "match-play"
	FinalsBestGame          FinalsFormat = "best-game"
	FinalsPinGolf           FinalsFormat = "pin-golf"
	FinalsFlipFrenzy        FinalsFormat = "flip-frenzy"
	FinalsHybrid            FinalsFormat = "hybrid"
)

// QualifyingConfig describes the qualifying stage of an event.
type QualifyingConfig struct {
	Type              QualifyingType `json:"type" koanf:"type"`
	MeaningfulGames   float64        `json:"meaningful_games" koanf:"meaningful_games"`
	FourPlayerGroups  bool           `json:"four_player_groups,omitempty" koanf:"four_player_groups"`
	ThreePlayerGroups bool           `json:"three_player_groups,omitempty" koanf:"three_player_groups"`
	Hours             float64        `json:"hours,omitempty" koanf:"hours"` // unlimited formats only
}

// FinalsConfig describes the finals stage of an event.
type FinalsConfig struct {
	FormatType        FinalsFormat `json:"format_type" koanf:"format_type"`
	MeaningfulGames   float64      `json:"meaningful_games" koanf:"meaningful_games"`
	FourPlayerGroups  bool         `json:"four_player_groups,omitempty" koanf:"four_player_groups"`
	ThreePlayerGroups bool         `json:"three_player_groups,omitempty" koanf:"three_player_groups"`
	FinalistCount     int          `json:"finalist_count,omitempty" koanf:"finalist_count"`
}

// TGPConfig is the per-event format descriptor driving the grading percentage.
type TGPConfig struct {
	Qualifying          QualifyingConfig `json:"qualifying" koanf:"qualifying"`
	Finals              FinalsConfig     `json:"finals" koanf:"finals"`
	BallCountAdjustment float64          `json:"ball_count_adjustment" koanf:"ball_count_adjustment"`
}

// Known reports whether the qualifying type is one of the defined formats.
// The empty string is treated as none.
func (q QualifyingType) Known() bool {
	switch q {
	case "", QualifyingNone, QualifyingLimited, QualifyingUnlimited:
		return true
	}
	return false
}

// Known reports whether the finals format is one of the defined formats.
// The empty string is treated as none.
func (f FinalsFormat) Known() bool {
	switch f {
	case "", FinalsNone, FinalsSingleElimination, FinalsDoubleElimination, FinalsMatchPlay,
		FinalsBestGame, FinalsPinGolf, FinalsFlipFrenzy, FinalsHybrid:
		return true
	}
	return false
}
