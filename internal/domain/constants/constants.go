// Package constants holds the canonical numeric coefficients of the ranking
// standard, grouped by the concern that consumes them.
package constants

import "math"

// Base value.
const (
	PointsPerPlayer      = 0.5
	MaxBaseValue         = 32.0
	MaxPlayerCount       = 64
	RatedPlayerThreshold = 5 // events needed before a player counts as rated
)

// Tournament value adjustment, rating component.
const (
	RatingTVAMax                  = 25.0
	RatingTVACoefficient          = 0.000546875
	RatingTVAOffset               = 0.703125
	RatingTVAPerfectRating        = 2000.0
	RatingTVAMinEffectiveRating   = 1285.71
	RatingTVAMaxPlayersConsidered = 64
)

// Tournament value adjustment, ranking component.
const (
	RankingTVAMax                  = 50.0
	RankingTVACoefficient          = 0.211675054
	RankingTVAOffset               = 1.459827968
	RankingTVAMaxPlayersConsidered = 64
)

// Tournament grading percentage. Values are fractions: 1.0 is 100%.
const (
	BaseGameValue           = 0.04
	MaxTGPWithoutFinals     = 1.0
	MaxTGPWithFinals        = 2.0
	FourPlayerGroupFactor   = 2.0
	ThreePlayerGroupFactor  = 1.5
	UnlimitedPercentPerHour = 0.01
	UnlimitedMaxHourBonus   = 0.20
	UnlimitedFullBonusHours = 20.0
)

// Ball count adjustments accepted on a TGP config.
const (
	BallCountOneThird  = 0.33
	BallCountTwoThirds = 0.66
	BallCountFull      = 1.0
)

// Event booster multipliers and certification thresholds.
const (
	BoosterNoneMultiplier               = 1.0
	BoosterCertifiedMultiplier          = 1.25
	BoosterCertifiedPlusMultiplier      = 1.5
	BoosterChampionshipSeriesMultiplier = 1.5
	BoosterMajorMultiplier              = 2.0

	CertifiedMinFinalists       = 24
	CertifiedMaxDurationDays    = 4
	CertifiedPlusMinRatedPlayer = 128
)

// Point distribution.
const (
	LinearPercentage   = 0.10
	DynamicPercentage  = 0.90
	PositionExponent   = 0.7
	ValueExponent      = 3.0
	MaxDynamicPlayers  = 64
	DynamicWindowRatio = 2.0 // rated players per dynamic slot
)

// Time decay bands, keyed by age in whole years.
const (
	DaysPerYear       = 365.0
	DecayYearOne      = 1.0
	DecayYearTwo      = 0.75
	DecayYearThree    = 0.5
	DecayExpired      = 0.0
	ActiveWindowYears = 3.0
)

// Ranking window and efficiency.
const (
	TopEventsCount            = 15
	TrendWindowSize           = 10
	TrendDeadbandPercentPoint = 5.0
)

// Rating bounds for the Glicko-style system.
const (
	DefaultRating          = 1300.0
	DefaultRatingDeviation = 200.0
	MinRatingDeviation     = 10.0
	MaxRatingDeviation     = 200.0
	ProvisionalDeviation   = 100.0
	OpponentsRange         = 32
)

// GlickoQ is the Glicko scaling constant ln(10)/400.
var GlickoQ = math.Ln10 / 400

// Validation thresholds.
const (
	MinPlayers   = 3
	MinFinalists = 2
)
