package valuation

import (
	"cmp"
	"math"
	"slices"

	"github.com/themcaffee/OPPR-sub003/internal/domain/constants"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// TVABreakdown holds the two adjustment components and their sum.
type TVABreakdown struct {
	Rating  float64 `json:"rating"`
	Ranking float64 `json:"ranking"`
	Total   float64 `json:"total"`
}

// BaseValue is half a point per rated player, capped once the event reaches
// the maximum player count.
func BaseValue(ratedPlayerCount int) float64 {
	if ratedPlayerCount <= 0 {
		return 0
	}
	return math.Min(constants.MaxBaseValue, float64(ratedPlayerCount)*constants.PointsPerPlayer)
}

// ratingContribution is one player's share of the rating adjustment. Ratings
// below the minimum effective rating contribute nothing.
func ratingContribution(rating float64) float64 {
	if rating < constants.RatingTVAMinEffectiveRating {
		return 0
	}
	return math.Max(0, rating*constants.RatingTVACoefficient-constants.RatingTVAOffset)
}

// RatingTVA sums the contributions of the strongest considered ratings,
// bounded to [0, RatingTVAMax].
func RatingTVA(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sorted := slices.Clone(ratings)
	slices.SortFunc(sorted, func(a, b float64) int { return cmp.Compare(b, a) })
	if len(sorted) > constants.RatingTVAMaxPlayersConsidered {
		sorted = sorted[:constants.RatingTVAMaxPlayersConsidered]
	}
	sum := 0.0
	for _, r := range sorted {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		sum += ratingContribution(r)
	}
	return clamp(0, sum, constants.RatingTVAMax)
}

// rankingContribution is one player's share of the ranking adjustment; it
// falls off logarithmically with the ranking number.
func rankingContribution(ranking int) float64 {
	return math.Max(0, constants.RankingTVAOffset-constants.RankingTVACoefficient*math.Log(float64(ranking)))
}

// RankingTVA sums the contributions of the best considered rankings,
// bounded to [0, RankingTVAMax]. Non-positive rankings are ignored.
func RankingTVA(rankings []int) float64 {
	valid := make([]int, 0, len(rankings))
	for _, r := range rankings {
		if r > 0 {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return 0
	}
	slices.Sort(valid)
	if len(valid) > constants.RankingTVAMaxPlayersConsidered {
		valid = valid[:constants.RankingTVAMaxPlayersConsidered]
	}
	sum := 0.0
	for _, r := range valid {
		sum += rankingContribution(r)
	}
	return clamp(0, sum, constants.RankingTVAMax)
}

// TVA computes both adjustment components for a field of players. An event
// without rated players earns no adjustment.
func TVA(players []model.Player) TVABreakdown {
	ratings := make([]float64, 0, len(players))
	rankings := make([]int, 0, len(players))
	for _, p := range players {
		if p.IsRated {
			ratings = append(ratings, p.Rating)
		}
		if p.HasRanking() {
			rankings = append(rankings, *p.Ranking)
		}
	}
	if len(ratings) == 0 {
		return TVABreakdown{}
	}
	b := TVABreakdown{
		Rating:  RatingTVA(ratings),
		Ranking: RankingTVA(rankings),
	}
	b.Total = b.Rating + b.Ranking
	return b
}

// clamp bounds v to [low, high].
func clamp(low, v, high float64) float64 {
	if v < low {
		return low
	} else if v > high {
		return high
	}
	return v
}
