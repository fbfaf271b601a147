package model

// Player is a competitor as known to the engine. Only rating strategies
// produce modified copies of a Player.
type Player struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Rating          float64 `json:"rating"`
	RatingDeviation float64 `json:"rating_deviation"`
	Ranking         *int    `json:"ranking,omitempty"` // nil means unranked; lower is better
	IsRated         bool    `json:"is_rated"`
	EventCount      int     `json:"event_count"`
}

// HasRanking reports whether the player holds a positive world ranking.
func (p Player) HasRanking() bool {
	return p.Ranking != nil && *p.Ranking > 0
}
