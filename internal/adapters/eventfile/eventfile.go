// Package eventfile loads event descriptors from YAML files.
//
// A descriptor lists the field in finishing order together with the event
// format:
//
//	id: spring-open
//	date: 2025-04-12
//	duration_days: 1
//	booster: ""            # empty derives the tier from the field
//	tgp:
//	  qualifying: {type: limited, meaningful_games: 7, four_player_groups: true}
//	  finals: {format_type: match-play, meaningful_games: 12, finalist_count: 16}
//	  ball_count_adjustment: 1.0
//	players:
//	  - {id: p1, name: Alice, position: 1, rating: 1620, event_count: 12, ranking: 3}
package eventfile

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/themcaffee/OPPR-sub003/internal/domain/booster"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/internal/domain/ranking"
	"github.com/themcaffee/OPPR-sub003/internal/domain/valuation"
)

// Entry is one participant of the event.
type Entry struct {
	ID              string  `koanf:"id"`
	Name            string  `koanf:"name"`
	Position        int     `koanf:"position"`
	OptedOut        bool    `koanf:"opted_out"`
	Rating          float64 `koanf:"rating"`
	RatingDeviation float64 `koanf:"rating_deviation"`
	// Ranking 0 means unranked.
	Ranking    int `koanf:"ranking"`
	EventCount int `koanf:"event_count"`
	// Rated overrides the rated flag derived from EventCount.
	Rated *bool `koanf:"rated"`
}

// Descriptor is the decoded file.
type Descriptor struct {
	ID           string          `koanf:"id"`
	Date         string          `koanf:"date"`
	DurationDays int             `koanf:"duration_days"`
	Booster      string          `koanf:"booster"`
	TGP          model.TGPConfig `koanf:"tgp"`
	Players      []Entry         `koanf:"players"`
}

// Event is a descriptor converted to domain types.
type Event struct {
	ID    string
	Date  time.Time
	Input valuation.EventInput
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02 15:04:05"}

// Load reads and converts the descriptor at path.
func Load(path string) (Event, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Event{}, fmt.Errorf("load event %s: %w", path, err)
	}
	var d Descriptor
	if err := k.UnmarshalWithConf("", &d, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Event{}, fmt.Errorf("decode event %s: %w", path, err)
	}
	return d.Event()
}

// Event converts the descriptor. Players are returned in finishing order.
func (d Descriptor) Event() (Event, error) {
	ev := Event{ID: d.ID}

	if s := strings.TrimSpace(d.Date); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return Event{}, err
		}
		ev.Date = t
	}

	var tier model.EventBooster
	if s := strings.TrimSpace(d.Booster); s != "" {
		parsed, err := booster.Parse(s)
		if err != nil {
			return Event{}, err
		}
		tier = parsed
	}

	entries := slices.Clone(d.Players)
	slices.SortStableFunc(entries, func(a, b Entry) int { return a.Position - b.Position })

	in := valuation.EventInput{
		TGP:          d.TGP,
		Booster:      tier,
		DurationDays: d.DurationDays,
		Players:      make([]model.Player, 0, len(entries)),
		Results:      make([]model.PlayerResult, 0, len(entries)),
	}
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			return Event{}, &model.ValidationError{Field: fmt.Sprintf("players[%d].id", i), Message: "must not be empty"}
		}
		if seen[e.ID] {
			return Event{}, &model.ValidationError{Field: fmt.Sprintf("players[%d].id", i), Message: fmt.Sprintf("duplicate player %q", e.ID)}
		}
		seen[e.ID] = true
		p := e.Player()
		in.Players = append(in.Players, p)
		in.Results = append(in.Results, model.PlayerResult{
			PlayerID: p.ID,
			Position: e.Position,
			OptedOut: e.OptedOut,
			IsRated:  p.IsRated,
		})
	}
	ev.Input = in
	return ev, nil
}

// Player converts the entry.
func (e Entry) Player() model.Player {
	p := model.Player{
		ID:              e.ID,
		Name:            e.Name,
		Rating:          e.Rating,
		RatingDeviation: e.RatingDeviation,
		EventCount:      e.EventCount,
		IsRated:         ranking.IsRated(e.EventCount),
	}
	if e.Rated != nil {
		p.IsRated = *e.Rated
	}
	if e.Ranking > 0 {
		r := e.Ranking
		p.Ranking = &r
	}
	return p
}

// ParseDate accepts YYYY-MM-DD, RFC 3339 or "YYYY-MM-DD hh:mm:ss".
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, model.NewValidationError("date", "unrecognised date %q (want YYYY-MM-DD or RFC 3339)", s)
}
