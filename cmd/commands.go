package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/themcaffee/OPPR-sub003/internal/adapters/csvimport"
	"github.com/themcaffee/OPPR-sub003/internal/adapters/eventfile"
	"github.com/themcaffee/OPPR-sub003/internal/app"
	"github.com/themcaffee/OPPR-sub003/internal/domain/decay"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/internal/domain/valuation"
)

type valueOutput struct {
	EventID   string              `json:"event_id,omitempty"`
	Date      *time.Time          `json:"date,omitempty"`
	Valuation valuation.Valuation `json:"valuation"`
}

type scoreOutput struct {
	EventID string     `json:"event_id,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	app.Scorecard
}

type decayOutput struct {
	BatchID         string    `json:"batch_id"`
	EventDate       time.Time `json:"event_date"`
	ReferenceDate   time.Time `json:"reference_date"`
	PointsEarned    float64   `json:"points_earned"`
	AgeInDays       int       `json:"age_in_days"`
	AgeInYears      float64   `json:"age_in_years"`
	DecayMultiplier float64   `json:"decay_multiplier"`
	DecayedPoints   float64   `json:"decayed_points"`
	Active          bool      `json:"active"`
}

type systemsOutput struct {
	Default string   `json:"default"`
	Systems []string `json:"systems"`
}

func (c *cli) valueCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Compute the first-place value of an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ev, err := eventfile.Load(path)
			if err != nil {
				return err
			}
			v, err := c.engine.ValueEvent(cmd.Context(), ev.Input)
			if err != nil {
				return err
			}
			return writeJSON(cmd, valueOutput{EventID: ev.ID, Date: dateOrNil(ev.Date), Valuation: v})
		},
	}
	cmd.Flags().StringVar(&path, "event", "", "event descriptor (YAML)")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func (c *cli) scoreCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Value an event and distribute its points over the finishing order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ev, err := eventfile.Load(path)
			if err != nil {
				return err
			}
			card, err := c.engine.ScoreEvent(cmd.Context(), ev.Input)
			if err != nil {
				return err
			}
			return writeJSON(cmd, scoreOutput{EventID: ev.ID, Date: dateOrNil(ev.Date), Scorecard: card})
		},
	}
	cmd.Flags().StringVar(&path, "event", "", "event descriptor (YAML)")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func (c *cli) decayCmd() *cobra.Command {
	var (
		date   string
		ref    string
		points float64
	)
	cmd := &cobra.Command{
		Use:   "decay",
		Short: "Apply time decay to points earned on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eventDate, err := eventfile.ParseDate(date)
			if err != nil {
				return err
			}
			var referenceDate time.Time
			if ref != "" {
				if referenceDate, err = eventfile.ParseDate(ref); err != nil {
					return err
				}
			}

			award := []model.PlayerEvent{{EventID: "cli", PointsEarned: points, Date: eventDate}}
			out, report, err := c.engine.RecalculateDecay(cmd.Context(), award, referenceDate)
			if err != nil {
				return err
			}
			ev := out[0]
			return writeJSON(cmd, decayOutput{
				BatchID:         report.BatchID,
				EventDate:       ev.Date,
				ReferenceDate:   report.ReferenceDate,
				PointsEarned:    ev.PointsEarned,
				AgeInDays:       decay.DaysBetween(ev.Date, report.ReferenceDate),
				AgeInYears:      decay.EventAge(ev.Date, report.ReferenceDate),
				DecayMultiplier: ev.DecayMultiplier,
				DecayedPoints:   ev.DecayedPoints,
				Active:          ev.DecayMultiplier > 0,
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ref, "ref", "", "reference date (default today)")
	cmd.Flags().Float64Var(&points, "points", 0, "points earned at the event")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var (
		path   string
		rate   bool
		system string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a player CSV and optionally rate it as one event",
		Long: `Reads players from CSV with the columns name, id, ranking and rating
(optionally rating_deviation and event_count). Every problem is reported with
its line number. With --rate the rows are treated as a finishing order and
ratings are updated with the selected system.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, closeFn, err := openInput(cmd, path)
			if err != nil {
				return err
			}
			defer closeFn()

			players, err := csvimport.ParsePlayers(r)
			if err != nil {
				return err
			}
			if rate {
				if players, err = c.engine.UpdateRatings(cmd.Context(), system, players); err != nil {
					return err
				}
			}
			return writeJSON(cmd, players)
		},
	}
	cmd.Flags().StringVar(&path, "players", "", `player CSV file ("-" for stdin)`)
	cmd.Flags().BoolVar(&rate, "rate", false, "update ratings treating rows as a finishing order")
	cmd.Flags().StringVar(&system, "system", "", "rating system for --rate (default from config)")
	_ = cmd.MarkFlagRequired("players")
	return cmd
}

func (c *cli) systemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "List the registered rating systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd, systemsOutput{Default: c.cfg.RatingSystem, Systems: c.engine.Systems()})
		},
	}
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func dateOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
