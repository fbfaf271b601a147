// Package csvimport reads player records from CSV and validates them before
// they reach the engine.
//
// The expected header is
//
//	name,id,ranking,rating[,rating_deviation,event_count]
//
// Column order is taken from the header. An empty ranking means unranked.
// Any invalid row fails the whole import.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/internal/domain/ranking"
)

const (
	colName            = "name"
	colID              = "id"
	colRanking         = "ranking"
	colRating          = "rating"
	colRatingDeviation = "rating_deviation"
	colEventCount      = "event_count"
)

var requiredColumns = []string{colName, colID, colRanking, colRating}

// ParsePlayers reads every row of r. On failure it returns no players and an
// error joining one *model.ValidationError per problem found.
func ParsePlayers(r io.Reader) ([]model.Player, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.ValidationError{Line: 1, Message: "empty input: header row required"}
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := columns(header)
	if err != nil {
		return nil, err
	}

	var (
		players []model.Player
		errs    []error
		seen    = make(map[string]int)
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				errs = append(errs, &model.ValidationError{Line: perr.Line, Message: perr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)

		p, rowErrs := parseRow(record, cols, line)
		if p.ID != "" {
			if first, dup := seen[p.ID]; dup {
				rowErrs = append(rowErrs, &model.ValidationError{
					Line: line, Field: colID, Message: fmt.Sprintf("duplicate id %q (first seen on line %d)", p.ID, first),
				})
			} else {
				seen[p.ID] = line
			}
		}
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		players = append(players, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(players) == 0 {
		return nil, &model.ValidationError{Line: 2, Message: "empty input: no player rows"}
	}
	return players, nil
}

// columns maps header names to record indexes.
func columns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if h == "" {
			continue
		}
		if _, dup := cols[h]; dup {
			return nil, &model.ValidationError{Line: 1, Field: h, Message: "duplicate column"}
		}
		cols[h] = i
	}

	var errs []error
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			errs = append(errs, &model.ValidationError{Line: 1, Field: c, Message: "missing column"})
		}
	}
	return cols, errors.Join(errs...)
}

func parseRow(record []string, cols map[string]int, line int) (model.Player, []error) {
	var errs []error
	field := func(name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}
	fail := func(name, format string, args ...any) {
		errs = append(errs, &model.ValidationError{Line: line, Field: name, Message: fmt.Sprintf(format, args...)})
	}

	var p model.Player

	if v, _ := field(colName); v != "" {
		p.Name = v
	} else {
		fail(colName, "must not be empty")
	}
	if v, _ := field(colID); v != "" {
		p.ID = v
	} else {
		fail(colID, "must not be empty")
	}

	if v, _ := field(colRanking); v != "" {
		rank, err := strconv.Atoi(v)
		switch {
		case err != nil:
			fail(colRanking, "not an integer: %q", v)
		case rank < 1:
			fail(colRanking, "must be at least 1, got %d", rank)
		default:
			p.Ranking = &rank
		}
	}

	if v, _ := field(colRating); v != "" {
		if rating, ok := parseFloat(v); ok && rating >= 0 {
			p.Rating = rating
		} else {
			fail(colRating, "not a non-negative number: %q", v)
		}
	} else {
		fail(colRating, "must not be empty")
	}

	if v, ok := field(colRatingDeviation); ok && v != "" {
		if rd, ok := parseFloat(v); ok && rd >= 0 {
			p.RatingDeviation = rd
		} else {
			fail(colRatingDeviation, "not a non-negative number: %q", v)
		}
	}

	if v, ok := field(colEventCount); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.EventCount = n
			p.IsRated = ranking.IsRated(n)
		} else {
			fail(colEventCount, "not a non-negative integer: %q", v)
		}
	}

	return p, errs
}

// parseFloat rejects NaN and infinities.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
