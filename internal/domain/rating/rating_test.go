package rating_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/internal/domain/rating"
	"github.com/themcaffee/OPPR-sub003/internal/domain/rating/glicko"
)

// wins is a toy system whose rating is the number of head-to-head wins.
type wins struct{ id string }

func (w wins) ID() string           { return w.id }
func (w wins) CreateNewRating() int { return 0 }
func (w wins) UpdateRating(current int, results []rating.MatchResult[int]) rating.UpdateResult[int] {
	for _, r := range results {
		if r.Score == 1 {
			current++
		}
	}
	return rating.UpdateResult[int]{NewRating: current}
}
func (w wins) RatingValue(r int) float64                { return float64(r) }
func (w wins) IsProvisional(_ int, eventCount int) bool { return eventCount < 2 }
func (w wins) FromPlayer(p model.Player) int            { return int(p.Rating) }
func (w wins) ApplyToPlayer(r int, p model.Player) model.Player {
	p.Rating = float64(r)
	return p
}

func TestRegistry(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		reg, err := rating.NewRegistry()
		So(err, ShouldBeNil)

		Convey("When looking up an id", func() {
			_, err := reg.Get("glicko")

			Convey("Then the error says nothing is available", func() {
				So(errors.Is(err, rating.ErrUnknownSystem), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "available: none")
			})
		})

		Convey("When strategies are registered", func() {
			So(reg.Register(rating.Erase[int](wins{id: "wins"})), ShouldBeNil)
			So(reg.Register(glicko.Strategy()), ShouldBeNil)

			Convey("Then they can be found", func() {
				So(reg.Has("wins"), ShouldBeTrue)
				So(reg.Has("elo"), ShouldBeFalse)
				s, err := reg.Get(glicko.ID)
				So(err, ShouldBeNil)
				So(s.ID(), ShouldEqual, glicko.ID)
				So(reg.IDs(), ShouldResemble, []string{"glicko", "wins"})
			})

			Convey("Then registering the same id again fails", func() {
				err := reg.Register(glicko.Strategy())
				So(errors.Is(err, rating.ErrDuplicateSystem), ShouldBeTrue)
			})

			Convey("Then an unknown id lists the available ids in order", func() {
				_, err := reg.Get("elo")
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, `"elo"`)
				So(err.Error(), ShouldContainSubstring, "available: glicko, wins")
			})

			Convey("Then unregister reports presence", func() {
				So(reg.Unregister("wins"), ShouldBeTrue)
				So(reg.Unregister("wins"), ShouldBeFalse)
				So(reg.IDs(), ShouldResemble, []string{"glicko"})
			})

			Convey("Then clear empties the registry", func() {
				reg.Clear()
				So(reg.IDs(), ShouldResemble, []string{})
			})
		})

		Convey("When registering nil", func() {
			So(reg.Register(nil), ShouldNotBeNil)
		})
	})

	Convey("Given a registry built with duplicate strategies", t, func() {
		_, err := rating.NewRegistry(glicko.Strategy(), glicko.Strategy())
		So(errors.Is(err, rating.ErrDuplicateSystem), ShouldBeTrue)
	})

	Convey("Given concurrent readers", t, func() {
		reg, err := rating.NewRegistry(glicko.Strategy())
		So(err, ShouldBeNil)

		var wg sync.WaitGroup
		var failures int32
		var mu sync.Mutex
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := reg.Get(glicko.ID); err != nil {
					mu.Lock()
					failures++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		So(failures, ShouldEqual, 0)
	})
}

func TestErase(t *testing.T) {
	Convey("Given an erased system", t, func() {
		s := rating.Erase[int](wins{id: "wins"})

		Convey("When used with its own rating type", func() {
			res, err := s.UpdateRating(s.CreateNewRating(), []rating.MatchResult[any]{
				{Opponent: 3, Score: 1},
				{Opponent: 5, Score: 0},
				{Opponent: 1, Score: 1},
			})
			So(err, ShouldBeNil)
			v, err := s.RatingValue(res.NewRating)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 2.0)

			prov, err := s.IsProvisional(res.NewRating, 1)
			So(err, ShouldBeNil)
			So(prov, ShouldBeTrue)
		})

		Convey("When handed a rating from another system", func() {
			_, err := s.RatingValue(glicko.Rating{Value: 1500})
			So(errors.Is(err, rating.ErrRatingType), ShouldBeTrue)

			_, err = s.UpdateRating(0, []rating.MatchResult[any]{{Opponent: "x", Score: 1}})
			So(errors.Is(err, rating.ErrRatingType), ShouldBeTrue)

			_, err = s.ApplyToPlayer(1.5, model.Player{})
			So(errors.Is(err, rating.ErrRatingType), ShouldBeTrue)
		})
	})
}

func TestMatchResults(t *testing.T) {
	Convey("Given a finishing order", t, func() {
		order := []string{"a", "b", "c", "d", "e"}

		Convey("When the range covers the field", func() {
			res := rating.MatchResults(order, 2, 32)
			So(len(res), ShouldEqual, 4)
			So(res[0], ShouldResemble, rating.MatchResult[string]{Opponent: "a", Score: 0})
			So(res[1], ShouldResemble, rating.MatchResult[string]{Opponent: "b", Score: 0})
			So(res[2], ShouldResemble, rating.MatchResult[string]{Opponent: "d", Score: 1})
			So(res[3], ShouldResemble, rating.MatchResult[string]{Opponent: "e", Score: 1})
		})

		Convey("When the range is narrow", func() {
			res := rating.MatchResults(order, 0, 1)
			So(len(res), ShouldEqual, 1)
			So(res[0].Opponent, ShouldEqual, "b")
			So(res[0].Score, ShouldEqual, 1.0)
		})

		Convey("When the index is out of bounds", func() {
			So(rating.MatchResults(order, 9, 2), ShouldBeNil)
		})
	})
}

func TestRateEvent(t *testing.T) {
	Convey("Given four players in finishing order", t, func() {
		players := []model.Player{
			{ID: "p1", Rating: 1300, RatingDeviation: 200, EventCount: 4},
			{ID: "p2", Rating: 1300, RatingDeviation: 200, EventCount: 0},
			{ID: "p3", Rating: 1300, RatingDeviation: 200, EventCount: 9, IsRated: true},
			{ID: "p4", EventCount: 1},
		}

		updated, err := rating.RateEvent(glicko.Strategy(), players, 32)

		Convey("Then ratings follow the finishing order", func() {
			So(err, ShouldBeNil)
			So(len(updated), ShouldEqual, 4)
			So(updated[0].Rating, ShouldBeGreaterThan, updated[1].Rating)
			So(updated[1].Rating, ShouldBeGreaterThan, updated[2].Rating)
			So(updated[2].Rating, ShouldBeGreaterThan, updated[3].Rating)
		})

		Convey("Then deviations narrow", func() {
			for _, p := range updated {
				So(p.RatingDeviation, ShouldBeLessThan, 200.0)
			}
		})

		Convey("Then event counts and rated flags advance", func() {
			So(updated[0].EventCount, ShouldEqual, 5)
			So(updated[0].IsRated, ShouldBeTrue)
			So(updated[1].IsRated, ShouldBeFalse)
			So(updated[3].EventCount, ShouldEqual, 2)
		})

		Convey("Then the inputs are untouched", func() {
			So(players[0].Rating, ShouldEqual, 1300.0)
			So(players[0].EventCount, ShouldEqual, 4)
		})
	})

	Convey("Given a system that rejects its inputs", t, func() {
		_, err := rating.RateEvent(badStrategy{rating.Erase[int](wins{id: "wins"})}, []model.Player{{ID: "x"}, {ID: "y"}}, 2)
		So(err, ShouldNotBeNil)
		So(strings.Contains(err.Error(), `"x"`), ShouldBeTrue)
	})
}

// badStrategy hands out ratings of the wrong type.
type badStrategy struct{ rating.Strategy }

func (b badStrategy) FromPlayer(model.Player) any { return "not-a-rating" }
