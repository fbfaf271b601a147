package glicko

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
	"github.com/themcaffee/OPPR-sub003/internal/domain/rating"
)

func TestUpdateRating(t *testing.T) {
	Convey("Given the Glicko system", t, func() {
		s := New()

		Convey("When a 1500/200 player plays three opponents", func() {
			res := s.UpdateRating(Rating{Value: 1500, Deviation: 200}, []rating.MatchResult[Rating]{
				{Opponent: Rating{Value: 1400, Deviation: 30}, Score: 1},
				{Opponent: Rating{Value: 1550, Deviation: 100}, Score: 0},
				{Opponent: Rating{Value: 1700, Deviation: 300}, Score: 0},
			})

			Convey("Then the rating matches the reference computation", func() {
				So(res.NewRating.Value, ShouldAlmostEqual, 1464.1064627569112, 1e-6)
				So(res.NewRating.Deviation, ShouldAlmostEqual, 151.39890244796933, 1e-6)
			})
		})

		Convey("When two newcomers meet", func() {
			a := s.CreateNewRating()
			b := s.CreateNewRating()
			win := s.UpdateRating(a, []rating.MatchResult[Rating]{{Opponent: b, Score: 1}})
			loss := s.UpdateRating(b, []rating.MatchResult[Rating]{{Opponent: a, Score: 0}})

			Convey("Then the winner gains what the loser drops", func() {
				So(win.NewRating.Value, ShouldAlmostEqual, 1378.629057426049, 1e-6)
				So(win.NewRating.Deviation, ShouldAlmostEqual, 179.8808987643084, 1e-6)
				So(loss.NewRating.Value, ShouldAlmostEqual, 1300-(1378.629057426049-1300), 1e-6)
				So(loss.NewRating.Deviation, ShouldAlmostEqual, win.NewRating.Deviation, 1e-9)
			})
		})

		Convey("When there are no results", func() {
			r := Rating{Value: 1700, Deviation: 60}
			So(s.UpdateRating(r, nil).NewRating, ShouldResemble, r)
		})

		Convey("When the deviation would drop below the floor", func() {
			r := Rating{Value: 1500, Deviation: 10}
			var results []rating.MatchResult[Rating]
			for i := 0; i < 50; i++ {
				results = append(results, rating.MatchResult[Rating]{Opponent: Rating{Value: 1500, Deviation: 10}, Score: 0.5})
			}
			So(s.UpdateRating(r, results).NewRating.Deviation, ShouldEqual, 10.0)
		})
	})
}

func TestProvisional(t *testing.T) {
	Convey("Given the Glicko system", t, func() {
		s := New()

		So(s.IsProvisional(Rating{Value: 1500, Deviation: 50}, 4), ShouldBeTrue)
		So(s.IsProvisional(Rating{Value: 1500, Deviation: 150}, 20), ShouldBeTrue)
		So(s.IsProvisional(Rating{Value: 1500, Deviation: 100}, 5), ShouldBeFalse)
	})
}

func TestPlayerConversion(t *testing.T) {
	Convey("Given players with and without stored ratings", t, func() {
		s := New()

		Convey("Then a blank player is a newcomer", func() {
			So(s.FromPlayer(model.Player{ID: "new"}), ShouldResemble, Rating{Value: 1300, Deviation: 200})
		})

		Convey("Then a missing deviation takes the initial one", func() {
			So(s.FromPlayer(model.Player{Rating: 1650}), ShouldResemble, Rating{Value: 1650, Deviation: 200})
		})

		Convey("Then stored deviations are clamped", func() {
			So(s.FromPlayer(model.Player{Rating: 1650, RatingDeviation: 500}).Deviation, ShouldEqual, 200.0)
			So(s.FromPlayer(model.Player{Rating: 1650, RatingDeviation: 2}).Deviation, ShouldEqual, 10.0)
		})

		Convey("Then applying a rating keeps the other fields", func() {
			p := s.ApplyToPlayer(Rating{Value: 1720, Deviation: 80}, model.Player{ID: "p", Name: "Pat", EventCount: 7})
			So(p.ID, ShouldEqual, "p")
			So(p.Name, ShouldEqual, "Pat")
			So(p.EventCount, ShouldEqual, 7)
			So(p.Rating, ShouldEqual, 1720.0)
			So(p.RatingDeviation, ShouldEqual, 80.0)
		})
	})
}

func TestConfig(t *testing.T) {
	Convey("Given a custom configuration", t, func() {
		cfg := DefaultConfig()
		cfg.InitialRating = 1500
		cfg.ProvisionalEvents = 3
		s := New(WithConfig(cfg))

		So(s.CreateNewRating().Value, ShouldEqual, 1500.0)
		So(s.IsProvisional(Rating{Value: 1500, Deviation: 50}, 3), ShouldBeFalse)
		So(s.IsProvisional(Rating{Value: 1500, Deviation: 50}, 2), ShouldBeTrue)
	})
}

func TestStrategy(t *testing.T) {
	Convey("Given the erased strategy", t, func() {
		st := Strategy()
		So(st.ID(), ShouldEqual, ID)

		v, err := st.RatingValue(st.CreateNewRating())
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 1300.0)
	})
}
