package efficiency_test

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/themcaffee/OPPR-sub003/internal/domain/efficiency"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

var base = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func ev(id string, earned, fpv, decayMultiplier float64, daysAfterBase int) model.PlayerEvent {
	return model.PlayerEvent{
		EventID:         id,
		PointsEarned:    earned,
		FirstPlaceValue: fpv,
		DecayMultiplier: decayMultiplier,
		DecayedPoints:   earned * decayMultiplier,
		Date:            base.AddDate(0, 0, daysAfterBase),
	}
}

func TestEvent(t *testing.T) {
	Convey("Given a single event", t, func() {
		So(efficiency.Event(30, 50), ShouldEqual, 60.0)
		So(efficiency.Event(50, 50), ShouldEqual, 100.0)

		Convey("When the event had no value", func() {
			for _, p := range []float64{0, 12, -3} {
				v := efficiency.Event(p, 0)
				So(v, ShouldEqual, 0.0)
				So(math.IsNaN(v), ShouldBeFalse)
			}
		})
	})
}

func TestOverall(t *testing.T) {
	Convey("Given events including an expired one", t, func() {
		events := []model.PlayerEvent{
			ev("a", 30, 50, 1, 0),
			ev("b", 10, 50, 0.75, 10),
			ev("c", 100, 100, 0, 20),
		}

		Convey("Then expired events are ignored", func() {
			So(efficiency.Overall(events), ShouldAlmostEqual, 40.0, 1e-9)
		})

		Convey("Then decayed efficiency uses decayed points", func() {
			So(efficiency.Decayed(events), ShouldAlmostEqual, (30+7.5)/100*100, 1e-9)
		})
	})

	Convey("Given no active events", t, func() {
		So(efficiency.Overall(nil), ShouldEqual, 0.0)
		So(efficiency.Overall([]model.PlayerEvent{ev("x", 5, 10, 0, 0)}), ShouldEqual, 0.0)
		So(efficiency.Decayed(nil), ShouldEqual, 0.0)
	})

	Convey("Given active events with zero value", t, func() {
		So(efficiency.Overall([]model.PlayerEvent{ev("x", 0, 0, 1, 0)}), ShouldEqual, 0.0)
	})
}

func TestTopN(t *testing.T) {
	Convey("Given more events than the window", t, func() {
		events := []model.PlayerEvent{
			ev("a", 40, 50, 1, 0),
			ev("b", 5, 50, 1, 1),
			ev("c", 30, 40, 0.5, 2),
			ev("d", 90, 100, 0, 3),
		}

		Convey("Then only the best events by raw points count", func() {
			So(efficiency.TopN(events, 2), ShouldAlmostEqual, 70.0/90*100, 1e-9)
		})

		Convey("Then a non-positive window uses the default", func() {
			So(efficiency.TopN(events, 0), ShouldAlmostEqual, efficiency.Overall(events), 1e-9)
		})
	})
}

func TestAnalyzeTrend(t *testing.T) {
	Convey("Given a history of events", t, func() {
		Convey("When recent results are much better", func() {
			events := []model.PlayerEvent{
				ev("old1", 10, 100, 1, 0),
				ev("old2", 10, 100, 1, 1),
				ev("new1", 90, 100, 1, 30),
				ev("new2", 90, 100, 1, 31),
			}
			tr := efficiency.AnalyzeTrend(events, 2)

			So(tr.Overall, ShouldAlmostEqual, 50.0, 1e-9)
			So(tr.Recent, ShouldAlmostEqual, 90.0, 1e-9)
			So(tr.Difference, ShouldAlmostEqual, 40.0, 1e-9)
			So(tr.Direction, ShouldEqual, efficiency.Improving)
		})

		Convey("When recent results are much worse", func() {
			events := []model.PlayerEvent{
				ev("old", 90, 100, 1, 0),
				ev("new", 10, 100, 1, 30),
			}
			So(efficiency.AnalyzeTrend(events, 1).Direction, ShouldEqual, efficiency.Declining)
		})

		Convey("When the difference stays inside the deadband", func() {
			events := []model.PlayerEvent{
				ev("old", 50, 100, 1, 0),
				ev("new", 60, 100, 1, 30),
			}
			tr := efficiency.AnalyzeTrend(events, 1)
			So(tr.Difference, ShouldAlmostEqual, 5.0, 1e-9)
			So(tr.Direction, ShouldEqual, efficiency.Stable)
		})

		Convey("When there are no events", func() {
			tr := efficiency.AnalyzeTrend(nil, 10)
			So(tr.Direction, ShouldEqual, efficiency.Stable)
			So(tr.Overall, ShouldEqual, 0.0)
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given active and expired events", t, func() {
		events := []model.PlayerEvent{
			ev("a", 30, 50, 1, 0),    // 60%
			ev("b", 10, 50, 1, 1),    // 20%
			ev("c", 40, 50, 0.75, 2), // 80%
			ev("d", 25, 50, 0.5, 3),  // 50%
			ev("e", 50, 50, 0, 4),    // expired
		}
		s := efficiency.GetStats(events)

		So(s.Overall, ShouldAlmostEqual, 105.0/200*100, 1e-9)
		So(s.Top15, ShouldAlmostEqual, s.Overall, 1e-9)
		So(s.Best, ShouldAlmostEqual, 80.0, 1e-9)
		So(s.Worst, ShouldAlmostEqual, 20.0, 1e-9)
		So(s.Average, ShouldAlmostEqual, 52.5, 1e-9)
		So(s.Median, ShouldAlmostEqual, 55.0, 1e-9)
	})

	Convey("Given an odd number of active events", t, func() {
		s := efficiency.GetStats([]model.PlayerEvent{
			ev("a", 10, 100, 1, 0),
			ev("b", 30, 100, 1, 1),
			ev("c", 20, 100, 1, 2),
		})
		So(s.Median, ShouldAlmostEqual, 20.0, 1e-9)
	})

	Convey("Given no active events", t, func() {
		So(efficiency.GetStats(nil), ShouldResemble, efficiency.Stats{})
		So(efficiency.GetStats([]model.PlayerEvent{ev("a", 1, 2, 0, 0)}), ShouldResemble, efficiency.Stats{})
	})
}
