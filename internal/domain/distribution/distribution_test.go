package distribution_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/themcaffee/OPPR-sub003/internal/domain/distribution"
	"github.com/themcaffee/OPPR-sub003/internal/domain/model"
)

// field builds n results where the first rated finishers are rated.
func field(n, rated int) []model.PlayerResult {
	results := make([]model.PlayerResult, n)
	for i := range results {
		results[i] = model.PlayerResult{
			PlayerID: fmt.Sprintf("player-%02d", i+1),
			Position: i + 1,
			IsRated:  i < rated,
		}
	}
	return results
}

func TestCalculatePlayerPoints(t *testing.T) {
	Convey("Given a 20 player event worth 50 with 12 rated players", t, func() {
		const fpv = 50.0

		Convey("When looking at the dynamic window", func() {
			So(distribution.DynamicWindow(12), ShouldEqual, 6.0)
			So(distribution.DynamicWindow(400), ShouldEqual, 64.0)
			So(distribution.DynamicWindow(0), ShouldEqual, 0.0)
		})

		Convey("When first place is computed", func() {
			p := distribution.CalculatePlayerPoints(1, 20, 12, fpv)

			Convey("Then it earns the whole first-place value", func() {
				So(p.Linear, ShouldAlmostEqual, 5.0, 1e-9)
				So(p.Dynamic, ShouldAlmostEqual, 45.0, 1e-9)
				So(p.Total, ShouldAlmostEqual, 50.0, 1e-9)
			})
		})

		Convey("When second place is computed", func() {
			p := distribution.CalculatePlayerPoints(2, 20, 12, fpv)
			So(p.Linear, ShouldAlmostEqual, 4.75, 1e-9)
			So(p.Dynamic, ShouldAlmostEqual, 16.428314854122423, 1e-9)
		})

		Convey("When the last position inside the window is computed", func() {
			p := distribution.CalculatePlayerPoints(6, 20, 12, fpv)
			So(p.Dynamic, ShouldAlmostEqual, 0.07740419519501486, 1e-9)
		})

		Convey("When positions 7 to 20 are computed", func() {
			for pos := 7; pos <= 20; pos++ {
				p := distribution.CalculatePlayerPoints(pos, 20, 12, fpv)
				So(p.Dynamic, ShouldEqual, 0.0)
				So(p.Linear, ShouldBeGreaterThan, 0.0)
			}
		})

		Convey("When last place is computed it still earns a linear share", func() {
			p := distribution.CalculatePlayerPoints(20, 20, 12, fpv)
			So(p.Linear, ShouldAlmostEqual, 0.25, 1e-9)
		})
	})

	Convey("Given degenerate inputs", t, func() {
		So(distribution.LinearPoints(1, 0, 50), ShouldEqual, 0.0)
		So(distribution.LinearPoints(0, 10, 50), ShouldEqual, 0.0)
		So(distribution.LinearPoints(11, 10, 50), ShouldEqual, 0.0)
		So(distribution.DynamicPoints(1, 0, 50), ShouldEqual, 0.0)
		So(distribution.DynamicPoints(0, 10, 50), ShouldEqual, 0.0)

		Convey("When a single rated player gives a half-slot window", func() {
			So(distribution.DynamicPoints(1, 1, 10), ShouldAlmostEqual, 9.0, 1e-9)
			So(distribution.DynamicPoints(2, 1, 10), ShouldEqual, 0.0)
		})
	})
}

func TestDistribute(t *testing.T) {
	Convey("Given a 20 player event worth 50 with 12 rated players", t, func() {
		dists, err := distribution.Distribute(field(20, 12), 50)

		Convey("Then every position is awarded", func() {
			So(err, ShouldBeNil)
			So(len(dists), ShouldEqual, 20)
			So(dists[0].PlayerID, ShouldEqual, "player-01")
			So(dists[0].TotalPoints, ShouldAlmostEqual, 50.0, 1e-9)
		})

		Convey("Then first place has the largest total", func() {
			for _, d := range dists[1:] {
				So(d.TotalPoints, ShouldBeLessThan, dists[0].TotalPoints)
			}
		})

		Convey("Then linear points strictly decrease with position", func() {
			for i := 1; i < len(dists); i++ {
				So(dists[i].LinearPoints, ShouldBeLessThan, dists[i-1].LinearPoints)
			}
		})

		Convey("Then totals are linear plus dynamic", func() {
			for _, d := range dists {
				So(d.TotalPoints, ShouldAlmostEqual, d.LinearPoints+d.DynamicPoints, 1e-12)
			}
		})

		Convey("Then positions 7 to 20 get no dynamic points", func() {
			for _, d := range dists[6:] {
				So(d.DynamicPoints, ShouldEqual, 0.0)
			}
		})
	})

	Convey("Given results out of order with opted-out players", t, func() {
		results := []model.PlayerResult{
			{PlayerID: "c", Position: 3, IsRated: true},
			{PlayerID: "a", Position: 1, IsRated: true},
			{PlayerID: "x", Position: 2, IsRated: true, OptedOut: true},
			{PlayerID: "d", Position: 4, IsRated: false},
		}
		dists, err := distribution.Distribute(results, 30)

		Convey("Then opted-out players are removed before counting", func() {
			So(err, ShouldBeNil)
			So(len(dists), ShouldEqual, 3)
			So(dists[0].PlayerID, ShouldEqual, "a")
			So(dists[1].PlayerID, ShouldEqual, "c")
			So(dists[1].Position, ShouldEqual, 2)
			So(dists[2].PlayerID, ShouldEqual, "d")
			So(dists[2].Position, ShouldEqual, 3)
		})

		Convey("Then counts reflect only active players", func() {
			// 3 active players and 2 rated players: window of one slot.
			So(dists[0].LinearPoints, ShouldAlmostEqual, 3.0, 1e-9)
			So(dists[0].DynamicPoints, ShouldAlmostEqual, 27.0, 1e-9)
			So(dists[1].DynamicPoints, ShouldEqual, 0.0)
			So(dists[2].LinearPoints, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then the total handed out is reported", func() {
			So(distribution.Total(dists), ShouldAlmostEqual, 30+2+1, 1e-9)
		})
	})

	Convey("Given no active results", t, func() {
		_, err := distribution.Distribute([]model.PlayerResult{{PlayerID: "a", Position: 1, OptedOut: true}}, 10)
		So(errors.Is(err, distribution.ErrNoActiveResults), ShouldBeTrue)

		_, err = distribution.Distribute(nil, 10)
		So(errors.Is(err, distribution.ErrNoActiveResults), ShouldBeTrue)
	})
}
