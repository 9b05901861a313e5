package types_test

import (
	"testing"

	types "github.com/okian/bikeshare/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromMap(t *testing.T) {
	Convey("Given a tally of user types", t, func() {
		tally := map[string]int{"Subscriber": 7, "Customer": 2, "Dependent": 2}

		Convey("When building the frequency table", func() {
			counts := types.FromMap(tally)

			Convey("Then rows should be ordered by count desc then value asc", func() {
				So(counts, ShouldResemble, []types.Count{
					{Value: "Subscriber", Count: 7},
					{Value: "Customer", Count: 2},
					{Value: "Dependent", Count: 2},
				})
			})
		})

		Convey("When the tally is empty", func() {
			counts := types.FromMap(map[string]int{})

			Convey("Then the table should be empty but not nil", func() {
				So(counts, ShouldNotBeNil)
				So(len(counts), ShouldEqual, 0)
			})
		})
	})
}

func TestSortCounts(t *testing.T) {
	Convey("Given counts with equal frequencies", t, func() {
		counts := []types.Count{{Value: "b", Count: 1}, {Value: "a", Count: 1}, {Value: "c", Count: 3}}

		Convey("When sorting", func() {
			types.SortCounts(counts)

			Convey("Then ties should be broken by value", func() {
				So(counts[0].Value, ShouldEqual, "c")
				So(counts[1].Value, ShouldEqual, "a")
				So(counts[2].Value, ShouldEqual, "b")
			})
		})
	})
}
