package model_test

import (
	"testing"
	"time"

	model "github.com/okian/bikeshare/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func newTrip(id string, start time.Time) model.Trip {
	t := model.Trip{
		ID:           id,
		StartTime:    start,
		EndTime:      start.Add(10 * time.Minute),
		Duration:     600,
		StartStation: "Clark St & Elm St",
		EndStation:   "Streeter Dr & Grand Ave",
		UserType:     "Subscriber",
	}
	t.Derive()
	return t
}

func TestTripDerive(t *testing.T) {
	convey.Convey("Given a trip starting on Monday 2 January 2017 at 08:15", t, func() {
		trip := newTrip("1", time.Date(2017, time.January, 2, 8, 15, 0, 0, time.UTC))

		convey.Convey("Then the calendar fields should be derived", func() {
			convey.So(trip.Month, convey.ShouldEqual, time.January)
			convey.So(trip.Weekday, convey.ShouldEqual, time.Monday)
			convey.So(trip.Hour, convey.ShouldEqual, 8)
		})

		convey.Convey("Then cells should render like the source file", func() {
			convey.So(trip.Value(model.ColumnStartTime), convey.ShouldEqual, "2017-01-02 08:15:00")
			convey.So(trip.Value(model.ColumnTripDuration), convey.ShouldEqual, "600")
			convey.So(trip.Value(model.ColumnDayOfWeek), convey.ShouldEqual, "Monday")
			convey.So(trip.Value(model.ColumnMonth), convey.ShouldEqual, "1")
			convey.So(trip.Value(model.ColumnBirthYear), convey.ShouldEqual, "")
			convey.So(trip.Value("Unknown"), convey.ShouldEqual, "")
		})
	})
}

func TestSchema(t *testing.T) {
	convey.Convey("Given a schema without demographic columns", t, func() {
		schema := model.Schema{Columns: []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}}

		convey.Convey("Then the capability checks should be false", func() {
			convey.So(schema.HasGender(), convey.ShouldBeFalse)
			convey.So(schema.HasBirthYear(), convey.ShouldBeFalse)
		})

		convey.Convey("Then display columns should end with the derived ones", func() {
			cols := schema.DisplayColumns()
			convey.So(len(cols), convey.ShouldEqual, len(schema.Columns)+3)
			convey.So(cols[len(cols)-3:], convey.ShouldResemble, []string{"month", "day_of_week", "hour"})
		})
	})

	convey.Convey("Given a schema with demographic columns", t, func() {
		schema := model.Schema{Columns: []string{"Start Time", "Gender", "Birth Year"}}
		convey.So(schema.HasGender(), convey.ShouldBeTrue)
		convey.So(schema.HasBirthYear(), convey.ShouldBeTrue)
	})
}

func TestTable(t *testing.T) {
	convey.Convey("Given a table of three trips", t, func() {
		base := time.Date(2017, time.March, 1, 9, 0, 0, 0, time.UTC)
		rows := []model.Trip{
			newTrip("a", base),
			newTrip("b", base.Add(time.Hour)),
			newTrip("c", base.Add(2*time.Hour)),
		}
		table := model.NewTable(model.CityChicago, model.Schema{}, rows)

		convey.Convey("When selecting a subset", func() {
			sub := table.Select([]int{2, 0})

			convey.Convey("Then the new table should hold the chosen rows in order", func() {
				convey.So(sub.Len(), convey.ShouldEqual, 2)
				convey.So(sub.Row(0).ID, convey.ShouldEqual, "c")
				convey.So(sub.Row(1).ID, convey.ShouldEqual, "a")
				convey.So(sub.City(), convey.ShouldEqual, model.CityChicago)
			})

			convey.Convey("And the original should be untouched", func() {
				convey.So(table.Len(), convey.ShouldEqual, 3)
				convey.So(table.Row(0).ID, convey.ShouldEqual, "a")
			})
		})

		convey.Convey("When slicing past the end", func() {
			page := table.Slice(2, 7)
			convey.So(len(page), convey.ShouldEqual, 1)
			convey.So(page[0].ID, convey.ShouldEqual, "c")
			convey.So(table.Slice(5, 10), convey.ShouldBeNil)
		})

		convey.Convey("When mutating a returned row", func() {
			row := table.Row(1)
			row.StartStation = "changed"
			convey.So(table.Row(1).StartStation, convey.ShouldNotEqual, "changed")
		})
	})

	convey.Convey("Given a nil table", t, func() {
		var table *model.Table
		convey.So(table.Len(), convey.ShouldEqual, 0)
	})
}
