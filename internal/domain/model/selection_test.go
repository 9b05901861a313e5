package model_test

import (
	"errors"
	"testing"
	"time"

	model "github.com/okian/bikeshare/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseCity(t *testing.T) {
	convey.Convey("Given city menu answers", t, func() {
		convey.Convey("When the answer differs only in case and spacing", func() {
			c, err := model.ParseCity("  New   York City ")

			convey.Convey("Then it should match the known city", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(c, convey.ShouldEqual, model.CityNewYorkCity)
				convey.So(c.Title(), convey.ShouldEqual, "New York City")
			})
		})

		convey.Convey("When the answer is not a known city", func() {
			_, err := model.ParseCity("boston")

			convey.Convey("Then it should return ErrUnknownCity", func() {
				convey.So(errors.Is(err, model.ErrUnknownCity), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When listing cities", func() {
			convey.So(model.Cities(), convey.ShouldResemble, []model.City{
				model.CityChicago, model.CityNewYorkCity, model.CityWashington,
			})
		})
	})
}

func TestParseMonth(t *testing.T) {
	convey.Convey("Given month menu answers", t, func() {
		convey.Convey("When the answer is all", func() {
			m, err := model.ParseMonth("ALL")
			convey.So(err, convey.ShouldBeNil)
			convey.So(m.IsAll(), convey.ShouldBeTrue)
			convey.So(m.Matches(time.December), convey.ShouldBeTrue)
			convey.So(m.String(), convey.ShouldEqual, "all")
		})

		convey.Convey("When the answer is a covered month", func() {
			m, err := model.ParseMonth("March")
			convey.So(err, convey.ShouldBeNil)
			convey.So(m.Matches(time.March), convey.ShouldBeTrue)
			convey.So(m.Matches(time.April), convey.ShouldBeFalse)
			convey.So(m.String(), convey.ShouldEqual, "march")
		})

		convey.Convey("When the answer is outside the first six months", func() {
			_, err := model.ParseMonth("july")
			convey.So(errors.Is(err, model.ErrUnknownMonth), convey.ShouldBeTrue)
		})

		convey.Convey("When listing months", func() {
			months := model.Months()
			convey.So(len(months), convey.ShouldEqual, 6)
			convey.So(months[0], convey.ShouldEqual, time.January)
			convey.So(months[5], convey.ShouldEqual, time.June)
		})
	})
}

func TestParseDay(t *testing.T) {
	convey.Convey("Given day menu answers", t, func() {
		convey.Convey("When the answer is a weekday in any case", func() {
			d, err := model.ParseDay("sUnDaY")
			convey.So(err, convey.ShouldBeNil)
			convey.So(d.IsAll(), convey.ShouldBeFalse)
			convey.So(d.Matches(time.Sunday), convey.ShouldBeTrue)
			convey.So(d.Matches(time.Monday), convey.ShouldBeFalse)
		})

		convey.Convey("When the answer is all", func() {
			d, err := model.ParseDay("all")
			convey.So(err, convey.ShouldBeNil)
			convey.So(d, convey.ShouldEqual, model.AllDays)
			convey.So(d.Matches(time.Saturday), convey.ShouldBeTrue)
		})

		convey.Convey("When the answer is an abbreviation", func() {
			_, err := model.ParseDay("mon")
			convey.So(errors.Is(err, model.ErrUnknownDay), convey.ShouldBeTrue)
		})
	})
}

func TestParseSelection(t *testing.T) {
	convey.Convey("Given three menu answers", t, func() {
		convey.Convey("When all are valid", func() {
			sel, err := model.ParseSelection("Chicago", "january", "Monday")
			convey.So(err, convey.ShouldBeNil)
			convey.So(sel.City, convey.ShouldEqual, model.CityChicago)
			convey.So(sel.String(), convey.ShouldEqual, "city=chicago month=january day=monday")
		})

		convey.Convey("When the month is invalid", func() {
			_, err := model.ParseSelection("chicago", "december", "all")
			convey.So(errors.Is(err, model.ErrUnknownMonth), convey.ShouldBeTrue)
		})
	})
}
