package config_test

import (
	"errors"
	"testing"

	repository "github.com/okian/bikeshare/internal/adapters/repository"
	"github.com/okian/bikeshare/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DataDir, convey.ShouldEqual, ".")
			convey.So(cfg.PageSize, convey.ShouldEqual, 5)
			convey.So(cfg.MalformedPolicy, convey.ShouldEqual, repository.PolicyAbort)
			convey.So(cfg.MetricsAddr, convey.ShouldBeEmpty)
			convey.So(cfg.OTelEnabled, convey.ShouldBeFalse)
			convey.So(cfg.CityFiles, convey.ShouldResemble, map[string]string{
				"chicago":       "chicago.csv",
				"new york city": "new_york_city.csv",
				"washington":    "washington.csv",
			})
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When the page size is zero", func() {
			cfg.PageSize = 0
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "page_size")
		})

		convey.Convey("When the data directory is blank", func() {
			cfg.DataDir = "  "
			convey.So(cfg.Validate(), convey.ShouldWrap, config.ErrInvalidConfig)
		})

		convey.Convey("When the malformed policy is unknown", func() {
			cfg.MalformedPolicy = "ignore"
			err := cfg.Validate()
			convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			convey.So(err.Error(), convey.ShouldContainSubstring, `"ignore"`)
		})

		convey.Convey("When a city has no file", func() {
			delete(cfg.CityFiles, "washington")
			err := cfg.Validate()
			convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			convey.So(err.Error(), convey.ShouldContainSubstring, "washington")
		})

		convey.Convey("When OTel is enabled without an endpoint", func() {
			cfg.OTelEnabled = true
			convey.So(cfg.Validate(), convey.ShouldWrap, config.ErrInvalidConfig)

			cfg.OTelEndpoint = "localhost:4317"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the skip policy is chosen", func() {
			cfg.MalformedPolicy = repository.PolicySkip
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
