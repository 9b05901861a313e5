package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	repository "github.com/okian/bikeshare/internal/adapters/repository"
	"github.com/okian/bikeshare/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, ".")
				convey.So(cfg.PageSize, convey.ShouldEqual, 5)
				convey.So(cfg.MalformedPolicy, convey.ShouldEqual, repository.PolicyAbort)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("BIKESHARE_DATA_DIR", "/srv/bikeshare")
			_ = os.Setenv("BIKESHARE_PAGE_SIZE", "12")
			_ = os.Setenv("BIKESHARE_MALFORMED_POLICY", "SKIP")
			_ = os.Setenv("BIKESHARE_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/bikeshare")
				convey.So(cfg.PageSize, convey.ShouldEqual, 12)
				convey.So(cfg.MalformedPolicy, convey.ShouldEqual, repository.PolicySkip)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars()
			tmpFile := createTempConfigFile(t, `
data_dir: /data
page_size: 8
metrics_addr: ":9464"
city_files:
  washington: washington.csv.sz
`)
			_ = os.Setenv("BIKESHARE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/data")
				convey.So(cfg.PageSize, convey.ShouldEqual, 8)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9464")
			})

			convey.Convey("Then city files should merge with the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CityFiles["washington"], convey.ShouldEqual, "washington.csv.sz")
				convey.So(cfg.CityFiles["chicago"], convey.ShouldEqual, "chicago.csv")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			clearConfigEnvVars()
			tmpFile := createTempConfigFile(t, `
data_dir: /data
page_size: 8
`)
			_ = os.Setenv("BIKESHARE_CONFIG", tmpFile)
			_ = os.Setenv("BIKESHARE_PAGE_SIZE", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PageSize, convey.ShouldEqual, 3)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/data")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars()
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)

			cfg, err := config.LoadFrom(ctx, tmpFile)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars()

			cfg, err := config.LoadFrom(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid policy", func() {
			_ = os.Setenv("BIKESHARE_MALFORMED_POLICY", "ignore")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(err.Error(), convey.ShouldContainSubstring, "malformed_policy")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive page size", func() {
			_ = os.Setenv("BIKESHARE_PAGE_SIZE", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// createTempConfigFile writes content to a YAML file removed when t ends.
func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "bikeshare.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// clearConfigEnvVars clears all bikeshare environment variables.
func clearConfigEnvVars() {
	for _, v := range []string{
		"BIKESHARE_CONFIG",
		"BIKESHARE_DATA_DIR",
		"BIKESHARE_PAGE_SIZE",
		"BIKESHARE_MALFORMED_POLICY",
		"BIKESHARE_LOG_LEVEL",
		"BIKESHARE_LOG_FILE",
		"BIKESHARE_METRICS_ADDR",
		"BIKESHARE_OTEL_ENABLED",
		"BIKESHARE_OTEL_ENDPOINT",
		"BIKESHARE_OTEL_INSECURE",
	} {
		_ = os.Unsetenv(v)
	}
}
