// Package config defines explorer configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"

	repository "github.com/okian/bikeshare/internal/adapters/repository"
	"github.com/okian/bikeshare/internal/domain/model"
)

const defaultPageSize = 5

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, receives log output instead of stderr.
	LogFile string `koanf:"log_file"`

	// DataDir is the directory holding the city datasets.
	DataDir string `koanf:"data_dir"`

	// CityFiles maps each known city to its dataset file name inside DataDir.
	CityFiles map[string]string `koanf:"city_files"`

	// PageSize is the number of raw rows printed per page.
	PageSize int `koanf:"page_size"`

	// MalformedPolicy is either "abort" or "skip".
	MalformedPolicy repository.MalformedPolicy `koanf:"malformed_policy"`

	// MetricsAddr, when set, serves /metrics and /healthz on this address.
	MetricsAddr string `koanf:"metrics_addr"`

	// OTel export of report metrics to an OTLP collector.
	OTelEnabled  bool   `koanf:"otel_enabled"`
	OTelEndpoint string `koanf:"otel_endpoint"`
	OTelInsecure bool   `koanf:"otel_insecure"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		DataDir:  ".",
		CityFiles: map[string]string{
			model.CityChicago.String():     "chicago.csv",
			model.CityNewYorkCity.String(): "new_york_city.csv",
			model.CityWashington.String():  "washington.csv",
		},
		PageSize:        defaultPageSize,
		MalformedPolicy: repository.PolicyAbort,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	}
	if !c.MalformedPolicy.Valid() {
		return fmt.Errorf("%w: malformed_policy must be %q or %q, got %q",
			ErrInvalidConfig, repository.PolicyAbort, repository.PolicySkip, c.MalformedPolicy)
	}
	for _, city := range model.Cities() {
		if strings.TrimSpace(c.CityFiles[city.String()]) == "" {
			return fmt.Errorf("%w: city_files has no file for %q", ErrInvalidConfig, city)
		}
	}
	if c.OTelEnabled && c.OTelEndpoint == "" {
		return fmt.Errorf("%w: otel_endpoint is required when otel_enabled is set", ErrInvalidConfig)
	}
	return nil
}
