package repository

import "github.com/okian/bikeshare/pkg/logger"

// Option applies a configuration option to the CSVLoader.
type Option func(*CSVLoader)

// WithDataDir sets the directory dataset files are resolved against.
func WithDataDir(dir string) Option {
	return func(l *CSVLoader) {
		if dir != "" {
			l.dataDir = dir
		}
	}
}

// WithCityFiles sets the file name of each city, keyed by lower-case city name.
func WithCityFiles(files map[string]string) Option {
	return func(l *CSVLoader) {
		if len(files) > 0 {
			l.cityFiles = make(map[string]string, len(files))
			for k, v := range files {
				l.cityFiles[k] = v
			}
		}
	}
}

// WithMalformedPolicy sets how rows that fail to parse are handled.
func WithMalformedPolicy(p MalformedPolicy) Option {
	return func(l *CSVLoader) {
		if p.Valid() {
			l.policy = p
		}
	}
}

// WithLogger sets the logger used for load progress and skipped rows.
func WithLogger(log logger.Logger) Option {
	return func(l *CSVLoader) {
		if log != nil {
			l.logger = log
		}
	}
}
