package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/okian/bikeshare/internal/adapters/http/api"
	"github.com/okian/bikeshare/internal/adapters/http/swagger"
	"github.com/okian/bikeshare/internal/adapters/otel"
	repository "github.com/okian/bikeshare/internal/adapters/repository"
	service "github.com/okian/bikeshare/internal/app"
	"github.com/okian/bikeshare/internal/config"
	"github.com/okian/bikeshare/internal/ports"
	"github.com/okian/bikeshare/pkg/logger"
)

// App holds the dependencies shared by the commands of one process.
type App struct {
	Config    *config.Config
	Service   *service.Service
	SessionID string
	Logger    logger.Logger

	exporter ports.ReportExporter
	listener *api.Listener
}

// NewApp initializes logging, loads configuration with flag overrides applied
// and builds the report service. Logs go to logOut unless log_file is set.
func NewApp(ctx context.Context, opts *rootOptions, logOut io.Writer) (*App, error) {
	if err := logger.InitWithWriter(logOut); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		if err := logger.InitFile(cfg.LogFile); err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	app := &App{
		Config:    cfg,
		SessionID: uuid.NewString(),
	}
	app.Logger = logger.Get().With(logger.String("session_id", app.SessionID))

	app.exporter, err = otel.New(ctx, otel.Config{
		Endpoint: cfg.OTelEndpoint,
		Enabled:  cfg.OTelEnabled,
		Insecure: cfg.OTelInsecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create otel exporter: %w", err)
	}

	loader := repository.NewCSVLoader(
		repository.WithDataDir(cfg.DataDir),
		repository.WithCityFiles(cfg.CityFiles),
		repository.WithMalformedPolicy(cfg.MalformedPolicy),
		repository.WithLogger(app.Logger.Named("loader")),
	)

	app.Service = service.New(
		service.WithLoader(loader),
		service.WithExporter(app.exporter),
		service.WithLogger(logger.Get().Named("service")),
		service.WithSessionID(app.SessionID),
	)

	if cfg.MetricsAddr != "" {
		router := api.NewServer(nil, nil).Router()
		swagger.Register(router)
		app.listener, err = api.Listen(ctx, cfg.MetricsAddr, router)
		if err != nil {
			_ = app.exporter.Close(ctx)
			return nil, err
		}
		app.Logger.Info(ctx, "metrics listener started", logger.String("addr", app.listener.Addr()))
	}

	app.Logger.Debug(ctx, "app initialized",
		logger.String("data_dir", cfg.DataDir),
		logger.String("malformed_policy", string(cfg.MalformedPolicy)),
		logger.Int("page_size", cfg.PageSize))
	return app, nil
}

// Close stops the listener, flushes the exporter and releases the log file.
func (a *App) Close(ctx context.Context) {
	if a.listener != nil {
		if err := a.listener.Shutdown(ctx); err != nil {
			a.Logger.Warn(ctx, "metrics listener shutdown failed", logger.Error(err))
		}
	}
	if a.exporter != nil {
		if err := a.exporter.Close(ctx); err != nil {
			a.Logger.Warn(ctx, "otel exporter close failed", logger.Error(err))
		}
	}
	_ = logger.Sync()
}

// loadConfig loads configuration and applies non-empty flag overrides.
func loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.metricsAddr != "" {
		cfg.MetricsAddr = opts.metricsAddr
	}
	return cfg, nil
}
