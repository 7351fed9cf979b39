package cli

import (
	"context"
	"fmt"

	"moviedash/internal/config"
	"moviedash/internal/dashboard"
	"moviedash/internal/fetchers"
	"moviedash/internal/logger"
	"moviedash/internal/models"
	"moviedash/internal/storage"
)

// app is the wiring shared by the dashboard commands
type app struct {
	cfg      *config.Config
	client   *fetchers.ReportClient
	orch     *dashboard.Orchestrator
	exporter *dashboard.Exporter
	store    storage.ExportStore
}

// loadConfig loads the environment configuration, applies the global flags
// and configures the global logger
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	logger.Configure(logger.GetGlobalLogger(), cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// dashboardOptions maps the configured initial selections
func dashboardOptions(cfg *config.Config) (dashboard.Options, error) {
	kind, err := models.ParseChartKind(cfg.DefaultChartKind)
	if err != nil {
		return dashboard.Options{}, fmt.Errorf("invalid DEFAULT_CHART_KIND: %w", err)
	}
	return dashboard.Options{
		GenreLimit:    cfg.DefaultGenreLimit,
		DirectorLimit: cfg.DefaultDirectorLimit,
		MaxLimit:      cfg.MaxLimit,
		ChartKind:     kind,
		SortOrder:     models.SortDesc,
	}, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	opts, err := dashboardOptions(cfg)
	if err != nil {
		return nil, err
	}

	baseURL := fetchers.ResolveBaseURL(cfg.DashboardHost, cfg.APIBaseURL, cfg.LocalAPIBaseURL, cfg.RemoteAPIBaseURL)
	client := fetchers.NewReportClient(baseURL, cfg.RequestTimeout)

	store, err := storage.NewExportStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	orch := dashboard.NewOrchestrator(client, nil, opts)
	logger.Info("Dashboard configured", logger.Fields{
		"backend":   baseURL,
		"storage":   cfg.ExportStorage,
		"chartKind": string(opts.ChartKind),
	})

	return &app{
		cfg:      cfg,
		client:   client,
		orch:     orch,
		exporter: dashboard.NewExporter(orch, store),
		store:    store,
	}, nil
}

// Close releases the export store
func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
