// Package app wires configuration, fetchers, pipeline, snapshot holder and
// servers together and exposes the operational modes:
//
//   - Serve mode: refresh worker + dashboard API + health/metrics server
//   - Report mode: one fetch + one pipeline run, snapshot printed as JSON
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulsecraft/brand-pulse/internal/api"
	"github.com/pulsecraft/brand-pulse/internal/core/domain"
	"github.com/pulsecraft/brand-pulse/internal/ingest"
	"github.com/pulsecraft/brand-pulse/internal/platform/config"
	"github.com/pulsecraft/brand-pulse/internal/platform/observability"
	"github.com/pulsecraft/brand-pulse/internal/platform/worker"
	"github.com/pulsecraft/brand-pulse/internal/process/normalize"
	"github.com/pulsecraft/brand-pulse/internal/process/pipeline"
	"github.com/pulsecraft/brand-pulse/internal/process/sentiment"
	"github.com/pulsecraft/brand-pulse/internal/process/tagging"
	"github.com/pulsecraft/brand-pulse/internal/snapshot"
)

const (
	refreshWorkerName = "refresh"
	triggerBuffer     = 1

	logFieldBrand   = "brand"
	logFieldSources = "sources"
)

// fetchRegistry is what the refresh path needs from the ingest registry.
type fetchRegistry interface {
	FetchAll(ctx context.Context, window domain.Window) ([]domain.RawBatch, error)
	Sources() []domain.Source
}

// App holds the application dependencies and provides methods to run the
// operational modes.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger

	registry fetchRegistry
	pipeline *pipeline.Pipeline
	holder   *snapshot.Holder
	trigger  chan struct{}
	out      io.Writer
}

// New creates an App instance from loaded configuration.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	normalizer := normalize.New(cfg.Languages, logger)
	tagger := tagging.NewTagger(cfg.Products, cfg.Flavors)
	classifier := sentiment.NewKeywordClassifier(sentiment.Lexicon{
		Positive: cfg.PositiveWords,
		Negative: cfg.NegativeWords,
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: newRegistry(cfg, logger),
		pipeline: pipeline.New(normalizer, tagger, classifier, cfg.DedupEnabled, logger),
		holder:   snapshot.NewHolder(),
		trigger:  make(chan struct{}, triggerBuffer),
		out:      os.Stdout,
	}
}

func newRegistry(cfg *config.Config, logger *zerolog.Logger) *ingest.Registry {
	fetchers := make([]ingest.Fetcher, 0, 2)

	if cfg.TwitterBearerToken != "" {
		fetchers = append(fetchers, ingest.NewTwitterFetcher(ingest.TwitterConfig{
			BearerToken: cfg.TwitterBearerToken,
			Brand:       cfg.Brand,
			Products:    cfg.Products,
			MaxResults:  cfg.TwitterMaxResults,
		}))
	} else {
		logger.Warn().Msg("twitter bearer token missing, source disabled")
	}

	if cfg.YouTubeAPIKey != "" {
		fetchers = append(fetchers, ingest.NewYouTubeFetcher(ingest.YouTubeConfig{
			APIKey:           cfg.YouTubeAPIKey,
			BaseURL:          cfg.YouTubeBaseURL,
			Brand:            cfg.Brand,
			Products:         cfg.Products,
			MaxResults:       cfg.YouTubeMaxResults,
			CommentsPerVideo: cfg.CommentsPerVideo,
			Timeout:          cfg.YouTubeTimeout,
			RequestsPerSec:   cfg.YouTubeRPS,
		}))
	} else {
		logger.Warn().Msg("youtube api key missing, source disabled")
	}

	return ingest.NewRegistry(ingest.RegistryConfig{
		FailureThreshold: cfg.FetchFailureThreshold,
		Cooldown:         cfg.FetchCooldown,
	}, logger, fetchers...)
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	server := observability.NewServer(a.cfg.HealthPort, a.holder.Ready, a.logger)
	return server.Start(ctx)
}

// RunServe starts the refresh worker and the dashboard API and keeps both
// running until the context is canceled.
func (a *App) RunServe(ctx context.Context) error {
	a.logger.Info().
		Str(logFieldBrand, a.cfg.Brand).
		Interface(logFieldSources, a.registry.Sources()).
		Msg("starting serve mode")

	go a.runAPIServer(ctx)

	return worker.Loop(ctx, worker.Config{
		Name:       refreshWorkerName,
		Interval:   a.cfg.RefreshInterval,
		OnTick:     a.refresh,
		RunOnStart: true,
		Trigger:    a.trigger,
		Logger:     a.logger,
	})
}

// RunReport fetches once, runs the pipeline once and prints the snapshot as
// indented JSON.
func (a *App) RunReport(ctx context.Context) error {
	window := a.window(time.Now().UTC())

	batches, err := a.registry.FetchAll(ctx, window)
	if err != nil {
		observability.PipelineRuns.WithLabelValues(pipeline.StatusError).Inc()
		return fmt.Errorf("fetch: %w", err)
	}

	snap := a.pipeline.Run(batches, window)
	a.holder.Set(snap)

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if _, err := fmt.Fprintln(a.out, string(out)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

func (a *App) runAPIServer(ctx context.Context) {
	server := api.NewServer(a.cfg.APIPort, a.holder, a.trigger, a.logger)
	if err := server.Start(ctx); err != nil {
		a.logger.Error().Err(err).Msg("api server stopped")
	}
}

// refresh runs one fetch + pipeline pass and publishes the snapshot. A run
// where every source failed keeps the previous snapshot in place.
func (a *App) refresh(ctx context.Context) {
	window := a.window(time.Now().UTC())

	batches, err := a.registry.FetchAll(ctx, window)
	if err != nil {
		observability.PipelineRuns.WithLabelValues(pipeline.StatusError).Inc()
		a.logger.Error().Err(err).Msg("refresh failed, keeping previous snapshot")

		return
	}

	a.holder.Set(a.pipeline.Run(batches, window))
}

func (a *App) window(now time.Time) domain.Window {
	return domain.Window{
		Start: now.AddDate(0, 0, -a.cfg.WindowDays),
		End:   now,
	}
}
