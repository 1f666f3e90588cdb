// Package worker runs the periodic refresh loop: a ticker-driven task with
// an optional manual trigger channel, panic recovery and context
// cancellation.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	logFieldWorker = "worker"
)

// Config configures the refresh loop.
type Config struct {
	// Name identifies the worker for logging.
	Name string

	// Interval is the ticker interval between runs.
	Interval time.Duration

	// OnTick is called on every scheduled or triggered run.
	OnTick func(ctx context.Context)

	// RunOnStart runs OnTick immediately when the loop starts.
	RunOnStart bool

	// Trigger requests an immediate run; the ticker is reset afterwards so
	// the next scheduled run is a full interval away. Nil disables it.
	Trigger <-chan struct{}

	// Logger for the worker.
	Logger *zerolog.Logger
}

// Loop runs the refresh loop until the context is canceled. A panicking
// tick is recovered and logged; the loop keeps going.
func Loop(ctx context.Context, cfg Config) error {
	logger := getLogger(cfg.Logger)
	logger.Info().Str(logFieldWorker, cfg.Name).Dur("interval", cfg.Interval).Msg("starting refresh loop")

	defer logger.Info().Str(logFieldWorker, cfg.Name).Msg("refresh loop stopped")

	if cfg.RunOnStart && cfg.OnTick != nil {
		runTick(ctx, cfg, logger)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("refresh loop %s: %w", cfg.Name, ctx.Err())
		case <-ticker.C:
			runTick(ctx, cfg, logger)
		case <-cfg.Trigger:
			logger.Debug().Str(logFieldWorker, cfg.Name).Msg("manual refresh triggered")
			runTick(ctx, cfg, logger)
			ticker.Reset(cfg.Interval)
		}
	}
}

func runTick(ctx context.Context, cfg Config, logger *zerolog.Logger) {
	if cfg.OnTick == nil {
		return
	}

	defer RecoverPanic(logger, cfg.Name)

	cfg.OnTick(ctx)
}

// RecoverPanic recovers from panics and logs them.
// Use as: defer worker.RecoverPanic(logger, "operation name")
func RecoverPanic(logger *zerolog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error().
			Interface("panic", r).
			Str("operation", operation).
			Msg("recovered from panic")
	}
}

// getLogger returns the provided logger or a nop logger if nil.
func getLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()

		return &nop
	}

	return logger
}
