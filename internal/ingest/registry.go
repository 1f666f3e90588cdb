package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
	"github.com/pulsecraft/brand-pulse/internal/platform/observability"
)

// RegistryConfig holds the circuit breaker settings shared by all sources.
type RegistryConfig struct {
	FailureThreshold int
	Cooldown         time.Duration
}

// Registry fans one fetch window out to every registered source.
type Registry struct {
	fetchers []Fetcher
	breakers map[domain.Source]*breaker
	logger   *zerolog.Logger
}

// NewRegistry creates a registry over the given fetchers.
func NewRegistry(cfg RegistryConfig, logger *zerolog.Logger, fetchers ...Fetcher) *Registry {
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = defaultFailureThreshold
	}

	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}

	breakers := make(map[domain.Source]*breaker, len(fetchers))
	for _, f := range fetchers {
		breakers[f.Source()] = newBreaker(threshold, cooldown)
	}

	return &Registry{
		fetchers: fetchers,
		breakers: breakers,
		logger:   logger,
	}
}

// Sources lists the registered sources in registration order.
func (r *Registry) Sources() []domain.Source {
	sources := make([]domain.Source, 0, len(r.fetchers))
	for _, f := range r.fetchers {
		sources = append(sources, f.Source())
	}

	return sources
}

// FetchAll fetches the window from every source whose circuit allows it and
// returns the successful batches. The error is non-nil only when every
// attempted source failed.
func (r *Registry) FetchAll(ctx context.Context, window domain.Window) ([]domain.RawBatch, error) {
	batches := make([]domain.RawBatch, 0, len(r.fetchers))

	var errs []error

	for _, f := range r.fetchers {
		if !r.breakers[f.Source()].allow(time.Now()) {
			r.logger.Debug().Str(logFieldSource, string(f.Source())).Msg("circuit open, source skipped")
			continue
		}

		batch, err := r.fetchOne(ctx, f, window)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Source(), err))
			continue
		}

		batches = append(batches, batch)
	}

	if len(batches) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return batches, nil
}

func (r *Registry) fetchOne(ctx context.Context, f Fetcher, window domain.Window) (domain.RawBatch, error) {
	source := string(f.Source())
	br := r.breakers[f.Source()]

	start := time.Now()
	batch, err := f.Fetch(ctx, window)

	observability.FetchDurationSeconds.WithLabelValues(source).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.FetchRequests.WithLabelValues(source, statusError).Inc()

		if br.recordFailure(time.Now()) {
			observability.FetchCircuitBreakerOpens.WithLabelValues(source).Inc()
			r.logger.Warn().Str(logFieldSource, source).Msg("circuit breaker opened")
		}

		if br.isOpen() {
			observability.FetchCircuitBreakerState.WithLabelValues(source).Set(circuitOpen)
		}

		r.logger.Error().Err(err).Str(logFieldSource, source).Msg("fetch failed")

		return domain.RawBatch{}, err
	}

	br.recordSuccess()
	observability.FetchRequests.WithLabelValues(source, statusOK).Inc()
	observability.FetchCircuitBreakerState.WithLabelValues(source).Set(circuitClosed)

	r.logger.Info().
		Str(logFieldSource, source).
		Int(logFieldRecords, len(batch.Records)).
		Int(logFieldVideos, len(batch.Videos)).
		Msg("batch fetched")

	return batch, nil
}
