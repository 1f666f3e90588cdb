// Package ingest fetches raw mention batches from the platform APIs. Each
// platform implements Fetcher; the Registry fans one window out to all of
// them, shielding each behind its own circuit breaker so a platform outage
// costs that platform's batch and nothing else.
package ingest

import (
	"context"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

// Fetcher retrieves one platform's raw records for a time window.
type Fetcher interface {
	// Source identifies the platform this fetcher collects from.
	Source() domain.Source
	// Fetch returns everything the platform has for the window. A failed
	// fetch returns an error and no partial batch.
	Fetch(ctx context.Context, window domain.Window) (domain.RawBatch, error)
}
