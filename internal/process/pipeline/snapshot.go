package pipeline

import (
	"time"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
	"github.com/pulsecraft/brand-pulse/internal/process/engagement"
)

// SourceStats records what happened to one source's batch during a run.
type SourceStats struct {
	Fetched  int            `json:"fetched"`
	Mentions int            `json:"mentions"`
	Skipped  map[string]int `json:"skipped,omitempty"`
}

// ComparisonResult is a comparison table or its insufficient-data state.
// Status is ComparisonInsufficientData when fewer than two distinct periods
// were observed; the table is never fabricated from a missing period.
type ComparisonResult struct {
	Status string                  `json:"status"`
	Table  *domain.ComparisonTable `json:"table,omitempty"`
}

// Snapshot is the complete result of one pipeline run. It is immutable once
// returned; readers share it without locking.
type Snapshot struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Window            domain.Window          `json:"window"`
	Sources           map[string]SourceStats `json:"sources"`
	DuplicatesDropped int                    `json:"duplicates_dropped"`

	Mentions []domain.Mention `json:"mentions"`

	Aggregates map[domain.Granularity][]domain.AggregateBucket `json:"aggregates"`
	Flavors    map[domain.Granularity][]domain.FlavorBucket    `json:"flavors"`

	QuarterlyComparison ComparisonResult    `json:"quarterly_comparison"`
	YearlyComparison    ComparisonResult    `json:"yearly_comparison"`
	Trajectories        []domain.Trajectory `json:"trajectories"`

	Sentiment    domain.SentimentSummary `json:"sentiment"`
	HourlyVolume []domain.HourBucket     `json:"hourly_volume"`
	Engagement   engagement.VideoSummary `json:"engagement"`
}

// AggregatesFor returns the aggregate table at the requested granularity,
// empty when the snapshot has no mentions there.
func (s *Snapshot) AggregatesFor(g domain.Granularity) []domain.AggregateBucket {
	return s.Aggregates[g]
}

// FlavorsFor returns the flavor fan-out table at the requested granularity.
func (s *Snapshot) FlavorsFor(g domain.Granularity) []domain.FlavorBucket {
	return s.Flavors[g]
}
