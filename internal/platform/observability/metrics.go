package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MentionsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_mentions_ingested_total",
		Help: "The total number of raw records normalized into mentions",
	}, []string{"source"})

	MentionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_mentions_skipped_total",
		Help: "The total number of raw records skipped during normalization by reason",
	}, []string{"source", "reason"})

	MentionsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_mentions_deduplicated_total",
		Help: "The total number of duplicate mentions dropped within a batch",
	})

	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_pipeline_runs_total",
		Help: "The total number of pipeline runs by status",
	}, []string{"status"})

	PipelineRunDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulse_pipeline_run_duration_seconds",
		Help:    "Duration in seconds of a full pipeline run",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	})

	PipelineLastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pulse_pipeline_last_success_timestamp_seconds",
		Help: "Unix timestamp of the last successful pipeline run",
	})

	SnapshotMentions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pulse_snapshot_mentions",
		Help: "Number of enriched mentions in the current snapshot by source",
	}, []string{"source"})

	SnapshotSentiment = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pulse_snapshot_sentiment",
		Help: "Number of mentions in the current snapshot by sentiment label",
	}, []string{"label"})

	FetchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_fetch_requests_total",
		Help: "Total number of platform fetch attempts by source and status",
	}, []string{"source", "status"})

	FetchDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulse_fetch_duration_seconds",
		Help:    "Duration of platform fetch requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	FetchCircuitBreakerOpens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_fetch_circuit_breaker_opens_total",
		Help: "Total number of times a source circuit breaker opened",
	}, []string{"source"})

	FetchCircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pulse_fetch_circuit_breaker_state",
		Help: "Current state of a source circuit breaker (0=closed, 1=open)",
	}, []string{"source"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulse_http_request_duration_seconds",
		Help:    "Duration of dashboard API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
