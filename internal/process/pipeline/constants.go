package pipeline

// Run status constants for the pipeline runs metric.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Comparison status constants carried in the snapshot.
const (
	ComparisonOK               = "ok"
	ComparisonInsufficientData = "insufficient data"
)

// Log field constants
const (
	LogFieldRunID       = "run_id"
	LogFieldSource      = "source"
	LogFieldCount       = "count"
	LogFieldGranularity = "granularity"
)
