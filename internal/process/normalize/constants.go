package normalize

// Skip reason constants. A skipped record never aborts its batch; reasons
// feed the per-source skip counters.
const (
	ReasonMissingTimestamp = "missing_timestamp"
	ReasonBadTimestamp     = "bad_timestamp"
	ReasonLanguage         = "language"
	ReasonUnknownSource    = "unknown_source"
)

// Log field constants
const (
	logFieldSource = "source"
	logFieldReason = "reason"
	logFieldCount  = "count"
)
