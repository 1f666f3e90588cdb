package ingest

import "time"

const (
	statusOK    = "ok"
	statusError = "error"

	logFieldSource  = "source"
	logFieldRecords = "records"
	logFieldVideos  = "videos"

	defaultFailureThreshold = 3
	defaultCooldown         = 5 * time.Minute

	circuitClosed float64 = 0
	circuitOpen   float64 = 1
)
