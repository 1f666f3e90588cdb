package api

import "time"

const (
	paramGranularity = "granularity"
	paramSource      = "source"
	paramProduct     = "product"
	paramSentiment   = "sentiment"
	paramLimit       = "limit"

	defaultMentionLimit = 100

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second

	logFieldPort     = "port"
	logFieldStatus   = "status"
	logFieldMethod   = "method"
	logFieldPath     = "path"
	logFieldLatency  = "latency"
	logFieldClientIP = "client_ip"
	logFieldPanic    = "panic"

	pathUnmatched = "unmatched"
)
