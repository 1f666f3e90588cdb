// Package snapshot publishes the latest pipeline result to concurrent
// readers. The API handlers read whatever run completed last; a nil
// snapshot means no refresh has finished yet.
package snapshot

import (
	"sync/atomic"

	"github.com/pulsecraft/brand-pulse/internal/process/pipeline"
)

// Holder stores the most recent snapshot.
type Holder struct {
	current atomic.Pointer[pipeline.Snapshot]
}

// NewHolder creates an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set publishes a snapshot, replacing the previous one.
func (h *Holder) Set(s *pipeline.Snapshot) {
	h.current.Store(s)
}

// Get returns the latest snapshot, or nil when none exists yet.
func (h *Holder) Get() *pipeline.Snapshot {
	return h.current.Load()
}

// Ready reports whether at least one snapshot has been published.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}
