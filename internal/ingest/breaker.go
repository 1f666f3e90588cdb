package ingest

import (
	"sync"
	"time"
)

// breaker is a per-source circuit breaker. It stays closed until threshold
// consecutive failures, then opens for the cooldown. The first attempt after
// the cooldown is the half-open trial: success closes the circuit, failure
// re-opens it for another cooldown.
type breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration

	failures int
	open     bool
	openedAt time.Time
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	return &breaker{
		threshold: threshold,
		cooldown:  cooldown,
	}
}

// allow reports whether a fetch may proceed at now.
func (b *breaker) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}

	return now.Sub(b.openedAt) >= b.cooldown
}

// recordFailure counts a failed fetch and reports whether the circuit
// transitioned from closed to open.
func (b *breaker) recordFailure(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++

	if b.open {
		// A failed half-open trial restarts the cooldown.
		b.openedAt = now

		return false
	}

	if b.failures >= b.threshold {
		b.open = true
		b.openedAt = now

		return true
	}

	return false
}

// recordSuccess closes the circuit and clears the failure count.
func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.open = false
}

func (b *breaker) isOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.open
}
