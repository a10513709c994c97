package cache

import (
	"context"
	"time"
)

// Cache is a mutex-guarded in-memory key/value cache with per-entry TTL
// and a pluggable eviction policy.
// All methods are safe for concurrent use by multiple goroutines.
type Cache[K comparable, V any] interface {
	// Get returns the value for k and a boolean flag indicating presence.
	// An expired entry is removed on the spot and reported as a miss.
	// On hit, the entry's last-access time and access count are updated.
	Get(k K) (V, bool)

	// Set inserts or overwrites k→v using the cache's DefaultTTL (if any).
	// Overwriting resets the entry's standing: fresh creation time, zeroed
	// access metadata. A non-nil error is always a *PolicyError.
	Set(k K, v V) error

	// SetWithTTL is Set with a per-key TTL (relative duration).
	// A non-positive ttl disables expiration for this entry.
	SetWithTTL(k K, v V, ttl time.Duration) error

	// GetOrLoad returns the value for k, loading it via Options.Loader on
	// miss. Concurrent loads for the same key are coalesced (singleflight).
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Delete removes k if present and reports whether a removal occurred.
	Delete(k K) bool

	// Contains reports whether k is resident and not expired. Like Get it
	// removes an expired entry, but it touches neither the entry's access
	// metadata nor the hit/miss counters.
	Contains(k K) bool

	// Clear empties the cache and resets the hit/miss counters; the
	// cumulative eviction/expiration counters are untouched.
	// It does not stop the background sweeper.
	Clear()

	// Len returns the current entry count. It reads a counter without
	// taking the lock, so it may trail a concurrent mutation.
	Len() int

	// HitRatio returns hits/(hits+misses), or 0 when nothing was accessed.
	HitRatio() float64

	// Stats returns a snapshot of the hit/miss/eviction counters.
	Stats() Stats

	// Start launches the background expiry sweeper. It is a no-op when
	// CleanupInterval is non-positive, after Close, or if already started.
	Start()

	// Close stops the sweeper and waits for it to exit, then marks the
	// cache closed; subsequent operations return zero values.
	// Close is idempotent.
	Close() error
}
