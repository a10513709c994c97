package cache

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/croweh/ttlcache/internal/singleflight"
	"github.com/croweh/ttlcache/internal/util"
	"github.com/croweh/ttlcache/policy"
	"github.com/croweh/ttlcache/policy/lru"
)

// memoryCache is a single-lock in-memory KV store with a pluggable
// eviction policy and a background expiry sweeper.
// All methods are safe for concurrent use by multiple goroutines.
type memoryCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	seq     uint64 // insertion sequence, incremented under mu

	opt Options[K, V]

	// Sweeper lifecycle. startOnce also serializes Start against Close.
	closed    atomic.Bool
	startOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	// Written under mu, read lock-free by Len/Stats/HitRatio.
	_       util.CacheLinePad
	size    util.PaddedAtomicInt64
	hits    util.PaddedAtomicInt64
	misses  util.PaddedAtomicInt64
	evicts  util.PaddedAtomicUint64
	expired util.PaddedAtomicUint64
}

// New constructs a cache with the provided Options. The background sweeper
// is not running until Start is called; lazy expiry on access works either
// way. Defaults:
//   - nil Policy  -> LRU
//   - nil Metrics -> NoopMetrics
//   - nil Logger  -> standard log package
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity <= 0 {
		panic("cache: Capacity must be > 0")
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K]()
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = stdLogger{}
	}
	return &memoryCache[K, V]{
		entries: make(map[K]*entry[K, V], opt.Capacity),
		opt:     opt,
	}
}

// ---- Cache[K,V] implementation ----

// Get returns the value for k and a presence flag, updating the entry's
// access metadata on hit. An expired entry is removed and counted as a miss.
func (c *memoryCache[K, V]) Get(k K) (V, bool) {
	var zero V
	if c.closed.Load() {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[k]
	if !ok {
		c.misses.Add(1)
		c.opt.Metrics.Miss()
		return zero, false
	}
	now := c.now()
	if n.expired(now) {
		c.evictLocked(n, EvictTTL)
		c.misses.Add(1)
		c.opt.Metrics.Miss()
		return zero, false
	}

	n.lastAccessed = now
	n.accessCount++
	c.hits.Add(1)
	c.opt.Metrics.Hit()
	return n.val, true
}

// Set inserts or overwrites k→v using DefaultTTL if set.
func (c *memoryCache[K, V]) Set(k K, v V) error {
	return c.set(k, v, c.defaultDeadline())
}

// SetWithTTL inserts or overwrites k→v with a per-key TTL.
func (c *memoryCache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) error {
	return c.set(k, v, c.deadline(ttl))
}

// set performs the insert. exp is an absolute UnixNano deadline (0 = none).
//
// Capacity is enforced only for a new key: the policy names one victim,
// which is removed before the insert. If the policy returns no usable
// victim the insert still proceeds; a policy malfunction aborts the call
// with *PolicyError and leaves the map untouched.
func (c *memoryCache[K, V]) set(k K, v V, exp int64) error {
	if c.closed.Load() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, resident := c.entries[k]
	if !resident && len(c.entries) >= c.opt.Capacity {
		if err := c.evictOneLocked(); err != nil {
			return err
		}
	}

	now := c.now()
	c.seq++
	c.entries[k] = &entry[K, V]{
		key:          k,
		val:          v,
		createdAt:    now,
		lastAccessed: now,
		expiresAt:    exp,
		seq:          c.seq,
	}
	if !resident {
		c.size.Add(1)
	}
	c.opt.Metrics.Size(len(c.entries))
	return nil
}

// Delete removes k if present. Unlike evictions, an explicit Delete does
// not fire OnEvict and is not counted in the eviction metrics.
func (c *memoryCache[K, V]) Delete(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[k]
	if !ok {
		return false
	}
	delete(c.entries, n.key)
	c.size.Add(-1)
	c.opt.Metrics.Size(len(c.entries))
	return true
}

// Contains reports residency with the same expiry handling as Get, but
// without touching access metadata or the hit/miss counters.
func (c *memoryCache[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[k]
	if !ok {
		return false
	}
	if n.expired(c.now()) {
		c.evictLocked(n, EvictTTL)
		return false
	}
	return true
}

// Clear empties the map and zeroes the hit/miss counters. Evictions and
// expirations stay cumulative, and the sweeper keeps running.
func (c *memoryCache[K, V]) Clear() {
	if c.closed.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.size.Store(0)
	c.hits.Store(0)
	c.misses.Store(0)
	c.opt.Metrics.Size(0)
}

// Len returns the entry count from a lock-free counter; it may trail a
// concurrent mutation by a moment.
func (c *memoryCache[K, V]) Len() int { return int(c.size.Load()) }

// HitRatio returns hits/(hits+misses), or 0 when nothing was accessed.
func (c *memoryCache[K, V]) HitRatio() float64 { return c.Stats().HitRatio() }

// Stats returns a lock-free snapshot of the counters. The fields are read
// individually, so the snapshot may straddle a concurrent operation.
func (c *memoryCache[K, V]) Stats() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evicts.Load(),
		Expirations: c.expired.Load(),
	}
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
// If no Loader is configured, returns ErrNoLoader.
func (c *memoryCache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		// Double-check after joining the flight.
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			err = c.Set(k, v)
		}
		return v, err
	})
}

// ---- internals (mu held) ----

// evictOneLocked asks the policy for one victim and removes it.
// A missing victim key is skipped rather than treated as an error.
func (c *memoryCache[K, V]) evictOneLocked() error {
	keys, err := c.selectVictimsLocked(1)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if n, ok := c.entries[k]; ok {
			c.evictLocked(n, EvictCapacity)
		}
	}
	return nil
}

// selectVictimsLocked invokes the policy, converting a panic into a
// *PolicyError so a broken policy cannot corrupt the map or kill the caller.
func (c *memoryCache[K, V]) selectVictimsLocked(n int) (keys []K, err error) {
	defer func() {
		if r := recover(); r != nil {
			keys = nil
			err = &PolicyError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return c.opt.Policy.SelectVictims(c.entriesSeq(), n), nil
}

// entriesSeq yields the resident entries as read-only policy views.
// Valid only while mu is held.
func (c *memoryCache[K, V]) entriesSeq() iter.Seq[policy.Entry[K]] {
	return func(yield func(policy.Entry[K]) bool) {
		for _, n := range c.entries {
			if !yield(n) {
				return
			}
		}
	}
}

// evictLocked removes the entry, updates counters, and calls OnEvict.
func (c *memoryCache[K, V]) evictLocked(n *entry[K, V], reason EvictReason) {
	delete(c.entries, n.key)
	c.size.Add(-1)
	switch reason {
	case EvictTTL, EvictSweep:
		c.expired.Add(1)
	default:
		c.evicts.Add(1)
	}
	c.opt.Metrics.Evict(reason)
	c.opt.Metrics.Size(len(c.entries))
	if cb := c.opt.OnEvict; cb != nil {
		// Called under the lock; keep callbacks lightweight.
		cb(n.key, n.val, reason)
	}
}

// now reads the configured clock, falling back to the wall clock.
func (c *memoryCache[K, V]) now() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

// defaultDeadline returns an absolute deadline based on DefaultTTL.
func (c *memoryCache[K, V]) defaultDeadline() int64 {
	if c.opt.DefaultTTL <= 0 {
		return 0
	}
	return c.deadline(c.opt.DefaultTTL)
}

// deadline converts a relative TTL into an absolute UnixNano deadline.
// A non-positive ttl returns 0 (no expiration).
func (c *memoryCache[K, V]) deadline(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return c.now() + int64(ttl)
}
