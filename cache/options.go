package cache

import (
	"context"
	"time"

	"github.com/croweh/ttlcache/policy"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity — chosen by the eviction policy to make room for an insert.
	EvictCapacity EvictReason = iota
	// EvictTTL — expired and removed lazily on access (Get/Contains).
	EvictTTL
	// EvictSweep — expired and removed by the background sweeper.
	EvictSweep
)

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures the cache behavior. Zero values are safe except for
// Capacity, which must be positive; sane defaults are applied in New():
//   - nil Policy  => LRU
//   - nil Metrics => NoopMetrics
//   - nil Logger  => standard log package
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. It is enforced only when a NEW
	// key is inserted: the policy names one victim, which is removed
	// before the insert. Overwriting a resident key never evicts.
	Capacity int

	// Policy selects eviction victims; nil => LRU by default.
	Policy policy.Policy[K]

	// DefaultTTL applies to Set when no per-key TTL is provided (0 = no TTL).
	DefaultTTL time.Duration

	// CleanupInterval is the period of the background expiry sweeper
	// launched by Start(). A non-positive value disables background
	// sweeping; expired entries are then removed only lazily on access.
	CleanupInterval time.Duration

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called for every eviction (capacity, TTL, or sweep),
	// under the cache lock; keep callbacks lightweight. Explicit Delete
	// and Clear do not trigger it.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives hit/miss/evict/size/sweep-failure signals.
	Metrics Metrics

	// Logger receives sweeper diagnostics. Nil => standard log package.
	Logger Logger

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}
