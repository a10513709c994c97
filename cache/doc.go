// Package cache provides a generic in-memory cache with per-entry TTL,
// pluggable eviction policies (LRU by default), hit/miss accounting,
// optional singleflight loading, and a background expiry sweeper with an
// explicit lifecycle.
//
// Design
//
//   - Concurrency: one map guarded by one mutex. Every read and mutation
//     of the map, including the expiry check-and-remove inside Get and
//     Contains, happens while holding the lock, so operations on a single
//     instance are linearizable. Len and the Stats counters are the only
//     lock-free reads (best effort, metrics-style).
//
//   - TTL: entries may carry an absolute deadline (UnixNano). An expired
//     entry is logically absent the moment its deadline passes; it is
//     physically removed either lazily on access or by the sweeper.
//
//   - Policies: when inserting a new key at capacity, the cache asks the
//     configured policy to name one victim. Policies are pure readers of
//     the entry set (see the policy package); LRU, LFU, FIFO, and Random
//     variants are provided. A malfunctioning policy surfaces to the Set
//     caller as *PolicyError and leaves the map untouched.
//
//   - Sweeper: Start launches a goroutine that wakes every CleanupInterval
//     and purges expired entries; Close stops and joins it. Creating a
//     cache never spawns a goroutine, and a panicking sweep pass is
//     contained, counted, and logged rather than killing the loop.
//
//   - Overwrites: Set on a resident key replaces the entry outright,
//     resetting its creation time and access metadata. Replacement
//     semantics keep eviction standing honest after an overwrite.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size/SweepFailure
//     signals. NoopMetrics is the default; metrics/prom exports them to
//     Prometheus.
//
// Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity:        10_000,
//	    CleanupInterval: time.Minute,
//	})
//	c.Start()
//	defer c.Close()
//
//	_ = c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Delete("a")
//
// With TTL
//
//	_ = c.SetWithTTL("tmp", []byte("v"), 200*time.Millisecond)
//	time.Sleep(300 * time.Millisecond)
//	_, ok := c.Get("tmp") // ok == false (expired)
//
// With an alternative policy
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Policy:   lfu.New[string](),
//	})
//
// See cache/options.go for all available Options fields and the policy
// package for the victim-selection contract used to implement custom
// strategies.
package cache
