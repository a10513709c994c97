package cache

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
	// SweepFailure counts background sweep passes that panicked
	// (for example in an OnEvict callback) and were contained.
	SweepFailure()
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()               {}
func (NoopMetrics) Miss()              {}
func (NoopMetrics) Evict(EvictReason)  {}
func (NoopMetrics) Size(entries int)   {}
func (NoopMetrics) SweepFailure()      {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

// Stats is a point-in-time snapshot of the cache counters.
// Hits and misses are reset by Clear; evictions and expirations are
// cumulative for the life of the instance.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   uint64
	Expirations uint64
}

// HitRatio returns hits/(hits+misses), or 0 when nothing was accessed.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
