package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/croweh/ttlcache/policy"
	"github.com/croweh/ttlcache/policy/lfu"
	"github.com/croweh/ttlcache/policy/random"
)

// benchmarkMix exercises a read/write mix against a warm cache.
// It uses parallel workers (RunParallel spawns GOMAXPROCS goroutines).
// String keys include strconv/concat costs and often allocate, which is
// fine for an end-to-end benchmark.
func benchmarkMix(b *testing.B, readsPct int, pol policy.Policy[string]) {
	c := New[string, string](Options[string, string]{
		Capacity: 100_000,
		Policy:   pol,
	})
	b.Cleanup(func() { _ = c.Close() })

	// Preload half the capacity to get a realistic hit-rate.
	for i := 0; i < 50_000; i++ {
		k := "k:" + strconv.Itoa(i)
		_ = c.Set(k, "v")
	}

	// Report per-op allocations for a rough idea where costs go.
	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1 // hot keyspace (power of two for fast &-mask)

	b.RunParallel(func(pb *testing.PB) {
		// Independent RNG stream for each worker.
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				_ = c.Set(k, "v")
			}
			i++
		}
	})
}

func BenchmarkCache_LRU_90r10w(b *testing.B)    { benchmarkMix(b, 90, nil) }
func BenchmarkCache_LRU_50r50w(b *testing.B)    { benchmarkMix(b, 50, nil) }
func BenchmarkCache_LFU_90r10w(b *testing.B)    { benchmarkMix(b, 90, lfu.New[string]()) }
func BenchmarkCache_Random_90r10w(b *testing.B) { benchmarkMix(b, 90, random.New[string]()) }

// BenchmarkCache_GetHit isolates the hot read path: one resident key,
// repeated hits, no eviction work at all.
func BenchmarkCache_GetHit(b *testing.B) {
	c := New[int, int](Options[int, int]{Capacity: 8})
	b.Cleanup(func() { _ = c.Close() })
	_ = c.Set(1, 1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(1)
	}
}
