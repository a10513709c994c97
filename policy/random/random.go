// Package random implements the uniform-random eviction policy.
package random

import (
	"iter"
	"math/rand"
	"sync"
	"time"

	"github.com/croweh/ttlcache/policy"
)

// random picks victims as a uniform sample without replacement.
// The sample is built with reservoir sampling (Algorithm R), so a single
// pass over the entries suffices and no full collect/sort is needed.
type random[K comparable] struct {
	mu sync.Mutex // rand.Rand is not goroutine-safe
	r  *rand.Rand
}

// New returns the random policy seeded from the current time.
func New[K comparable]() policy.Policy[K] {
	return NewWithRand[K](rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns the random policy driven by r.
// Inject a seeded source in tests that need reproducible picks.
func NewWithRand[K comparable](r *rand.Rand) policy.Policy[K] {
	return &random[K]{r: r}
}

// SelectVictims returns a uniform sample of up to n distinct keys.
func (p *random[K]) SelectVictims(entries iter.Seq[policy.Entry[K]], n int) []K {
	if n <= 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	sample := make([]K, 0, n)
	seen := 0
	for e := range entries {
		seen++
		if len(sample) < n {
			sample = append(sample, e.Key())
			continue
		}
		if j := p.r.Intn(seen); j < n {
			sample[j] = e.Key()
		}
	}
	return sample
}
