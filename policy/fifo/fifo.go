// Package fifo implements the first-in-first-out eviction policy.
package fifo

import (
	"cmp"
	"iter"
	"slices"

	"github.com/croweh/ttlcache/policy"
)

// fifo evicts the entries with the oldest creation time, regardless of
// how often or how recently they were read. Ties are broken by insertion
// sequence, which also keeps the order well defined under a frozen clock.
type fifo[K comparable] struct{}

// New returns the FIFO policy. It is stateless and safe to share.
func New[K comparable]() policy.Policy[K] { return fifo[K]{} }

// SelectVictims returns up to n keys ordered by creation time, oldest first.
func (fifo[K]) SelectVictims(entries iter.Seq[policy.Entry[K]], n int) []K {
	if n <= 0 {
		return nil
	}
	es := policy.Collect(entries)
	slices.SortFunc(es, func(a, b policy.Entry[K]) int {
		if c := cmp.Compare(a.CreatedAt(), b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence(), b.Sequence())
	})
	return policy.Keys(es, n)
}
