// Package lfu implements the least-frequently-used eviction policy.
package lfu

import (
	"cmp"
	"iter"
	"slices"

	"github.com/croweh/ttlcache/policy"
)

// lfu evicts the entries with the smallest access count.
// Ties are broken by insertion sequence, oldest first, so an entry that
// was never read again loses to a fresher entry with the same count.
type lfu[K comparable] struct{}

// New returns the LFU policy. It is stateless and safe to share.
func New[K comparable]() policy.Policy[K] { return lfu[K]{} }

// SelectVictims returns up to n keys ordered by access count, coldest first.
func (lfu[K]) SelectVictims(entries iter.Seq[policy.Entry[K]], n int) []K {
	if n <= 0 {
		return nil
	}
	es := policy.Collect(entries)
	slices.SortFunc(es, func(a, b policy.Entry[K]) int {
		if c := cmp.Compare(a.AccessCount(), b.AccessCount()); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence(), b.Sequence())
	})
	return policy.Keys(es, n)
}
