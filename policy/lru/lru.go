// Package lru implements the least-recently-used eviction policy.
package lru

import (
	"cmp"
	"iter"
	"slices"

	"github.com/croweh/ttlcache/policy"
)

// lru evicts the entries with the oldest last-access time.
// Ties are broken by insertion sequence, oldest first.
type lru[K comparable] struct{}

// New returns the LRU policy. It is stateless and safe to share.
func New[K comparable]() policy.Policy[K] { return lru[K]{} }

// SelectVictims returns up to n keys ordered by last access, stalest first.
func (lru[K]) SelectVictims(entries iter.Seq[policy.Entry[K]], n int) []K {
	if n <= 0 {
		return nil
	}
	es := policy.Collect(entries)
	slices.SortFunc(es, func(a, b policy.Entry[K]) int {
		if c := cmp.Compare(a.LastAccessed(), b.LastAccessed()); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence(), b.Sequence())
	})
	return policy.Keys(es, n)
}
