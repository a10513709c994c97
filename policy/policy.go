package policy

import "iter"

// Entry is the read-only view of a cache entry that a policy may inspect.
// Timestamps are UnixNano. The insertion sequence is a per-cache monotone
// counter assigned when the entry is (re)inserted; policies use it as the
// deterministic tie-break when primary fields compare equal.
type Entry[K comparable] interface {
	Key() K
	CreatedAt() int64
	LastAccessed() int64
	AccessCount() uint64
	Sequence() uint64
}

// Policy selects victim keys when the cache must free space.
//
// SelectVictims reads the resident entries and returns between 0 and
// min(n, number of entries) keys to evict. It must not retain the Entry
// values past the call: the cache invokes it under its lock and reuses
// the underlying records.
//
// Concurrency: the cache serializes calls under its own lock, so a policy
// bound to a single cache needs no internal synchronization. A policy
// instance shared across caches must guard any mutable state itself
// (see policy/random).
type Policy[K comparable] interface {
	SelectVictims(entries iter.Seq[Entry[K]], n int) []K
}

// Collect drains an entry sequence into a slice. Shared helper for the
// sort-based policies.
func Collect[K comparable](entries iter.Seq[Entry[K]]) []Entry[K] {
	var es []Entry[K]
	for e := range entries {
		es = append(es, e)
	}
	return es
}

// Keys returns the keys of the first n entries of es.
func Keys[K comparable](es []Entry[K], n int) []K {
	if n > len(es) {
		n = len(es)
	}
	keys := make([]K, 0, n)
	for _, e := range es[:n] {
		keys = append(keys, e.Key())
	}
	return keys
}
