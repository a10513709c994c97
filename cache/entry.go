package cache

import "github.com/croweh/ttlcache/policy"

// entry is the record stored for each resident key. All fields are read
// and mutated under the cache lock only.
type entry[K comparable, V any] struct {
	key K
	val V

	// Bookkeeping in UnixNano. lastAccessed starts equal to createdAt
	// and never moves backwards; accessCount counts successful Gets.
	createdAt    int64
	lastAccessed int64
	accessCount  uint64

	// Absolute expiration deadline in UnixNano. Zero means "no TTL".
	expiresAt int64

	// Insertion sequence assigned by the owning cache; strictly increasing
	// across inserts and overwrites. Policies use it to break ties.
	seq uint64
}

// expired reports whether the entry's deadline has passed at the given
// time. An expired entry is logically absent even before it is removed.
func (e *entry[K, V]) expired(now int64) bool {
	return e.expiresAt != 0 && now > e.expiresAt
}

// ---- policy.Entry view ----

func (e *entry[K, V]) Key() K              { return e.key }
func (e *entry[K, V]) CreatedAt() int64    { return e.createdAt }
func (e *entry[K, V]) LastAccessed() int64 { return e.lastAccessed }
func (e *entry[K, V]) AccessCount() uint64 { return e.accessCount }
func (e *entry[K, V]) Sequence() uint64    { return e.seq }

var _ policy.Entry[string] = (*entry[string, int])(nil)
