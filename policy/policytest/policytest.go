// Package policytest provides shared test doubles for eviction policies.
package policytest

import (
	"iter"

	"github.com/croweh/ttlcache/policy"
)

// Entry is a plain-struct policy.Entry for tests.
type Entry struct {
	K        string
	Created  int64
	Accessed int64
	Count    uint64
	Seq      uint64
}

func (e *Entry) Key() string          { return e.K }
func (e *Entry) CreatedAt() int64     { return e.Created }
func (e *Entry) LastAccessed() int64  { return e.Accessed }
func (e *Entry) AccessCount() uint64  { return e.Count }
func (e *Entry) Sequence() uint64     { return e.Seq }

var _ policy.Entry[string] = (*Entry)(nil)

// Seq yields the given entries in order.
func Seq(es ...*Entry) iter.Seq[policy.Entry[string]] {
	return func(yield func(policy.Entry[string]) bool) {
		for _, e := range es {
			if !yield(e) {
				return
			}
		}
	}
}
