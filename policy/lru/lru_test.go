package lru

import (
	"slices"
	"testing"

	"github.com/croweh/ttlcache/policy/policytest"
)

// Victims come out ordered by last access, stalest first.
func TestLRU_OrdersByLastAccess(t *testing.T) {
	t.Parallel()

	p := New[string]()
	entries := policytest.Seq(
		&policytest.Entry{K: "hot", Accessed: 300, Seq: 1},
		&policytest.Entry{K: "cold", Accessed: 100, Seq: 2},
		&policytest.Entry{K: "warm", Accessed: 200, Seq: 3},
	)

	got := p.SelectVictims(entries, 2)
	want := []string{"cold", "warm"}
	if !slices.Equal(got, want) {
		t.Fatalf("SelectVictims = %v, want %v", got, want)
	}
}

// Equal access times fall back to insertion sequence, oldest first.
func TestLRU_TieBreakBySequence(t *testing.T) {
	t.Parallel()

	p := New[string]()
	entries := policytest.Seq(
		&policytest.Entry{K: "b", Accessed: 100, Seq: 2},
		&policytest.Entry{K: "a", Accessed: 100, Seq: 1},
		&policytest.Entry{K: "c", Accessed: 100, Seq: 3},
	)

	got := p.SelectVictims(entries, 3)
	want := []string{"a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Fatalf("SelectVictims = %v, want %v", got, want)
	}
}

// Requests beyond the population are clamped; empty input yields no victims.
func TestLRU_ClampAndEmpty(t *testing.T) {
	t.Parallel()

	p := New[string]()

	if got := p.SelectVictims(policytest.Seq(), 5); len(got) != 0 {
		t.Fatalf("empty input must yield no victims, got %v", got)
	}
	got := p.SelectVictims(policytest.Seq(
		&policytest.Entry{K: "only", Accessed: 1, Seq: 1},
	), 5)
	if !slices.Equal(got, []string{"only"}) {
		t.Fatalf("clamped selection = %v, want [only]", got)
	}
	if got := p.SelectVictims(policytest.Seq(
		&policytest.Entry{K: "x", Seq: 1},
	), 0); len(got) != 0 {
		t.Fatalf("n=0 must yield no victims, got %v", got)
	}
}
