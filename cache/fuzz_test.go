//go:build go1.18

package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Set/Get/Delete/Contains semantics under arbitrary string
// inputs. Guards against panics and ensures core invariants hold.
// NOTE: We cap key/value lengths to avoid pathological memory usage
// during fuzzing (this does not weaken the invariants we check).
func FuzzCache_SetGetDelete(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		// Cap lengths to keep memory bounded during fuzzing.
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c := New[string, string](Options[string, string]{Capacity: 16})
		t.Cleanup(func() { _ = c.Close() })

		// Set -> Get must return the same value.
		if err := c.Set(k, v); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Set/Get: want %q, got %q ok=%v", v, got, ok)
		}
		if !c.Contains(k) {
			t.Fatalf("Contains must be true after Set")
		}

		// Overwrite must keep the size at one and serve the new value.
		if err := c.Set(k, v+"2"); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		if c.Len() != 1 {
			t.Fatalf("overwrite changed size: %d", c.Len())
		}
		if got2, ok := c.Get(k); !ok || got2 != v+"2" {
			t.Fatalf("after overwrite: want %q, got %q ok=%v", v+"2", got2, ok)
		}

		// Delete must remove and report true exactly once.
		if !c.Delete(k) {
			t.Fatalf("Delete must return true")
		}
		if c.Delete(k) {
			t.Fatalf("second Delete must return false")
		}
		if _, ok := c.Get(k); ok {
			t.Fatalf("key must be absent after Delete")
		}
		if c.Len() != 0 {
			t.Fatalf("Len after Delete = %d, want 0", c.Len())
		}
	})
}
