package cache

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// A mixed workload of concurrent Set/Get/SetWithTTL/Delete/Contains on
// random keys, with the sweeper running. Should pass under `-race`
// without detector reports.
func TestRace_Basic(t *testing.T) {
	c := New[string, []byte](Options[string, []byte]{
		Capacity:        8_192,
		CleanupInterval: 10 * time.Millisecond,
	})
	c.Start()
	t.Cleanup(func() { _ = c.Close() })

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 50_000
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% — Delete
					c.Delete(k)
				case 5, 6, 7, 8, 9: // ~5% — SetWithTTL
					_ = c.SetWithTTL(k, []byte("x"), time.Duration(10+r.Intn(20))*time.Millisecond)
				case 10, 11, 12, 13, 14: // ~5% — Contains / stats reads
					c.Contains(k)
					_ = c.Len()
					_ = c.HitRatio()
				case 15, 16, 17, 18, 19, 20, 21, 22, 23, 24: // ~10% — Set
					_ = c.Set(k, []byte("x"))
				default: // ~75% — Get
					c.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()

	if got := c.Len(); got > 8_192 {
		t.Fatalf("capacity bound violated under load: Len=%d", got)
	}
}

// Concurrent GetOrLoad calls for the same key should trigger the Loader
// at most once; subsequent calls are cache hits.
func TestRace_GetOrLoad(t *testing.T) {
	var calls int64

	c := New[string, string](Options[string, string]{
		Capacity: 1024,
		Loader: func(_ context.Context, k string) (string, error) {
			atomic.AddInt64(&calls, 1)
			time.Sleep(5 * time.Millisecond) // simulate I/O
			return "v:" + k, nil
		},
	})
	t.Cleanup(func() { _ = c.Close() })

	const N = 64
	var g errgroup.Group
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < N; i++ {
		g.Go(func() error {
			v, err := c.GetOrLoad(ctx, "k")
			if err != nil {
				return err
			}
			if v != "v:k" {
				return fmt.Errorf("got %q", v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := atomic.LoadInt64(&calls); got > 1 {
		t.Fatalf("loader should run at most once, got %d", got)
	}

	if v, err := c.GetOrLoad(context.Background(), "k"); err != nil || v != "v:k" {
		t.Fatalf("second GetOrLoad failed: v=%q err=%v", v, err)
	}
}

// Advancing the fake clock from the test goroutine while the sweeper
// polls it must be race-free: the clock double is atomic, and the sweeper
// only reads it under the cache lock.
func TestRace_FakeClockSweeper(t *testing.T) {
	clk := &fakeClock{}
	c := New[string, int](Options[string, int]{
		Capacity:        64,
		CleanupInterval: time.Millisecond,
		Clock:           clk,
	})
	c.Start()
	t.Cleanup(func() { _ = c.Close() })

	deadline := time.Now().Add(200 * time.Millisecond)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for time.Now().Before(deadline) {
			clk.add(10 * time.Millisecond)
			time.Sleep(time.Millisecond)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; time.Now().Before(deadline); i++ {
			k := "k:" + strconv.Itoa(i%32)
			_ = c.SetWithTTL(k, i, 5*time.Millisecond)
			c.Get(k)
		}
	}()
	wg.Wait()
}

// Start and Close racing must neither leak the sweeper nor panic.
func TestRace_StartClose(t *testing.T) {
	for i := 0; i < 50; i++ {
		c := New[int, int](Options[int, int]{
			Capacity:        8,
			CleanupInterval: time.Millisecond,
		})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); c.Start() }()
		go func() { defer wg.Done(); _ = c.Close() }()
		wg.Wait()
		_ = c.Close()
	}
}
