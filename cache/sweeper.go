package cache

import (
	"context"
	"time"
)

// Start launches the background expiry sweeper. It is a no-op when
// CleanupInterval is non-positive, after Close, or on a second call.
func (c *memoryCache[K, V]) Start() {
	if c.opt.CleanupInterval <= 0 || c.closed.Load() {
		return
	}
	c.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.wg.Add(1)
		go c.sweepLoop(ctx)
	})
}

// Close marks the cache closed and joins the sweeper if one was started.
// Safe to call multiple times and without a prior Start.
func (c *memoryCache[K, V]) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	// Burn startOnce so a Start racing with Close cannot launch a sweeper
	// afterwards; if Start won the race, Do has completed and c.cancel is set.
	c.startOnce.Do(func() {})
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return nil
}

// sweepLoop wakes every CleanupInterval and purges expired entries.
// A failed pass is contained; the loop continues on the next tick.
func (c *memoryCache[K, V]) sweepLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.opt.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep removes every expired entry under the lock. The only way a pass
// can fail is a panicking OnEvict callback; the panic is recovered,
// counted, and logged, leaving the remaining entries for the next pass.
func (c *memoryCache[K, V]) sweep() {
	defer func() {
		if r := recover(); r != nil {
			c.opt.Metrics.SweepFailure()
			c.opt.Logger.Error("cache: expiry sweep failed", F("panic", r))
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, n := range c.entries {
		if n.expired(now) {
			c.evictLocked(n, EvictSweep)
		}
	}
}
