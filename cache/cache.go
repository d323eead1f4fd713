package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"feed-service/metrics"
	"feed-service/model"
)

// DefaultTTL balances freshness against the cost of fanning out to
// every source on every request.
const DefaultTTL = 15 * time.Minute

// Runner executes one aggregation run. Implemented by
// aggregator.Aggregator; faked in tests.
type Runner interface {
	Aggregate(ctx context.Context) (model.Snapshot, error)
}

// Cache wraps a Runner with a TTL snapshot cache and a stale-on-error
// fallback. Safe for concurrent use: the held snapshot and its
// timestamp are replaced together as one value, and concurrent stale or
// forced refreshes coalesce into a single in-flight run.
type Cache struct {
	runner Runner
	ttl    time.Duration

	group singleflight.Group

	mu   sync.RWMutex
	snap model.Snapshot
	warm bool
}

func New(runner Runner, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{runner: runner, ttl: ttl}
}

// Get returns the current snapshot. A fresh cached snapshot is returned
// as-is; a cold, stale, or forced call triggers one aggregation run.
// Get never returns an error: a failed run falls back to the previous
// snapshot, or to an empty snapshot when none exists yet.
func (c *Cache) Get(ctx context.Context, forceRefresh bool) model.Snapshot {
	if !forceRefresh {
		if snap, ok := c.fresh(); ok {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return snap
		}
	}
	metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()

	// Callers arriving while a run is in flight join it instead of
	// launching a second fan-out against the same slot. The run outlives
	// the caller that happened to start it: a disconnecting client must
	// not cancel the shared fan-out and turn it into a stored
	// zero-article snapshot. Per-fetch timeouts in the aggregator still
	// bound the run.
	runCtx := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do("refresh", func() (interface{}, error) {
		return c.refresh(runCtx), nil
	})
	return v.(model.Snapshot)
}

func (c *Cache) fresh() (model.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.warm && time.Since(c.snap.FetchedAt) < c.ttl {
		return c.snap, true
	}
	return model.Snapshot{}, false
}

func (c *Cache) refresh(ctx context.Context) model.Snapshot {
	snap, err := c.run(ctx)
	if err != nil {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.warm {
			// Stale-on-error: the previous snapshot survives untouched,
			// fetchedAt included.
			log.Printf("Aggregation run failed, serving previous snapshot: %v", err)
			metrics.CacheRequestsTotal.WithLabelValues("stale").Inc()
			return c.snap
		}
		// Cold-start failure: show what we have, even if nothing. The
		// fallback is stamped but not stored, so the next call retries.
		log.Printf("Aggregation run failed with no snapshot to fall back on: %v", err)
		return model.Snapshot{Articles: []model.Article{}, FetchedAt: time.Now()}
	}

	c.mu.Lock()
	c.snap = snap
	c.warm = true
	c.mu.Unlock()
	return snap
}

// run executes one aggregation, converting a panic into an error so a
// faulty run can never reach the caller unhandled.
func (c *Cache) run(ctx context.Context) (snap model.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("aggregation panic: %v", r)
		}
	}()
	return c.runner.Aggregate(ctx)
}
