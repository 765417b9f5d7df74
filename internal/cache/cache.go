// Package cache provides a small time-boxed in-memory cache used to memoise
// upstream responses and whole simulation runs.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a concurrency-safe map whose entries expire after a fixed duration.
// A nil *TTL is a valid, permanently empty cache: Get misses, Set is a no-op,
// and Do always calls through.
type TTL[V any] struct {
	mu    sync.RWMutex
	store map[string]entry[V]
	ttl   time.Duration
	now   func() time.Time

	group singleflight.Group

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache. When sweep > 0 a background goroutine removes expired
// entries at that interval until Close is called.
func New[V any](ttl, sweep time.Duration) *TTL[V] {
	c := &TTL[V]{
		store: make(map[string]entry[V]),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if sweep > 0 {
		go c.cleanup(sweep)
	}
	return c
}

// Get retrieves a value if present and not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key]
	if !ok || c.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores a value for the configured TTL.
func (c *TTL[V]) Set(key string, value V) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Do returns the cached value for key, or calls fn once (even under
// concurrent callers for the same key) and caches a successful result.
// hit reports whether the value came from the cache.
func (c *TTL[V]) Do(key string, fn func() (V, error)) (value V, hit bool, err error) {
	if c == nil {
		value, err = fn()
		return value, false, err
	}
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	raw, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if raw != nil {
		value = raw.(V)
	}
	return value, false, err
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *TTL[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Close stops the background sweeper.
func (c *TTL[V]) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

// Sweep removes expired entries now.
func (c *TTL[V]) Sweep() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, key)
		}
	}
}

func (c *TTL[V]) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.stop:
			return
		}
	}
}
