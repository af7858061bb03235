package store

import (
	"context"
	"sync"

	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// CacheObserver is notified of cache lookups.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

type nopObserver struct{}

func (nopObserver) CacheHit()  {}
func (nopObserver) CacheMiss() {}

// Cached puts an LRU in front of Get. Records are immutable, so entries never
// go stale. List always reaches the underlying store.
type Cached struct {
	Store
	cache *recordCache
	obs   CacheObserver
}

// NewCached wraps inner with a cache of at most size records.
// If size <= 0, it defaults to 20.
func NewCached(inner Store, size int, obs CacheObserver) *Cached {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Cached{Store: inner, cache: newRecordCache(size), obs: obs}
}

func (c *Cached) Create(ctx context.Context, m health.Metrics, a scoring.Assessment) (Record, error) {
	rec, err := c.Store.Create(ctx, m, a)
	if err != nil {
		return Record{}, err
	}
	c.cache.put(rec)
	return rec, nil
}

func (c *Cached) Get(ctx context.Context, id string) (Record, error) {
	if rec, ok := c.cache.get(id); ok {
		c.obs.CacheHit()
		return rec, nil
	}
	c.obs.CacheMiss()

	rec, err := c.Store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	c.cache.put(rec)
	return rec, nil
}

// Ping delegates to the wrapped store.
func (c *Cached) Ping(ctx context.Context) error {
	return Ping(ctx, c.Store)
}

// recordCache is a thread-safe LRU keyed by record id.
type recordCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]Record
	order   []string // oldest first
}

func newRecordCache(maxSize int) *recordCache {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &recordCache{
		maxSize: maxSize,
		entries: make(map[string]Record),
	}
}

func (c *recordCache) get(id string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.entries[id]
	if !ok {
		return Record{}, false
	}
	c.moveToEnd(id)
	return rec, true
}

func (c *recordCache) put(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[rec.ID]; ok {
		c.entries[rec.ID] = rec
		c.moveToEnd(rec.ID)
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[rec.ID] = rec
	c.order = append(c.order, rec.ID)
}

func (c *recordCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *recordCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
