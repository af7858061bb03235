package store

import (
	"context"
	"errors"
	"testing"
)

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) CacheHit()  { o.hits++ }
func (o *countingObserver) CacheMiss() { o.misses++ }

type countingStore struct {
	Store
	gets int
}

func (s *countingStore) Get(ctx context.Context, id string) (Record, error) {
	s.gets++
	return s.Store.Get(ctx, id)
}

func TestCachedGet(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemory()}
	seeded, _ := inner.Create(ctx, sampleMetrics(85), sampleAssessment())

	obs := &countingObserver{}
	c := NewCached(inner, 4, obs)

	for i := 0; i < 3; i++ {
		got, err := c.Get(ctx, seeded.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.ID != seeded.ID {
			t.Errorf("Get = %s, want %s", got.ID, seeded.ID)
		}
	}
	if inner.gets != 1 {
		t.Errorf("inner Get called %d times, want 1", inner.gets)
	}
	if obs.misses != 1 || obs.hits != 2 {
		t.Errorf("hits=%d misses=%d, want 2/1", obs.hits, obs.misses)
	}
}

func TestCachedCreateWarmsCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemory()}
	obs := &countingObserver{}
	c := NewCached(inner, 4, obs)

	rec, err := c.Create(ctx, sampleMetrics(85), sampleAssessment())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := c.Get(ctx, rec.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if inner.gets != 0 || obs.hits != 1 {
		t.Errorf("expected cache hit after Create, inner gets=%d hits=%d", inner.gets, obs.hits)
	}
}

func TestCachedMissNotCached(t *testing.T) {
	c := NewCached(NewMemory(), 4, nil)
	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if c.cache.len() != 0 {
		t.Errorf("cache holds %d entries after misses", c.cache.len())
	}
}

func TestRecordCacheEviction(t *testing.T) {
	c := newRecordCache(2)
	c.put(Record{ID: "a"})
	c.put(Record{ID: "b"})

	// Touch a so b becomes least recently used.
	if _, ok := c.get("a"); !ok {
		t.Fatal("expected a cached")
	}
	c.put(Record{ID: "c"})

	if _, ok := c.get("b"); ok {
		t.Error("expected b evicted")
	}
	for _, id := range []string{"a", "c"} {
		if _, ok := c.get(id); !ok {
			t.Errorf("expected %s cached", id)
		}
	}
	if c.len() != 2 {
		t.Errorf("len = %d, want 2", c.len())
	}
}

func TestRecordCacheDefaultSize(t *testing.T) {
	if c := newRecordCache(0); c.maxSize != 20 {
		t.Errorf("maxSize = %d, want 20", c.maxSize)
	}
}
