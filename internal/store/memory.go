package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// Memory is a process-lifetime Store. Nothing is evicted.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]Record
	order []string // creation order, oldest first
	opts  options
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		byID: make(map[string]Record),
		opts: buildOptions(opts),
	}
}

func (s *Memory) Create(ctx context.Context, m health.Metrics, a scoring.Assessment) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.opts.newID()
	if _, exists := s.byID[id]; exists {
		return Record{}, fmt.Errorf("create record: id %q already in use", id)
	}

	rec := newRecord(id, m, a, s.opts.now())
	s.byID[id] = rec
	s.order = append(s.order, id)
	return rec, nil
}

func (s *Memory) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return Record{}, fmt.Errorf("get record %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (s *Memory) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.byID[s.order[i]])
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
