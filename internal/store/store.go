// Package store keeps scored assessment records. Records are created once and
// never updated or deleted.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Record is a scored submission as persisted. Its JSON form flattens the
// metrics and assessment fields next to id and createdAt.
type Record struct {
	ID string `json:"id"`
	health.Metrics
	scoring.Assessment
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the record collection used by the assessment service.
type Store interface {
	// Create assigns a fresh id and creation time and stores the record.
	Create(ctx context.Context, m health.Metrics, a scoring.Assessment) (Record, error)
	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)
	// List returns every record, most recently created first.
	List(ctx context.Context) ([]Record, error)
}

// Pinger is implemented by stores backed by an external system.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s if it is a Pinger and reports healthy otherwise.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// IDFunc generates record identifiers.
type IDFunc func() string

// Clock returns the current time.
type Clock func() time.Time

// NewID returns a random UUID v4 string.
func NewID() string {
	return uuid.NewString()
}

type options struct {
	newID IDFunc
	now   Clock
}

// Option customizes a store.
type Option func(*options)

// WithIDFunc replaces the UUID generator.
func WithIDFunc(f IDFunc) Option {
	return func(o *options) { o.newID = f }
}

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(o *options) { o.now = c }
}

func buildOptions(opts []Option) options {
	o := options{newID: NewID, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newRecord(id string, m health.Metrics, a scoring.Assessment, at time.Time) Record {
	return Record{ID: id, Metrics: m, Assessment: a, CreatedAt: at.UTC()}
}
