// Package assessment runs the submission pipeline: validate, score, store,
// announce. It is the single entry point used by the HTTP API and the CLI.
package assessment

import (
	"context"
	"errors"
	"fmt"

	"github.com/glucoscope/glucoscope/internal/events"
	"github.com/glucoscope/glucoscope/internal/logger"
	"github.com/glucoscope/glucoscope/internal/store"
	"github.com/glucoscope/glucoscope/pkg/advice"
	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
	"github.com/glucoscope/glucoscope/pkg/validate"
)

// Recorder receives outcome counts. *observability.Metrics implements it.
type Recorder interface {
	AssessmentStored(scoring.Assessment)
	PublishFailed()
}

type nopRecorder struct{}

func (nopRecorder) AssessmentStored(scoring.Assessment) {}
func (nopRecorder) PublishFailed()                      {}

// Service orchestrates scoring and persistence of assessments.
type Service struct {
	store     store.Store
	engine    *scoring.Engine
	publisher events.Publisher
	log       *logger.Logger
	metrics   Recorder
}

// NewService creates a Service. Only st is required; nil collaborators fall
// back to the default engine, no events, no logging and no metrics.
func NewService(st store.Store, engine *scoring.Engine, publisher events.Publisher, log *logger.Logger, metrics Recorder) *Service {
	if engine == nil {
		engine = scoring.Default()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{store: st, engine: engine, publisher: publisher, log: log, metrics: metrics}
}

// Submit decodes and validates a raw JSON body, then scores and stores it.
// Any problem with the body yields a *ValidationError.
func (s *Service) Submit(ctx context.Context, raw []byte) (store.Record, error) {
	m, violations, err := health.Decode(raw)
	if err != nil {
		return store.Record{}, &ValidationError{Violations: []validate.Violation{{
			Field:   "body",
			Code:    validate.CodeMalformed,
			Message: err.Error(),
		}}}
	}
	if len(violations) > 0 {
		return store.Record{}, &ValidationError{Violations: violations}
	}
	return s.persist(ctx, m)
}

// SubmitMetrics scores and stores already-typed metrics after a range check.
func (s *Service) SubmitMetrics(ctx context.Context, m health.Metrics) (store.Record, error) {
	if violations := m.Validate(); len(violations) > 0 {
		return store.Record{}, &ValidationError{Violations: violations}
	}
	return s.persist(ctx, m)
}

func (s *Service) persist(ctx context.Context, m health.Metrics) (store.Record, error) {
	a := s.engine.Assess(m)

	rec, err := s.store.Create(ctx, m, a)
	if err != nil {
		return store.Record{}, fmt.Errorf("store assessment: %w", err)
	}
	s.metrics.AssessmentStored(a)

	if err := s.publisher.Publish(ctx, rec); err != nil {
		s.metrics.PublishFailed()
		s.log.Warn("publish assessment event failed", "id", rec.ID, "error", err)
	}

	s.log.Debug("assessment stored", "id", rec.ID, "risk_score", a.RiskScore, "risk_category", a.RiskCategory)
	return rec, nil
}

// FetchOne returns the record with the given id or ErrNotFound.
func (s *Service) FetchOne(ctx context.Context, id string) (store.Record, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Record{}, err
		}
		return store.Record{}, fmt.Errorf("fetch assessment: %w", err)
	}
	return rec, nil
}

// FetchAll returns every record, newest first. The slice is never nil.
func (s *Service) FetchAll(ctx context.Context) ([]store.Record, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	if recs == nil {
		recs = []store.Record{}
	}
	return recs, nil
}

// Explain recomputes the scoring breakdown for a stored record.
func (s *Service) Explain(ctx context.Context, id string) (scoring.Explanation, error) {
	rec, err := s.FetchOne(ctx, id)
	if err != nil {
		return scoring.Explanation{}, err
	}
	return s.engine.Explain(rec.Metrics), nil
}

// Recommendations returns personalized advice for a stored record.
func (s *Service) Recommendations(ctx context.Context, id string) ([]advice.Recommendation, error) {
	rec, err := s.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	return advice.For(rec.Metrics), nil
}

// Summary computes dashboard statistics over every stored record.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	recs, err := s.FetchAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(recs), nil
}

// Healthy reports whether the backing store is reachable.
func (s *Service) Healthy(ctx context.Context) error {
	return store.Ping(ctx, s.store)
}
