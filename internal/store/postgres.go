package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// Postgres stores records in the assessments table. The schema is created by
// platform.AutoMigrate; List orders by the seq column, not created_at.
type Postgres struct {
	db   *sql.DB
	opts options
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB, opts ...Option) *Postgres {
	return &Postgres{db: db, opts: buildOptions(opts)}
}

const recordColumns = `id, glucose, blood_pressure, skin_thickness, insulin, bmi,
	diabetes_pedigree_function, age, pregnancies, physical_activity,
	family_history, smoking_status, risk_score, risk_category, created_at`

func (s *Postgres) Create(ctx context.Context, m health.Metrics, a scoring.Assessment) (Record, error) {
	// timestamptz keeps microseconds; truncate so Create and Get agree.
	rec := newRecord(s.opts.newID(), m, a, s.opts.now().Truncate(time.Microsecond))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (`+recordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, m.Glucose, m.BloodPressure, m.SkinThickness, m.Insulin, m.BMI,
		m.DiabetesPedigreeFunction, m.Age, m.Pregnancies, m.PhysicalActivity,
		m.FamilyHistory, m.SmokingStatus, a.RiskScore, string(a.RiskCategory), rec.CreatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

func (s *Postgres) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM assessments WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

func (s *Postgres) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM assessments ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// Ping verifies the database is reachable.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec      Record
		category string
	)
	m := &rec.Metrics
	err := row.Scan(&rec.ID, &m.Glucose, &m.BloodPressure, &m.SkinThickness, &m.Insulin, &m.BMI,
		&m.DiabetesPedigreeFunction, &m.Age, &m.Pregnancies, &m.PhysicalActivity,
		&m.FamilyHistory, &m.SmokingStatus, &rec.RiskScore, &category, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	rec.RiskCategory = scoring.Category(category)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}
