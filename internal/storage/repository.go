package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quietravel/gateway/internal/planner"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository stores submitted plans.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// SavePlan inserts a plan record. Re-saving the same ID is a no-op.
func (r *Repository) SavePlan(ctx context.Context, rec planner.PlanRecord) error {
	prefsJSON, err := json.Marshal(rec.Preferences)
	if err != nil {
		return fmt.Errorf("marshaling preferences for plan %s: %w", rec.ID, err)
	}

	const q = `
		INSERT INTO plans (id, preferences, matched, submitted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, q, rec.ID, prefsJSON, rec.Matched, rec.SubmittedAt); err != nil {
		return fmt.Errorf("inserting plan %s: %w", rec.ID, err)
	}

	return nil
}

// Stats counts stored plans and reports when the last one was submitted.
func (r *Repository) Stats(ctx context.Context) (planner.Stats, error) {
	const q = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE matched), MAX(submitted_at)
		FROM plans
	`

	var s planner.Stats
	var last *time.Time
	if err := r.q.QueryRow(ctx, q).Scan(&s.Trips, &s.Matched, &last); err != nil {
		return planner.Stats{}, fmt.Errorf("querying plan stats: %w", err)
	}
	s.LastPlanAt = last

	return s, nil
}

// GetPlan retrieves a plan by ID. Returns nil, nil when it does not exist.
func (r *Repository) GetPlan(ctx context.Context, id uuid.UUID) (*planner.PlanRecord, error) {
	const q = `
		SELECT id, preferences, matched, submitted_at
		FROM plans
		WHERE id = $1
	`

	var rec planner.PlanRecord
	var prefsJSON []byte
	err := r.q.QueryRow(ctx, q, id).Scan(&rec.ID, &prefsJSON, &rec.Matched, &rec.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying plan %s: %w", id, err)
	}

	if err := json.Unmarshal(prefsJSON, &rec.Preferences); err != nil {
		return nil, fmt.Errorf("unmarshaling preferences for plan %s: %w", id, err)
	}

	return &rec, nil
}

const (
	defaultPlansLimit = 20
	maxPlansLimit     = 100
)

// PlansByMood returns the most recent plans for a mood, newest first.
// Uses the JSONB ->> operator against the stored preferences.
// limit defaults to 20 and is capped at 100.
func (r *Repository) PlansByMood(ctx context.Context, mood string, limit int) ([]planner.PlanRecord, error) {
	if limit <= 0 {
		limit = defaultPlansLimit
	}
	limit = min(limit, maxPlansLimit)

	const q = `
		SELECT id, preferences, matched, submitted_at
		FROM plans
		WHERE preferences->>'mood' = $1
		ORDER BY submitted_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, q, mood, limit)
	if err != nil {
		return nil, fmt.Errorf("querying plans by mood: %w", err)
	}
	defer rows.Close()

	var results []planner.PlanRecord
	for rows.Next() {
		var rec planner.PlanRecord
		var prefsJSON []byte

		if err := rows.Scan(&rec.ID, &prefsJSON, &rec.Matched, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}

		if err := json.Unmarshal(prefsJSON, &rec.Preferences); err != nil {
			return nil, fmt.Errorf("unmarshaling plan preferences: %w", err)
		}

		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan rows: %w", err)
	}

	return results, nil
}
