// Package db persists resume runs and cached job postings in PostgreSQL.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// DefaultListLimit bounds ListRuns when no limit is given
const DefaultListLimit = 20

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables when they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveRun stores a generation run. A nil ID is replaced with a new one.
func (db *DB) SaveRun(ctx context.Context, run *Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	record, err := json.Marshal(run.Record)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_runs (id, job_title, company, job_url, source, attempts, template, folder, record, job_description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		run.ID, run.JobTitle, run.Company, run.JobURL, run.Source, run.Attempts,
		run.Template, run.Folder, record, run.JobDescription,
	).Scan(&run.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, created_at, job_title, company, job_url, source, attempts, template, folder, record, job_description`

// GetRun retrieves a run by ID, or nil when it does not exist.
func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM resume_runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM resume_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run. Deleting a missing run is not an error.
func (db *DB) DeleteRun(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM resume_runs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	var record []byte
	err := row.Scan(&run.ID, &run.CreatedAt, &run.JobTitle, &run.Company, &run.JobURL,
		&run.Source, &run.Attempts, &run.Template, &run.Folder, &record, &run.JobDescription)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(record, &run.Record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &run, nil
}

// UpsertJobPosting caches parsed job details for ttl.
func (db *DB) UpsertJobPosting(ctx context.Context, platform string, details *types.JobDetails, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultPostingTTL
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal job details: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_postings (url, platform, details, fetched_at, expires_at)
		 VALUES ($1, $2, $3, NOW(), $4)
		 ON CONFLICT (url) DO UPDATE
		 SET platform = $2, details = $3, fetched_at = NOW(), expires_at = $4`,
		details.URL, platform, payload, time.Now().Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to save job posting %s: %w", details.URL, err)
	}
	return nil
}

// GetFreshJobPosting returns the cached posting for url, or nil when it is
// missing or expired.
func (db *DB) GetFreshJobPosting(ctx context.Context, url string) (*JobPosting, error) {
	var p JobPosting
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT url, platform, details, fetched_at, expires_at FROM job_postings WHERE url = $1`, url,
	).Scan(&p.URL, &p.Platform, &payload, &p.FetchedAt, &p.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	if p.IsExpired(time.Now()) {
		return nil, nil
	}
	if err := json.Unmarshal(payload, &p.Details); err != nil {
		return nil, fmt.Errorf("failed to decode job posting: %w", err)
	}
	return &p, nil
}
