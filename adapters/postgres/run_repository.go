package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"trendtruth/domain/analysis"
	"trendtruth/ports"
)

// runRepository implements ports.RunRepository on PostgreSQL
type runRepository struct {
	db *sqlx.DB
}

// Connect opens the run-history database
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewRunRepository creates a run repository and ensures its schema exists
func NewRunRepository(db *sqlx.DB) (ports.RunRepository, error) {
	repo := &runRepository{db: db}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *runRepository) ensureSchema(ctx context.Context) error {
	schema := `CREATE TABLE IF NOT EXISTS analysis_runs (
		id UUID PRIMARY KEY,
		category TEXT NOT NULL,
		limit_requested INT NOT NULL,
		total INT NOT NULL,
		misleading_count INT NOT NULL,
		real_count INT NOT NULL,
		avg_fake_probability DOUBLE PRECISION NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure analysis_runs schema: %w", err)
	}
	return nil
}

// SaveRun inserts one analysis-cycle summary
func (r *runRepository) SaveRun(ctx context.Context, run analysis.Run) error {
	query := `INSERT INTO analysis_runs (
		id, category, limit_requested, total, misleading_count, real_count,
		avg_fake_probability, generated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Category, run.Limit, run.Total, run.MisleadingCount,
		run.RealCount, run.AvgFake, run.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}
	return nil
}

// ListRecent returns the newest runs, newest first
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]analysis.Run, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, category, limit_requested, total, misleading_count,
		real_count, avg_fake_probability, generated_at
	FROM analysis_runs ORDER BY generated_at DESC LIMIT $1`

	runs := []analysis.Run{}
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		if err == sql.ErrNoRows {
			return runs, nil
		}
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return runs, nil
}
