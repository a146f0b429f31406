package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunRepository records refresh cycles. It is an audit trail only; the
// published snapshot is never rebuilt from it.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) InsertRun(ctx context.Context, run Run) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO refresh_runs (
			started_at, completed_at, article_count, interesting_count,
			region_count, video_count, video_failures, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt.UTC(), run.CompletedAt.UTC(), run.ArticleCount, run.InterestingCount,
		run.RegionCount, run.VideoCount, run.VideoFailures, run.Error)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO source_fetches (
			run_id, position, source, fetched, accepted, interesting,
			fallback, error, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare source fetch insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range run.Sources {
		_, err := stmt.ExecContext(ctx, runID, i, s.Source, s.Fetched, s.Accepted, s.Interesting,
			s.Fallback, s.Error, s.Duration.Milliseconds())
		if err != nil {
			return 0, fmt.Errorf("failed to insert source fetch %s: %w", s.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRecentRuns returns up to limit runs, newest first, with their
// per-source rows in configured order.
func (r *RunRepository) ListRecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, started_at, completed_at, article_count, interesting_count,
			region_count, video_count, video_failures, error
		FROM refresh_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.ArticleCount,
			&run.InterestingCount, &run.RegionCount, &run.VideoCount, &run.VideoFailures,
			&run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	for i := range runs {
		sources, err := r.getSourceFetches(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Sources = sources
	}

	return runs, nil
}

func (r *RunRepository) getSourceFetches(ctx context.Context, runID int64) ([]SourceFetch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT source, fetched, accepted, interesting, fallback, error, duration_ms
		FROM source_fetches
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query source fetches: %w", err)
	}
	defer rows.Close()

	var fetches []SourceFetch
	for rows.Next() {
		var f SourceFetch
		var durationMs int64
		if err := rows.Scan(&f.Source, &f.Fetched, &f.Accepted, &f.Interesting, &f.Fallback,
			&f.Error, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan source fetch: %w", err)
		}
		f.Duration = time.Duration(durationMs) * time.Millisecond
		fetches = append(fetches, f)
	}

	return fetches, rows.Err()
}

func (r *RunRepository) GetRunCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM refresh_runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// GetLastRun returns the most recent run, or nil when none was recorded.
func (r *RunRepository) GetLastRun(ctx context.Context) (*Run, error) {
	var run Run
	err := r.db.QueryRowContext(ctx, `
		SELECT id, started_at, completed_at, article_count, interesting_count,
			region_count, video_count, video_failures, error
		FROM refresh_runs
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`).Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.ArticleCount,
		&run.InterestingCount, &run.RegionCount, &run.VideoCount, &run.VideoFailures,
		&run.Error)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}
	return &run, nil
}

// PruneRuns keeps the newest keep runs and deletes the rest.
func (r *RunRepository) PruneRuns(ctx context.Context, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM refresh_runs
		WHERE id NOT IN (
			SELECT id FROM refresh_runs ORDER BY started_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}
