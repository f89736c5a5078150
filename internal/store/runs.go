package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ukjobs-engine/internal/domain"
)

func CreateRun(ctx context.Context, q Querier, id, runDate string) error {
	_, err := q.ExecContext(ctx, `
INSERT INTO scrape_runs (id, run_date, status, started_at)
VALUES (?, ?, ?, ?);`,
		id, runDate, domain.StatusRunning, time.Now().UTC().Format(time.RFC3339))
	return err
}

// CompleteRun records final counts. Called inside the same transaction that
// inserts the run's job rows.
func CompleteRun(ctx context.Context, q Querier, id string, found, newJobs, dups, failedSources int, logText string) error {
	_, err := q.ExecContext(ctx, `
UPDATE scrape_runs
SET status = ?, jobs_found = ?, new_jobs = ?, duplicates = ?,
    failed_sources = ?, completed_at = ?, log = ?
WHERE id = ?;`,
		domain.StatusCompleted, found, newJobs, dups, failedSources,
		time.Now().UTC().Format(time.RFC3339), logText, id)
	return err
}

func FailRun(ctx context.Context, q Querier, id, logText string) error {
	_, err := q.ExecContext(ctx, `
UPDATE scrape_runs
SET status = ?, completed_at = ?, log = ?
WHERE id = ?;`,
		domain.StatusFailed, time.Now().UTC().Format(time.RFC3339), logText, id)
	return err
}

// FailStaleRuns marks runs still flagged running as failed. Called at
// startup so a crash never leaves a run permanently in flight.
func FailStaleRuns(ctx context.Context, q Querier) (int64, error) {
	res, err := q.ExecContext(ctx, `
UPDATE scrape_runs
SET status = ?, completed_at = ?, log = 'interrupted: process restarted'
WHERE status = ?;`,
		domain.StatusFailed, time.Now().UTC().Format(time.RFC3339), domain.StatusRunning)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func GetRun(ctx context.Context, q Querier, id string) (domain.ScrapeRun, bool, error) {
	var r domain.ScrapeRun
	var started string
	var completed sql.NullString
	err := q.QueryRowContext(ctx, `
SELECT id, run_date, status, jobs_found, new_jobs, duplicates, failed_sources,
       started_at, completed_at, log
FROM scrape_runs WHERE id = ?;`, id).Scan(
		&r.ID, &r.RunDate, &r.Status, &r.JobsFound, &r.NewJobs, &r.Duplicates,
		&r.FailedSources, &started, &completed, &r.Log,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ScrapeRun{}, false, nil
	}
	if err != nil {
		return domain.ScrapeRun{}, false, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339, started)
	setCompleted(&r, completed)
	return r, true, nil
}

func ListRuns(ctx context.Context, q Querier, limit int) ([]domain.ScrapeRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 30
	}
	rows, err := q.QueryContext(ctx, `
SELECT id, run_date, status, jobs_found, new_jobs, duplicates, failed_sources,
       started_at, completed_at, log
FROM scrape_runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScrapeRun
	for rows.Next() {
		var r domain.ScrapeRun
		var started string
		var completed sql.NullString
		if err := rows.Scan(
			&r.ID, &r.RunDate, &r.Status, &r.JobsFound, &r.NewJobs, &r.Duplicates,
			&r.FailedSources, &started, &completed, &r.Log,
		); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		setCompleted(&r, completed)
		out = append(out, r)
	}
	return out, rows.Err()
}

func setCompleted(r *domain.ScrapeRun, s sql.NullString) {
	if !s.Valid {
		return
	}
	if t, err := time.Parse(time.RFC3339, s.String); err == nil {
		r.CompletedAt = &t
	}
}
