package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ukjobs-engine/internal/domain"
)

// JobRow is a persisted posting. first_seen survives cross-day re-inserts
// of the same identity; scrape_date is the day this row was captured.
type JobRow struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	URL        string `json:"url"`
	URLHash    string `json:"-"`
	Source     string `json:"source"`
	Category   string `json:"category,omitempty"`
	Experience string `json:"experience_level,omitempty"`
	JobType    string `json:"job_type,omitempty"`
	Salary     string `json:"salary,omitempty"`
	ScrapeDate string `json:"scrape_date"`
	FirstSeen  string `json:"first_seen"`
	LastSeen   string `json:"last_seen"`
}

func NewJobRow(j domain.JobPosting, urlHash, scrapeDate string) JobRow {
	return JobRow{
		Title:      j.Title,
		Company:    j.Company,
		Location:   j.Location,
		URL:        j.URL,
		URLHash:    urlHash,
		Source:     j.Source,
		Category:   j.Category,
		Experience: j.ExperienceLevel,
		JobType:    j.JobType,
		Salary:     j.Salary,
		ScrapeDate: scrapeDate,
		FirstSeen:  scrapeDate,
		LastSeen:   scrapeDate,
	}
}

func ExistsForDate(ctx context.Context, q Querier, urlHash, scrapeDate string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM jobs WHERE url_hash = ? AND scrape_date = ? LIMIT 1;`,
		urlHash, scrapeDate).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LatestByHash returns the most recent row for an identity hash, or ok=false
// when the hash has never been stored.
func LatestByHash(ctx context.Context, q Querier, urlHash string) (JobRow, bool, error) {
	var r JobRow
	err := q.QueryRowContext(ctx, `
SELECT id, title, company, location, url, url_hash, source, category,
       experience_level, job_type, salary, scrape_date, first_seen, last_seen
FROM jobs
WHERE url_hash = ?
ORDER BY scrape_date DESC, id DESC
LIMIT 1;`, urlHash).Scan(
		&r.ID, &r.Title, &r.Company, &r.Location, &r.URL, &r.URLHash,
		&r.Source, &r.Category, &r.Experience, &r.JobType, &r.Salary,
		&r.ScrapeDate, &r.FirstSeen, &r.LastSeen,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return JobRow{}, false, nil
	}
	if err != nil {
		return JobRow{}, false, err
	}
	return r, true, nil
}

func InsertJob(ctx context.Context, q Querier, r JobRow) (int64, error) {
	res, err := q.ExecContext(ctx, `
INSERT INTO jobs (title, company, location, url, url_hash, source, category,
                  experience_level, job_type, salary, scrape_date, first_seen, last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		r.Title, r.Company, r.Location, r.URL, r.URLHash, r.Source, r.Category,
		r.Experience, r.JobType, r.Salary, r.ScrapeDate, r.FirstSeen, r.LastSeen,
	)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	return res.LastInsertId()
}

// TouchLastSeen bumps last_seen on an earlier row when the same posting
// shows up again on a later day.
func TouchLastSeen(ctx context.Context, q Querier, id int64, date string) error {
	_, err := q.ExecContext(ctx,
		`UPDATE jobs SET last_seen = ? WHERE id = ? AND last_seen < ?;`,
		date, id, date)
	return err
}

type ListJobsOpts struct {
	Date   string // exact scrape_date; empty for all
	Source string
	Limit  int
}

func ListJobs(ctx context.Context, q Querier, opts ListJobsOpts) ([]JobRow, error) {
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	query := `
SELECT id, title, company, location, url, url_hash, source, category,
       experience_level, job_type, salary, scrape_date, first_seen, last_seen
FROM jobs`
	var where []string
	var args []any
	if opts.Date != "" {
		where = append(where, "scrape_date = ?")
		args = append(args, opts.Date)
	}
	if opts.Source != "" {
		where = append(where, "source = ?")
		args = append(args, opts.Source)
	}
	for i, w := range where {
		if i == 0 {
			query += "\nWHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += "\nORDER BY scrape_date DESC, company ASC, title ASC\nLIMIT ?;"
	args = append(args, opts.Limit)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobRow
	for rows.Next() {
		var r JobRow
		if err := rows.Scan(
			&r.ID, &r.Title, &r.Company, &r.Location, &r.URL, &r.URLHash,
			&r.Source, &r.Category, &r.Experience, &r.JobType, &r.Salary,
			&r.ScrapeDate, &r.FirstSeen, &r.LastSeen,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func CountJobsForDate(ctx context.Context, q Querier, date string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE scrape_date = ?;`, date).Scan(&n)
	return n, err
}
