package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ukjobs-engine/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	require.Equal(t, 1, v)
}

func TestJobLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	posting := domain.JobPosting{
		Title:    "Platform Engineer",
		Company:  "Acme",
		Location: "London, UK",
		URL:      "https://acme.example/jobs/1",
		Source:   "careers",
	}
	row := NewJobRow(posting, "abc123", "2026-08-28")

	id, err := InsertJob(ctx, db.Pool, row)
	require.NoError(t, err)
	require.Positive(t, id)

	ok, err := ExistsForDate(ctx, db.Pool, "abc123", "2026-08-28")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ExistsForDate(ctx, db.Pool, "abc123", "2026-08-29")
	require.NoError(t, err)
	require.False(t, ok)

	latest, found, err := LatestByHash(ctx, db.Pool, "abc123")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2026-08-28", latest.FirstSeen)
	require.Equal(t, "Platform Engineer", latest.Title)

	_, found, err = LatestByHash(ctx, db.Pool, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, TouchLastSeen(ctx, db.Pool, id, "2026-08-29"))
	latest, _, err = LatestByHash(ctx, db.Pool, "abc123")
	require.NoError(t, err)
	require.Equal(t, "2026-08-29", latest.LastSeen)
	require.Equal(t, "2026-08-28", latest.FirstSeen)
}

func TestLatestByHashPrefersNewestDate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	p := domain.JobPosting{Title: "SRE", Company: "Acme", Location: "Leeds, UK", URL: "https://x/1", Source: "reed"}
	old := NewJobRow(p, "h1", "2026-08-01")
	_, err := InsertJob(ctx, db.Pool, old)
	require.NoError(t, err)

	recent := NewJobRow(p, "h1", "2026-08-20")
	recent.FirstSeen = "2026-08-01"
	_, err = InsertJob(ctx, db.Pool, recent)
	require.NoError(t, err)

	latest, found, err := LatestByHash(ctx, db.Pool, "h1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2026-08-20", latest.ScrapeDate)
	require.Equal(t, "2026-08-01", latest.FirstSeen)
}

func TestUniqueHashPerDate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	p := domain.JobPosting{Title: "Dev", Company: "Acme", Location: "Remote, UK", URL: "https://x/2", Source: "jobicy"}
	_, err := InsertJob(ctx, db.Pool, NewJobRow(p, "h2", "2026-08-28"))
	require.NoError(t, err)

	_, err = InsertJob(ctx, db.Pool, NewJobRow(p, "h2", "2026-08-28"))
	require.Error(t, err)
}

func TestListJobsFilters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for i, src := range []string{"reed", "adzuna", "reed"} {
		p := domain.JobPosting{Title: "T", Company: "C", Location: "UK", URL: "https://x/l", Source: src}
		_, err := InsertJob(ctx, db.Pool, NewJobRow(p, string(rune('a'+i)), "2026-08-28"))
		require.NoError(t, err)
	}

	jobs, err := ListJobs(ctx, db.Pool, ListJobsOpts{Date: "2026-08-28", Source: "reed"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	jobs, err = ListJobs(ctx, db.Pool, ListJobsOpts{Date: "2026-08-27"})
	require.NoError(t, err)
	require.Empty(t, jobs)

	n, err := CountJobsForDate(ctx, db.Pool, "2026-08-28")
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestRunLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, CreateRun(ctx, db.Pool, "run-1", "2026-08-28"))

	r, found, err := GetRun(ctx, db.Pool, "run-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.StatusRunning, r.Status)
	require.Nil(t, r.CompletedAt)

	require.NoError(t, CompleteRun(ctx, db.Pool, "run-1", 10, 7, 3, 1, ""))
	r, _, err = GetRun(ctx, db.Pool, "run-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, r.Status)
	require.Equal(t, 10, r.JobsFound)
	require.Equal(t, 7, r.NewJobs)
	require.Equal(t, 3, r.Duplicates)
	require.Equal(t, 1, r.FailedSources)
	require.NotNil(t, r.CompletedAt)
}

func TestFailStaleRuns(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, CreateRun(ctx, db.Pool, "stale", "2026-08-27"))
	require.NoError(t, CreateRun(ctx, db.Pool, "done", "2026-08-27"))
	require.NoError(t, CompleteRun(ctx, db.Pool, "done", 0, 0, 0, 0, ""))

	n, err := FailStaleRuns(ctx, db.Pool)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	r, _, err := GetRun(ctx, db.Pool, "stale")
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, r.Status)

	r, _, err = GetRun(ctx, db.Pool, "done")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, r.Status)
}

func TestSeedCompaniesOnlyWhenEmpty(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	defaults := []domain.Company{
		{Name: "Acme", CareerURL: "https://acme.example/careers"},
		{Name: "Globex"},
	}
	n, err := SeedCompanies(ctx, db.Pool, defaults)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// second seed is a no-op
	n, err = SeedCompanies(ctx, db.Pool, []domain.Company{{Name: "Initech"}})
	require.NoError(t, err)
	require.Zero(t, n)

	companies, err := ListActiveCompanies(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, companies, 2)

	require.NoError(t, SetCompanyActive(ctx, db.Pool, "Globex", false))
	companies, err = ListActiveCompanies(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	require.Equal(t, "Acme", companies[0].Name)
}
