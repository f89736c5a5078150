package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/events"
	"ukjobs-engine/internal/store"
)

func testDeps(t *testing.T) (Deps, *store.DB) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	var runStatus atomic.Value
	runStatus.Store(RunStatus{})

	return Deps{
		DB:        db,
		Hub:       events.NewHub(),
		Log:       zerolog.Nop(),
		RunStatus: &runStatus,
		RunOnce: func(ctx context.Context, date string) domain.RunResult {
			return domain.RunResult{Status: domain.StatusCompleted, Date: date}
		},
	}, db
}

func TestHealth(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestJobsListRejectsBadDate(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/jobs?date=28-08-2026")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var apiErr APIError
	require.NoError(t, json.NewDecoder(res.Body).Decode(&apiErr))
	require.Equal(t, "bad_date", apiErr.Error.Code)
}

func TestJobsListAndExport(t *testing.T) {
	deps, db := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	p := domain.JobPosting{Title: "Go Engineer", Company: "Acme", Location: "London, UK", URL: "https://x/1", Source: "reed"}
	_, err := store.InsertJob(context.Background(), db.Pool, store.NewJobRow(p, "h1", "2026-08-28"))
	require.NoError(t, err)

	res, err := http.Get(srv.URL + "/jobs?date=2026-08-28")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Jobs  []store.JobRow `json:"jobs"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, 1, body.Count)
	require.Equal(t, "Go Engineer", body.Jobs[0].Title)

	res, err = http.Get(srv.URL + "/jobs/export?date=2026-08-28")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "text/csv", res.Header.Get("Content-Type"))
}

func TestCompaniesToggle(t *testing.T) {
	deps, db := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	_, err := store.SeedCompanies(context.Background(), db.Pool,
		[]domain.Company{{Name: "Acme"}, {Name: "Globex"}})
	require.NoError(t, err)

	res, err := http.Post(srv.URL+"/companies", "application/json",
		strings.NewReader(`{"name":"Acme","active":false}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	companies, err := store.ListActiveCompanies(context.Background(), db.Pool)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	require.Equal(t, "Globex", companies[0].Name)

	res, err = http.Post(srv.URL+"/companies", "application/json",
		strings.NewReader(`{"active":true}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestTriggerRejectsBadDate(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/runs/run?date=tomorrow", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestTriggerRunsInBackground(t *testing.T) {
	deps, _ := testDeps(t)
	done := make(chan string, 1)
	deps.RunOnce = func(ctx context.Context, date string) domain.RunResult {
		done <- date
		return domain.RunResult{Status: domain.StatusCompleted, Date: date}
	}
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/runs/run?date=2026-08-28", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusAccepted, res.StatusCode)

	select {
	case date := <-done:
		require.Equal(t, "2026-08-28", date)
	case <-time.After(2 * time.Second):
		t.Fatal("run was never started")
	}
}

func TestTriggerConflictsWhileRunning(t *testing.T) {
	deps, _ := testDeps(t)
	deps.RunStatus.Store(RunStatus{Running: true})
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/runs/run", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestTriggerAcceptsExactlyOneOfConcurrentRequests(t *testing.T) {
	deps, _ := testDeps(t)
	release := make(chan struct{})
	deps.RunOnce = func(ctx context.Context, date string) domain.RunResult {
		<-release
		return domain.RunResult{Status: domain.StatusCompleted, Date: date}
	}
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	const n = 8
	codes := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := http.Post(srv.URL+"/runs/run", "application/json", nil)
			if err != nil {
				codes <- 0
				return
			}
			res.Body.Close()
			codes <- res.StatusCode
		}()
	}
	wg.Wait()
	close(release)

	accepted, conflicted := 0, 0
	for i := 0; i < n; i++ {
		switch <-codes {
		case http.StatusAccepted:
			accepted++
		case http.StatusConflict:
			conflicted++
		}
	}
	require.Equal(t, 1, accepted)
	require.Equal(t, n-1, conflicted)
}

func TestMethodNotAllowed(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/jobs", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
