package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ukjobs-engine/internal/store"
)

type JobsHandler struct {
	DB *store.DB
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOpts(w, r)
	if !ok {
		return
	}

	jobs, err := store.ListJobs(r.Context(), h.DB.Pool, opts)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []store.JobRow{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// Export streams the same selection as CSV.
func (h JobsHandler) Export(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOpts(w, r)
	if !ok {
		return
	}

	jobs, err := store.ListJobs(r.Context(), h.DB.Pool, opts)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	name := "jobs"
	if opts.Date != "" {
		name += "-" + opts.Date
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"title", "company", "location", "url", "source", "category",
		"experience_level", "job_type", "salary", "scrape_date", "first_seen", "last_seen",
	})
	for _, j := range jobs {
		_ = cw.Write([]string{
			j.Title, j.Company, j.Location, j.URL, j.Source, j.Category,
			j.Experience, j.JobType, j.Salary, j.ScrapeDate, j.FirstSeen, j.LastSeen,
		})
	}
	cw.Flush()
}

func listOpts(w http.ResponseWriter, r *http.Request) (store.ListJobsOpts, bool) {
	var opts store.ListJobsOpts
	q := r.URL.Query()

	if d := q.Get("date"); d != "" {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			WriteError(w, r, http.StatusBadRequest, "bad_date", "date must be YYYY-MM-DD")
			return opts, false
		}
		opts.Date = d
	}
	opts.Source = q.Get("source")
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			WriteError(w, r, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return opts, false
		}
		opts.Limit = n
	}
	return opts, true
}
