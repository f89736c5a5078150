package domain

import "time"

// Run statuses. A run is terminal once it leaves StatusRunning.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ScrapeRun is one execution record, mutated only by the engine.
type ScrapeRun struct {
	ID            string     `json:"id"`
	RunDate       string     `json:"run_date"` // YYYY-MM-DD
	Status        string     `json:"status"`
	JobsFound     int        `json:"jobs_found"`
	NewJobs       int        `json:"new_jobs"`
	Duplicates    int        `json:"duplicates"`
	FailedSources int        `json:"failed_sources"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Log           string     `json:"log,omitempty"`
}

// RunResult is the contract the scheduler and the manual trigger depend on.
type RunResult struct {
	Status        string `json:"status"`
	Date          string `json:"date"`
	JobsFound     int    `json:"jobs_found"`
	NewJobs       int    `json:"new_jobs"`
	Duplicates    int    `json:"duplicates"`
	FailedSources int    `json:"failed_sources"`
	Error         string `json:"error,omitempty"`
}
