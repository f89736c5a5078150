package types

import (
	"context"

	"ukjobs-engine/internal/domain"
)

// Source is one job-listing origin. Implementations never let an internal
// failure escape Scrape; errors are logged and yield a partial (possibly
// empty) result.
type Source interface {
	Name() string

	// Available is a pure function of static configuration (an API key
	// being present, for example). It must not perform network I/O.
	Available() bool

	// Scrape fetches and normalizes listings. companies are target-company
	// names to search for; queries are general discovery queries.
	Scrape(ctx context.Context, companies []string, queries []string) []domain.JobPosting
}

// CompanyPage pairs a target company with its career-page URL.
type CompanyPage struct {
	Name      string
	CareerURL string
}
