// Package adzuna pulls UK listings from the Adzuna search API.
// Requires an app id and key; the source reports unavailable without them.
package adzuna

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/heuristics"
	"ukjobs-engine/internal/scrape/util"
)

const baseURL = "https://api.adzuna.com/v1/api/jobs/gb/search"

type Config struct {
	AppID          string
	AppKey         string
	MaxPages       int
	ResultsPerPage int
	Pacer          *util.Pacer
}

type Source struct {
	cfg Config
	hc  *http.Client
	log zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Source {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	if cfg.ResultsPerPage <= 0 {
		cfg.ResultsPerPage = 50
	}
	if cfg.Pacer == nil {
		cfg.Pacer = util.NewPacer(time.Second, 2*time.Second)
	}
	return &Source{
		cfg: cfg,
		hc:  util.NewHTTPClient(30 * time.Second),
		log: logger.With().Str("source", "adzuna").Logger(),
	}
}

func (s *Source) Name() string { return "adzuna" }

func (s *Source) Available() bool { return s.cfg.AppID != "" && s.cfg.AppKey != "" }

type response struct {
	Count   int      `json:"count"`
	Results []result `json:"results"`
}

type result struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	RedirectURL string `json:"redirect_url"`
	Category    struct {
		Label string `json:"label"`
	} `json:"category"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	ContractTime string  `json:"contract_time"`
}

// Scrape searches once per target company and once per general discovery
// query, paging each search up to MaxPages.
func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var out []domain.JobPosting

	for _, term := range util.SearchTerms(companies, queries, "software engineer UK") {
		if ctx.Err() != nil {
			break
		}
		jobs := s.search(ctx, term)
		s.log.Info().Int("jobs", len(jobs)).Str("query", term).Msg("query done")
		out = append(out, jobs...)
		if err := s.cfg.Pacer.Wait(ctx); err != nil {
			break
		}
	}

	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

func (s *Source) search(ctx context.Context, term string) []domain.JobPosting {
	var out []domain.JobPosting
	fetched := 0

	for page := 1; page <= s.cfg.MaxPages; page++ {
		q := url.Values{}
		q.Set("app_id", s.cfg.AppID)
		q.Set("app_key", s.cfg.AppKey)
		q.Set("results_per_page", fmt.Sprintf("%d", s.cfg.ResultsPerPage))
		q.Set("what", term)
		q.Set("where", "United Kingdom")
		q.Set("content-type", "application/json")

		var resp response
		reqURL := fmt.Sprintf("%s/%d?%s", baseURL, page, q.Encode())
		if err := util.GetJSON(ctx, s.hc, reqURL, nil, &resp); err != nil {
			s.log.Error().Err(err).Int("page", page).Str("query", term).Msg("page fetch failed")
			break
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, r := range resp.Results {
			out = appendJob(out, r)
		}
		fetched += len(resp.Results)

		if fetched >= resp.Count {
			break
		}
	}
	return out
}

func appendJob(out []domain.JobPosting, r result) []domain.JobPosting {
	j := domain.JobPosting{
		Title:           strings.TrimSpace(r.Title),
		Company:         strings.TrimSpace(r.Company.DisplayName),
		Location:        strings.TrimSpace(r.Location.DisplayName),
		URL:             strings.TrimSpace(r.RedirectURL),
		Source:          "adzuna",
		Category:        r.Category.Label,
		ExperienceLevel: heuristics.GuessExperience(r.Title),
		JobType:         contractTime(r.ContractTime),
		Salary:          salary(r.SalaryMin, r.SalaryMax),
	}
	if !j.Valid() {
		return out
	}
	return append(out, j)
}

func contractTime(raw string) string {
	switch raw {
	case "full_time":
		return "Full-time"
	case "part_time":
		return "Part-time"
	}
	return ""
}

func salary(min, max float64) string {
	if min <= 0 && max <= 0 {
		return ""
	}
	if min > 0 && max > 0 {
		return fmt.Sprintf("£%.0f – £%.0f", min, max)
	}
	if min > 0 {
		return fmt.Sprintf("£%.0f+", min)
	}
	return fmt.Sprintf("up to £%.0f", max)
}
