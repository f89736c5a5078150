// Package reed pulls from the Reed.co.uk jobseeker API.
// Auth is HTTP basic with the API key as username and a blank password.
package reed

import (
	"context"
	"encoding/base64"
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

const baseURL = "https://www.reed.co.uk/api/1.0/search"

type Config struct {
	APIKey   string
	MaxPages int
	PageSize int
	Pacer    *util.Pacer
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
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.Pacer == nil {
		cfg.Pacer = util.NewPacer(time.Second, 2*time.Second)
	}
	return &Source{
		cfg: cfg,
		hc:  util.NewHTTPClient(30 * time.Second),
		log: logger.With().Str("source", "reed").Logger(),
	}
}

func (s *Source) Name() string { return "reed" }

func (s *Source) Available() bool { return s.cfg.APIKey != "" }

type response struct {
	Results      []result `json:"results"`
	TotalResults int      `json:"totalResults"`
}

type result struct {
	JobTitle     string  `json:"jobTitle"`
	EmployerName string  `json:"employerName"`
	LocationName string  `json:"locationName"`
	JobURL       string  `json:"jobUrl"`
	MinimumSalary float64 `json:"minimumSalary"`
	MaximumSalary float64 `json:"maximumSalary"`
}

func (s *Source) authHeader() map[string]string {
	token := base64.StdEncoding.EncodeToString([]byte(s.cfg.APIKey + ":"))
	return map[string]string{"Authorization": "Basic " + token}
}

// Scrape searches once per target company and once per general discovery
// query, paging each search with skip/take against totalResults.
func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var out []domain.JobPosting
	headers := s.authHeader()

	for _, term := range util.SearchTerms(companies, queries, "software engineer UK") {
		if ctx.Err() != nil {
			break
		}
		jobs := s.search(ctx, headers, term)
		s.log.Info().Int("jobs", len(jobs)).Str("query", term).Msg("query done")
		out = append(out, jobs...)
		if err := s.cfg.Pacer.Wait(ctx); err != nil {
			break
		}
	}

	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

func (s *Source) search(ctx context.Context, headers map[string]string, term string) []domain.JobPosting {
	var out []domain.JobPosting

	for page := 0; page < s.cfg.MaxPages; page++ {
		q := url.Values{}
		q.Set("keywords", term)
		q.Set("locationName", "United Kingdom")
		q.Set("resultsToTake", fmt.Sprintf("%d", s.cfg.PageSize))
		q.Set("resultsToSkip", fmt.Sprintf("%d", page*s.cfg.PageSize))

		var resp response
		if err := util.GetJSON(ctx, s.hc, baseURL+"?"+q.Encode(), headers, &resp); err != nil {
			s.log.Error().Err(err).Int("page", page).Str("query", term).Msg("page fetch failed")
			break
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, r := range resp.Results {
			location := strings.TrimSpace(r.LocationName)
			if location != "" && !strings.Contains(strings.ToLower(location), "uk") {
				location += ", UK"
			}
			j := domain.JobPosting{
				Title:           strings.TrimSpace(r.JobTitle),
				Company:         strings.TrimSpace(r.EmployerName),
				Location:        location,
				URL:             strings.TrimSpace(r.JobURL),
				Source:          "reed",
				Category:        heuristics.GuessCategory(r.JobTitle),
				ExperienceLevel: heuristics.GuessExperience(r.JobTitle),
				Salary:          salary(r.MinimumSalary, r.MaximumSalary),
			}
			if j.Valid() {
				out = append(out, j)
			}
		}

		if (page+1)*s.cfg.PageSize >= resp.TotalResults {
			break
		}
	}
	return out
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
