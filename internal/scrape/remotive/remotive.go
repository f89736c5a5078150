// Package remotive pulls from the Remotive remote-jobs API (free, no key).
package remotive

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/heuristics"
	"ukjobs-engine/internal/scrape/util"
)

const apiURL = "https://remotive.com/api/remote-jobs?limit=500"

type Source struct {
	hc  *http.Client
	log zerolog.Logger
}

func New(logger zerolog.Logger) *Source {
	return &Source{
		hc:  util.NewHTTPClient(30 * time.Second),
		log: logger.With().Str("source", "remotive").Logger(),
	}
}

func (s *Source) Name() string { return "remotive" }

func (s *Source) Available() bool { return true }

type response struct {
	Jobs []item `json:"jobs"`
}

type item struct {
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	URL                       string `json:"url"`
	Category                  string `json:"category"`
	JobType                   string `json:"job_type"`
}

func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var resp response
	if err := util.GetJSON(ctx, s.hc, apiURL, nil, &resp); err != nil {
		s.log.Error().Err(err).Msg("api request failed")
		return nil
	}
	s.log.Info().Int("listings", len(resp.Jobs)).Msg("api returned")

	var out []domain.JobPosting
	for _, it := range resp.Jobs {
		location := strings.TrimSpace(it.CandidateRequiredLocation)
		if location == "" {
			location = "Remote"
		}

		j := domain.JobPosting{
			Title:           strings.TrimSpace(it.Title),
			Company:         strings.TrimSpace(it.CompanyName),
			Location:        location,
			URL:             strings.TrimSpace(it.URL),
			Source:          "remotive",
			Category:        strings.TrimSpace(it.Category),
			ExperienceLevel: heuristics.GuessExperience(it.Title),
			JobType:         jobType(it.JobType),
		}
		if j.Valid() {
			out = append(out, j)
		}
	}
	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

func jobType(raw string) string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	if raw == "" {
		return ""
	}
	fields := strings.Fields(raw)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
	}
	return strings.Join(fields, " ")
}
