// Package jobicy pulls from the Jobicy remote-jobs API (free, no key).
package jobicy

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/util"
)

const apiURL = "https://jobicy.com/api/v2/remote-jobs?count=50"

type Source struct {
	hc  *http.Client
	log zerolog.Logger
}

func New(logger zerolog.Logger) *Source {
	return &Source{
		hc:  util.NewHTTPClient(30 * time.Second),
		log: logger.With().Str("source", "jobicy").Logger(),
	}
}

func (s *Source) Name() string { return "jobicy" }

func (s *Source) Available() bool { return true }

type response struct {
	Jobs []item `json:"jobs"`
}

type item struct {
	JobTitle    string   `json:"jobTitle"`
	CompanyName string   `json:"companyName"`
	JobGeo      string   `json:"jobGeo"`
	URL         string   `json:"url"`
	JobIndustry []string `json:"jobIndustry"`
	JobType     []string `json:"jobType"`
	JobLevel    string   `json:"jobLevel"`
}

var jobTypes = map[string]string{
	"full-time":  "Full-time",
	"full_time":  "Full-time",
	"part-time":  "Part-time",
	"contract":   "Contract",
	"freelance":  "Freelance",
	"internship": "Internship",
}

func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var resp response
	headers := map[string]string{"User-Agent": util.RandomUA()}
	if err := util.GetJSON(ctx, s.hc, apiURL, headers, &resp); err != nil {
		s.log.Error().Err(err).Msg("api request failed")
		return nil
	}
	s.log.Info().Int("listings", len(resp.Jobs)).Msg("api returned")

	var out []domain.JobPosting
	for _, it := range resp.Jobs {
		j, ok := s.parse(it)
		if ok && j.Valid() {
			out = append(out, j)
		}
	}
	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

func (s *Source) parse(it item) (domain.JobPosting, bool) {
	title := strings.TrimSpace(it.JobTitle)
	company := strings.TrimSpace(it.CompanyName)
	u := strings.TrimSpace(it.URL)
	if title == "" || company == "" || u == "" {
		return domain.JobPosting{}, false
	}

	geo := strings.TrimSpace(it.JobGeo)
	if geo == "" {
		geo = "Remote"
	}

	jobType := "Remote"
	if len(it.JobType) > 0 {
		raw := strings.ToLower(strings.TrimSpace(it.JobType[0]))
		if mapped, ok := jobTypes[raw]; ok {
			jobType = "Remote, " + mapped
		} else if raw != "" {
			jobType = "Remote, " + it.JobType[0]
		}
	}

	return domain.JobPosting{
		Title:           title,
		Company:         company,
		Location:        geo,
		URL:             u,
		Source:          "jobicy",
		Category:        strings.Join(it.JobIndustry, ", "),
		ExperienceLevel: strings.TrimSpace(it.JobLevel),
		JobType:         jobType,
	}, true
}
