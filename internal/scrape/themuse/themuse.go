// Package themuse pulls from The Muse public jobs API. No key required;
// pagination is bounded by the page_count the API reports.
package themuse

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/util"
)

const baseURL = "https://www.themuse.com/api/public/jobs"

// Locations that cover the bulk of The Muse's UK inventory.
var ukLocations = []string{
	"London, United Kingdom",
	"United Kingdom",
	"Flexible / Remote",
}

type Config struct {
	MaxPages int
	Pacer    *util.Pacer
}

type Source struct {
	cfg Config
	hc  *http.Client
	log zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Source {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 5
	}
	if cfg.Pacer == nil {
		cfg.Pacer = util.NewPacer(500*time.Millisecond, 1500*time.Millisecond)
	}
	return &Source{
		cfg: cfg,
		hc:  util.NewHTTPClient(30 * time.Second),
		log: logger.With().Str("source", "themuse").Logger(),
	}
}

func (s *Source) Name() string { return "themuse" }

func (s *Source) Available() bool { return true }

type response struct {
	PageCount int      `json:"page_count"`
	Results   []result `json:"results"`
}

type result struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Company   struct {
		Name string `json:"name"`
	} `json:"company"`
	Locations []struct {
		Name string `json:"name"`
	} `json:"locations"`
	Levels []struct {
		Name string `json:"name"`
	} `json:"levels"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Refs struct {
		LandingPage string `json:"landing_page"`
	} `json:"refs"`
}

func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var jobs []domain.JobPosting
	seen := make(map[int64]bool)

	for _, location := range ukLocations {
		locJobs, err := s.fetchLocation(ctx, location, seen)
		if err != nil {
			s.log.Error().Err(err).Str("location", location).Msg("fetch failed")
		} else {
			s.log.Info().Int("jobs", len(locJobs)).Str("location", location).Msg("fetched")
			jobs = append(jobs, locJobs...)
		}

		if err := s.cfg.Pacer.Wait(ctx); err != nil {
			break
		}
	}

	s.log.Info().Int("jobs", len(jobs)).Msg("extracted")
	return jobs
}

func (s *Source) fetchLocation(ctx context.Context, location string, seen map[int64]bool) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting

	for page := 0; page < s.cfg.MaxPages; page++ {
		q := url.Values{}
		q.Set("location", location)
		q.Set("page", fmt.Sprint(page))

		var resp response
		if err := util.GetJSON(ctx, s.hc, baseURL+"?"+q.Encode(), nil, &resp); err != nil {
			if page == 0 {
				return jobs, err
			}
			s.log.Warn().Err(err).Int("page", page).Msg("page fetch failed")
			break
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, r := range resp.Results {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true

			j := s.parse(r, location)
			if j.Valid() {
				jobs = append(jobs, j)
			}
		}

		if page+1 >= resp.PageCount {
			break
		}
		if err := s.cfg.Pacer.Wait(ctx); err != nil {
			return jobs, err
		}
	}
	return jobs, nil
}

func (s *Source) parse(r result, queriedLocation string) domain.JobPosting {
	company := strings.TrimSpace(r.Company.Name)

	var locNames []string
	for _, l := range r.Locations {
		if name := strings.TrimSpace(l.Name); name != "" {
			locNames = append(locNames, name)
		}
	}
	loc := queriedLocation
	if len(locNames) > 0 {
		loc = strings.Join(locNames, ", ")
	}

	landing := strings.TrimSpace(r.Refs.LandingPage)
	if landing == "" && r.ShortName != "" && company != "" {
		slug := strings.ToLower(strings.ReplaceAll(company, " ", "-"))
		landing = "https://www.themuse.com/jobs/" + slug + "/" + r.ShortName
	}

	var level string
	if len(r.Levels) > 0 {
		level = strings.TrimSpace(r.Levels[0].Name)
	}
	var category string
	if len(r.Categories) > 0 {
		category = strings.TrimSpace(r.Categories[0].Name)
	}

	return domain.JobPosting{
		Title:           strings.TrimSpace(r.Name),
		Company:         company,
		Location:        loc,
		URL:             landing,
		Source:          "themuse",
		Category:        category,
		ExperienceLevel: level,
		JobType:         guessJobType(r.Name, loc),
	}
}

func guessJobType(title, location string) string {
	text := strings.ToLower(title + " " + location)
	var parts []string
	if strings.Contains(text, "flexible") || strings.Contains(text, "remote") {
		parts = append(parts, "Remote")
	}
	if strings.Contains(text, "part-time") || strings.Contains(text, "part time") {
		parts = append(parts, "Part-time")
	}
	if strings.Contains(text, "contract") {
		parts = append(parts, "Contract")
	}
	if strings.Contains(text, "intern") {
		parts = append(parts, "Internship")
	}
	if len(parts) == 0 {
		parts = append(parts, "Full-time")
	}
	return strings.Join(parts, ", ")
}
