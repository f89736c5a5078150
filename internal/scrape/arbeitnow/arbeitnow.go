// Package arbeitnow pulls from the Arbeitnow job-board API (free, no key).
// Pagination follows the links.next cursor up to the configured page cap.
package arbeitnow

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/heuristics"
	"ukjobs-engine/internal/scrape/util"
)

const baseURL = "https://www.arbeitnow.com/api/job-board-api"

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
		cfg.Pacer = util.NewPacer(time.Second, time.Second)
	}
	return &Source{
		cfg: cfg,
		hc:  util.NewHTTPClient(30 * time.Second),
		log: logger.With().Str("source", "arbeitnow").Logger(),
	}
}

func (s *Source) Name() string { return "arbeitnow" }

func (s *Source) Available() bool { return true }

type response struct {
	Data  []item `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

type item struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var out []domain.JobPosting

	for page := 1; page <= s.cfg.MaxPages; page++ {
		var resp response
		url := fmt.Sprintf("%s?page=%d", baseURL, page)
		if err := util.GetJSON(ctx, s.hc, url, nil, &resp); err != nil {
			s.log.Error().Err(err).Int("page", page).Msg("page fetch failed")
			break
		}
		if len(resp.Data) == 0 {
			break
		}

		for _, it := range resp.Data {
			location := strings.TrimSpace(it.Location)
			if location == "" && it.Remote {
				location = "Remote"
			}

			var jobType string
			if it.Remote {
				jobType = "Remote"
			}

			j := domain.JobPosting{
				Title:           strings.TrimSpace(it.Title),
				Company:         strings.TrimSpace(it.CompanyName),
				Location:        location,
				URL:             strings.TrimSpace(it.URL),
				Source:          "arbeitnow",
				Category:        category(it.Tags),
				ExperienceLevel: heuristics.GuessExperience(it.Title),
				JobType:         jobType,
			}
			if j.Valid() {
				out = append(out, j)
			}
		}

		if resp.Links.Next == "" {
			break
		}
		if err := s.cfg.Pacer.Wait(ctx); err != nil {
			break
		}
	}

	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

// category picks the first tag that isn't an employment-type marker.
func category(tags []string) string {
	skip := map[string]bool{
		"remote": true, "full-time": true, "part-time": true,
		"contract": true, "freelance": true,
	}
	for _, t := range tags {
		if !skip[strings.ToLower(t)] {
			return heuristicsTitle(t)
		}
	}
	return ""
}

func heuristicsTitle(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
