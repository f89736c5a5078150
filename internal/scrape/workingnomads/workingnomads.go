// Package workingnomads pulls from the Working Nomads curated remote list.
package workingnomads

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/util"
)

const apiURL = "https://www.workingnomads.com/api/exposed_jobs/"

type Source struct {
	hc  *http.Client
	log zerolog.Logger
}

func New(logger zerolog.Logger) *Source {
	return &Source{
		hc:  util.NewHTTPClient(30 * time.Second),
		log: logger.With().Str("source", "workingnomads").Logger(),
	}
}

func (s *Source) Name() string { return "workingnomads" }

func (s *Source) Available() bool { return true }

type item struct {
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	URL          string `json:"url"`
	Location     string `json:"location"`
	CategoryName string `json:"category_name"`
	Tags         string `json:"tags"`
}

func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var items []item
	if err := util.GetJSON(ctx, s.hc, apiURL, nil, &items); err != nil {
		s.log.Error().Err(err).Msg("api request failed")
		return nil
	}
	s.log.Info().Int("listings", len(items)).Msg("api returned")

	var out []domain.JobPosting
	for _, it := range items {
		j, ok := s.parse(it)
		if ok && j.Valid() {
			out = append(out, j)
		}
	}
	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

func (s *Source) parse(it item) (domain.JobPosting, bool) {
	title := strings.TrimSpace(it.Title)
	company := strings.TrimSpace(it.CompanyName)
	u := strings.TrimSpace(it.URL)
	if title == "" || company == "" || u == "" {
		return domain.JobPosting{}, false
	}

	location := strings.TrimSpace(it.Location)
	if location == "" {
		location = "Remote"
	}

	category := strings.TrimSpace(it.CategoryName)
	if category == "" && it.Tags != "" {
		var tags []string
		for _, t := range strings.Split(it.Tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
			if len(tags) == 3 {
				break
			}
		}
		category = strings.Join(tags, ", ")
	}

	return domain.JobPosting{
		Title:    title,
		Company:  company,
		Location: location,
		URL:      u,
		Source:   "workingnomads",
		Category: category,
		JobType:  "Remote",
	}, true
}
