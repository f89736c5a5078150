// Package devitjobs pulls from DevITjobs.uk, a UK tech board whose free
// API returns every live listing in one response, salary bands included.
package devitjobs

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/util"
)

const apiURL = "https://devitjobs.uk/api/jobsLight"

type Source struct {
	hc  *http.Client
	log zerolog.Logger
}

func New(logger zerolog.Logger) *Source {
	return &Source{
		// the full dump is a few MB, give it headroom
		hc:  util.NewHTTPClient(60 * time.Second),
		log: logger.With().Str("source", "devitjobs").Logger(),
	}
}

func (s *Source) Name() string { return "devitjobs" }

// Available is unconditionally true: the API needs no key.
func (s *Source) Available() bool { return true }

type listing struct {
	Name             string   `json:"name"`
	Company          string   `json:"company"`
	ActualCity       string   `json:"actualCity"`
	Workplace        string   `json:"workplace"`
	JobURL           string   `json:"jobUrl"`
	AnnualSalaryFrom float64  `json:"annualSalaryFrom"`
	AnnualSalaryTo   float64  `json:"annualSalaryTo"`
	ExpLevel         string   `json:"expLevel"`
	Technologies     []string `json:"technologies"`
	TechCategory     string   `json:"techCategory"`
	JobType          string   `json:"jobType"`
}

var expLevels = map[string]string{
	"Junior":  "Entry Level",
	"Regular": "Mid Level",
	"Senior":  "Senior Level",
	"Lead":    "Lead / Principal",
}

func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var listings []listing
	if err := util.GetJSON(ctx, s.hc, apiURL, nil, &listings); err != nil {
		s.log.Error().Err(err).Msg("api request failed")
		return nil
	}
	s.log.Info().Int("listings", len(listings)).Msg("api returned")

	out := make([]domain.JobPosting, 0, len(listings))
	for _, l := range listings {
		j, ok := s.parse(l)
		if !ok || !j.Valid() {
			continue
		}
		out = append(out, j)
	}
	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

func (s *Source) parse(l listing) (domain.JobPosting, bool) {
	title := strings.TrimSpace(l.Name)
	company := strings.TrimSpace(l.Company)
	slug := strings.TrimSpace(l.JobURL)
	if title == "" || company == "" || slug == "" {
		return domain.JobPosting{}, false
	}

	var locParts []string
	if city := strings.TrimSpace(l.ActualCity); city != "" {
		locParts = append(locParts, city)
	}
	if wp := strings.TrimSpace(l.Workplace); wp != "" {
		locParts = append(locParts, strings.ToUpper(wp[:1])+wp[1:])
	}
	locParts = append(locParts, "UK")

	var salary string
	switch {
	case l.AnnualSalaryFrom > 0 && l.AnnualSalaryTo > 0:
		salary = fmt.Sprintf("£%.0f – £%.0f", l.AnnualSalaryFrom, l.AnnualSalaryTo)
	case l.AnnualSalaryFrom > 0:
		salary = fmt.Sprintf("From £%.0f", l.AnnualSalaryFrom)
	}

	level := expLevels[l.ExpLevel]
	if level == "" {
		level = l.ExpLevel
	}

	category := l.TechCategory
	if len(l.Technologies) > 0 {
		n := len(l.Technologies)
		if n > 3 {
			n = 3
		}
		category = strings.Join(l.Technologies[:n], ", ")
	}

	jobType := l.JobType
	if jobType == "" {
		jobType = "Full-Time"
	}
	switch strings.ToLower(l.Workplace) {
	case "remote":
		jobType = "Remote, " + jobType
	case "hybrid":
		jobType = "Hybrid, " + jobType
	}

	return domain.JobPosting{
		Title:           title,
		Company:         company,
		Location:        strings.Join(locParts, ", "),
		URL:             "https://devitjobs.uk/jobs/" + slug,
		Source:          "devitjobs",
		Category:        category,
		ExperienceLevel: level,
		JobType:         jobType,
		Salary:          salary,
	}, true
}
