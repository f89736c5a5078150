package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy plus everything worth
// reporting about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	seen := map[string]bool{}
	var companies []Company
	for _, c := range out.Companies {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			res.addWarn("duplicate company %q dropped", name)
			continue
		}
		seen[key] = true
		companies = append(companies, Company{Name: name, CareerURL: strings.TrimSpace(c.CareerURL)})
	}
	out.Companies = companies

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if strings.TrimSpace(out.App.DBPath) == "" {
		res.addErr("app.db_path is required")
	}
	if out.Schedule.Hour < 0 || out.Schedule.Hour > 23 {
		res.addErr("schedule.hour must be 0..23")
	}
	if out.Schedule.Minute < 0 || out.Schedule.Minute > 59 {
		res.addErr("schedule.minute must be 0..59")
	}
	if out.Scrape.SourceTimeoutSeconds <= 0 {
		res.addErr("scrape.source_timeout_seconds must be > 0")
	} else if out.Scrape.SourceTimeoutSeconds < 30 {
		res.addWarn("scrape.source_timeout_seconds is very low (%d); slow boards will be cut off.", out.Scrape.SourceTimeoutSeconds)
	}
	if out.Scrape.MaxPages <= 0 {
		res.addErr("scrape.max_pages must be > 0")
	}

	var queries []string
	for _, q := range out.Scrape.GeneralQueries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		queries = append([]string(nil), DefaultGeneralQueries...)
	}
	out.Scrape.GeneralQueries = queries

	if out.Scrape.RequestDelayMinMS == 0 && out.Scrape.RequestDelayMaxMS == 0 {
		out.Scrape.RequestDelayMinMS = 1000
		out.Scrape.RequestDelayMaxMS = 3000
	}
	if out.Scrape.RequestDelayMinMS < 0 {
		res.addErr("scrape.request_delay_min_ms must be >= 0")
	}
	if out.Scrape.RequestDelayMaxMS < out.Scrape.RequestDelayMinMS {
		res.addErr("scrape.request_delay_max_ms must be >= request_delay_min_ms")
	}

	if !anySourceEnabled(out) {
		res.addErr("no sources enabled")
	}
	if out.Sources.Careers.Enabled && len(out.Companies) == 0 {
		res.addWarn("careers source enabled with an empty company list; it will do nothing.")
	}

	return out, res
}

func anySourceEnabled(cfg Config) bool {
	s := cfg.Sources
	for _, t := range []Toggle{
		s.DevITJobs, s.TheMuse, s.WebSearch, s.Jobicy, s.WorkingNomads,
		s.Remotive, s.Arbeitnow, s.Adzuna, s.Reed, s.Careers,
	} {
		if t.Enabled {
			return true
		}
	}
	return false
}
