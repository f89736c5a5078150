package config

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultGeneralQueries are the discovery searches run against every
// query-capable source alongside the target-company names.
var DefaultGeneralQueries = []string{
	"software engineer UK",
	"data scientist UK",
	"data engineer UK",
	"product manager UK",
	"business analyst UK",
	"DevOps engineer UK",
	"machine learning engineer UK",
	"cybersecurity analyst UK",
	"finance analyst UK",
	"management consultant UK",
	"mechanical engineer UK",
	"electrical engineer UK",
	"civil engineer UK",
	"project manager UK",
	"UX designer UK",
	"cloud architect UK",
	"quantitative analyst UK",
	"solicitor UK",
	"actuary UK",
	"biomedical scientist UK",
}

// Default returns the config used when no file exists yet. Every source
// except the keyed ones is on; keyed sources still need credentials to
// report available.
func Default() Config {
	var cfg Config
	cfg.App.Port = 8080
	cfg.App.DataDir = "data"
	cfg.App.DBPath = "data/ukjobs.db"
	cfg.App.LockPath = "data/ukjobs.lock"
	cfg.Schedule.Hour = 7
	cfg.Schedule.Minute = 30
	cfg.Scrape.SourceTimeoutSeconds = 180
	cfg.Scrape.MaxPages = 3
	cfg.Scrape.MaxSearchQueries = 12
	cfg.Scrape.GeneralQueries = append([]string(nil), DefaultGeneralQueries...)
	cfg.Scrape.RequestDelayMinMS = 1000
	cfg.Scrape.RequestDelayMaxMS = 3000

	on := Toggle{Enabled: true}
	cfg.Sources.DevITJobs = on
	cfg.Sources.TheMuse = on
	cfg.Sources.WebSearch = on
	cfg.Sources.Jobicy = on
	cfg.Sources.WorkingNomads = on
	cfg.Sources.Remotive = on
	cfg.Sources.Arbeitnow = on
	cfg.Sources.Adzuna = on
	cfg.Sources.Reed = on
	cfg.Sources.Careers = on
	return cfg
}

// EnsureUserConfig writes the default config to path when no file exists
// there yet, creating the parent directory as needed.
func EnsureUserConfig(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return SaveAtomic(path, Default())
}
