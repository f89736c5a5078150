// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Company struct {
	Name      string `yaml:"name"`
	CareerURL string `yaml:"career_url"`
}

type Config struct {
	App struct {
		Port     int    `yaml:"port"`
		DataDir  string `yaml:"data_dir"`
		DBPath   string `yaml:"db_path"`
		LockPath string `yaml:"lock_path"`
	} `yaml:"app"`

	Schedule struct {
		Hour   int `yaml:"hour"`
		Minute int `yaml:"minute"`
	} `yaml:"schedule"`

	Scrape struct {
		SourceTimeoutSeconds int      `yaml:"source_timeout_seconds"`
		MaxPages             int      `yaml:"max_pages"`
		MaxSearchQueries     int      `yaml:"max_search_queries"`
		GeneralQueries       []string `yaml:"general_queries"`
		ExtraQueries         []string `yaml:"extra_queries"`
		RequestDelayMinMS    int      `yaml:"request_delay_min_ms"`
		RequestDelayMaxMS    int      `yaml:"request_delay_max_ms"`
	} `yaml:"scrape"`

	Sources struct {
		DevITJobs     Toggle `yaml:"devitjobs"`
		TheMuse       Toggle `yaml:"themuse"`
		WebSearch     Toggle `yaml:"websearch"`
		Jobicy        Toggle `yaml:"jobicy"`
		WorkingNomads Toggle `yaml:"workingnomads"`
		Remotive      Toggle `yaml:"remotive"`
		Arbeitnow     Toggle `yaml:"arbeitnow"`
		Adzuna        Toggle `yaml:"adzuna"`
		Reed          Toggle `yaml:"reed"`
		Careers       Toggle `yaml:"careers"`
	} `yaml:"sources"`

	Companies []Company `yaml:"companies"`
}

type Toggle struct {
	Enabled bool `yaml:"enabled"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
