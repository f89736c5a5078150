package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/config"
	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/adzuna"
	"ukjobs-engine/internal/scrape/arbeitnow"
	"ukjobs-engine/internal/scrape/careers"
	"ukjobs-engine/internal/scrape/devitjobs"
	"ukjobs-engine/internal/scrape/jobicy"
	"ukjobs-engine/internal/scrape/reed"
	"ukjobs-engine/internal/scrape/remotive"
	"ukjobs-engine/internal/scrape/themuse"
	"ukjobs-engine/internal/scrape/types"
	"ukjobs-engine/internal/scrape/util"
	"ukjobs-engine/internal/scrape/websearch"
	"ukjobs-engine/internal/scrape/workingnomads"
	"ukjobs-engine/internal/secrets"
	"ukjobs-engine/internal/store"
)

func loadConfig(path string) (config.Config, error) {
	if err := config.EnsureUserConfig(path); err != nil {
		return config.Config{}, fmt.Errorf("bootstrap config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	companiesPath := filepath.Join(filepath.Dir(path), "companies.yml")
	if err := config.OverlayCompanies(&cfg, companiesPath); err != nil {
		return cfg, err
	}

	normalized, res := config.NormalizeAndValidate(cfg)
	if !res.OK() {
		return cfg, fmt.Errorf("config validation failed: %v", res.Errors)
	}
	return normalized, nil
}

func openStore(cfg config.Config) (*store.DB, error) {
	if dir := filepath.Dir(cfg.App.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := store.Open(cfg.App.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func seedCompanies(ctx context.Context, db *store.DB, cfg config.Config) (int, error) {
	defaults := make([]domain.Company, 0, len(cfg.Companies))
	for _, c := range cfg.Companies {
		defaults = append(defaults, domain.Company{Name: c.Name, CareerURL: c.CareerURL})
	}
	return store.SeedCompanies(ctx, db.Pool, defaults)
}

// buildSources assembles the enabled sources in merge priority order:
// free high-yield boards first, then keyed APIs. Career pages run as their
// own pass and come last.
func buildSources(cfg config.Config, logger zerolog.Logger) ([]types.Source, *careers.Source, error) {
	pacer := util.NewPacer(
		time.Duration(cfg.Scrape.RequestDelayMinMS)*time.Millisecond,
		time.Duration(cfg.Scrape.RequestDelayMaxMS)*time.Millisecond,
	)
	var out []types.Source

	if cfg.Sources.DevITJobs.Enabled {
		out = append(out, devitjobs.New(logger))
	}
	if cfg.Sources.TheMuse.Enabled {
		out = append(out, themuse.New(themuse.Config{MaxPages: cfg.Scrape.MaxPages, Pacer: pacer}, logger))
	}
	if cfg.Sources.WebSearch.Enabled {
		ws, err := websearch.New(websearch.Config{
			MaxQueries:   cfg.Scrape.MaxSearchQueries,
			ExtraQueries: cfg.Scrape.ExtraQueries,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("websearch client: %w", err)
		}
		out = append(out, ws)
	}
	if cfg.Sources.Jobicy.Enabled {
		out = append(out, jobicy.New(logger))
	}
	if cfg.Sources.WorkingNomads.Enabled {
		out = append(out, workingnomads.New(logger))
	}
	if cfg.Sources.Remotive.Enabled {
		out = append(out, remotive.New(logger))
	}
	if cfg.Sources.Arbeitnow.Enabled {
		out = append(out, arbeitnow.New(arbeitnow.Config{MaxPages: cfg.Scrape.MaxPages}, logger))
	}
	if cfg.Sources.Adzuna.Enabled {
		out = append(out, adzuna.New(adzuna.Config{
			AppID:    secrets.Get(secrets.AdzunaAppID),
			AppKey:   secrets.Get(secrets.AdzunaAppKey),
			MaxPages: cfg.Scrape.MaxPages,
			Pacer:    pacer,
		}, logger))
	}
	if cfg.Sources.Reed.Enabled {
		out = append(out, reed.New(reed.Config{
			APIKey:   secrets.Get(secrets.ReedAPIKey),
			MaxPages: cfg.Scrape.MaxPages,
			Pacer:    pacer,
		}, logger))
	}

	var careerSrc *careers.Source
	if cfg.Sources.Careers.Enabled {
		careerSrc = careers.New(careers.Config{Pacer: pacer}, logger)
	}
	return out, careerSrc, nil
}
