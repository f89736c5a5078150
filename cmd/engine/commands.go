package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"ukjobs-engine/internal/config"
	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/engine"
	"ukjobs-engine/internal/events"
	"ukjobs-engine/internal/httpapi"
	"ukjobs-engine/internal/scheduler"
	"ukjobs-engine/internal/store"
)

type ServeCmd struct {
	Port int `help:"Override app.port from config."`
}

func (s *ServeCmd) Run(c *Context) error {
	cfg, err := loadConfig(c.ConfigPath)
	if err != nil {
		return err
	}
	if s.Port > 0 {
		cfg.App.Port = s.Port
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if n, err := store.FailStaleRuns(ctx, db.Pool); err != nil {
		return err
	} else if n > 0 {
		c.Logger.Warn().Int64("runs", n).Msg("marked stale runs failed")
	}
	if n, err := seedCompanies(ctx, db, cfg); err != nil {
		return err
	} else if n > 0 {
		c.Logger.Info().Int("companies", n).Msg("seeded company list")
	}

	eng, hub, err := newEngine(db, cfg, c)
	if err != nil {
		return err
	}

	var cfgVal, runStatus atomic.Value
	cfgVal.Store(cfg)
	runStatus.Store(httpapi.RunStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db,
		Hub:         hub,
		Log:         c.Logger,
		CfgVal:      &cfgVal,
		RunStatus:   &runStatus,
		UserCfgPath: c.ConfigPath,
		LoadCfg:     func() (config.Config, error) { return loadConfig(c.ConfigPath) },
		RunOnce:     eng.RunOnce,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover(c.Logger), httpapi.AccessLog(c.Logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = scheduler.DailyAt(ctx, cfg.Schedule.Hour, cfg.Schedule.Minute, "daily-aggregation", c.Logger,
			func(tctx context.Context) error {
				res := eng.RunOnce(tctx, "")
				if res.Status == domain.StatusFailed {
					return errors.New(res.Error)
				}
				return nil
			})
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	c.Logger.Info().Int("port", cfg.App.Port).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type RunCmd struct {
	Date string `help:"Run date (YYYY-MM-DD); defaults to today."`
}

func (r *RunCmd) Run(c *Context) error {
	cfg, err := loadConfig(c.ConfigPath)
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := store.FailStaleRuns(ctx, db.Pool); err != nil {
		return err
	}
	if _, err := seedCompanies(ctx, db, cfg); err != nil {
		return err
	}

	eng, _, err := newEngine(db, cfg, c)
	if err != nil {
		return err
	}

	res := eng.RunOnce(ctx, r.Date)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if res.Status == domain.StatusFailed {
		return errors.New(res.Error)
	}
	return nil
}

type SeedCmd struct{}

func (s *SeedCmd) Run(c *Context) error {
	cfg, err := loadConfig(c.ConfigPath)
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := seedCompanies(context.Background(), db, cfg)
	if err != nil {
		return err
	}
	c.Logger.Info().Int("companies", n).Msg("seed complete")
	return nil
}

func newEngine(db *store.DB, cfg config.Config, c *Context) (*engine.Engine, *events.Hub, error) {
	sources, careerSrc, err := buildSources(cfg, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	hub := events.NewHub()
	eng := engine.New(db, sources, careerSrc, hub, engine.Config{
		SourceTimeout:  time.Duration(cfg.Scrape.SourceTimeoutSeconds) * time.Second,
		LockPath:       cfg.App.LockPath,
		GeneralQueries: cfg.Scrape.GeneralQueries,
	}, c.Logger)
	return eng, hub, nil
}
