// Package engine orchestrates one aggregation pass: fan out to the sources,
// merge in priority order, filter to UK scope, dedupe, and reconcile against
// prior days inside a single transaction.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"ukjobs-engine/internal/dedup"
	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/events"
	"ukjobs-engine/internal/scrape/careers"
	"ukjobs-engine/internal/scrape/types"
	"ukjobs-engine/internal/store"
	"ukjobs-engine/internal/ukfilter"
)

// DateLayout is the only accepted run-date form.
const DateLayout = "2006-01-02"

var ErrRunInProgress = errors.New("a run is already in progress")

type Config struct {
	SourceTimeout  time.Duration
	LockPath       string
	GeneralQueries []string // discovery searches handed to every source
}

type Engine struct {
	db      *store.DB
	sources []types.Source // fixed priority order; index decides merge order
	careers *careers.Source
	hub     *events.Hub
	lock    *flock.Flock
	cfg     Config
	log     zerolog.Logger
}

func New(db *store.DB, sources []types.Source, careerSrc *careers.Source, hub *events.Hub, cfg Config, logger zerolog.Logger) *Engine {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = 3 * time.Minute
	}
	if cfg.LockPath == "" {
		cfg.LockPath = "ukjobs-engine.lock"
	}
	return &Engine{
		db:      db,
		sources: sources,
		careers: careerSrc,
		hub:     hub,
		cfg:     cfg,
		lock:    flock.New(cfg.LockPath),
		log:     logger.With().Str("component", "engine").Logger(),
	}
}

// ValidateDate parses a run date, rejecting anything that is not YYYY-MM-DD.
func ValidateDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC().Format(DateLayout), nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return t.Format(DateLayout), nil
}

// RunOnce executes a full pass for the given date. All outcomes are reported
// through the returned RunResult; the error return covers only failures to
// even record the run.
func (e *Engine) RunOnce(ctx context.Context, rawDate string) domain.RunResult {
	date, err := ValidateDate(rawDate)
	if err != nil {
		return domain.RunResult{Status: domain.StatusFailed, Date: rawDate, Error: err.Error()}
	}

	locked, err := e.lock.TryLock()
	if err == nil && !locked {
		err = ErrRunInProgress
	}
	if err != nil {
		return domain.RunResult{Status: domain.StatusFailed, Date: date, Error: err.Error()}
	}
	defer func() { _ = e.lock.Unlock() }()

	runID := uuid.NewString()
	log := e.log.With().Str("run_id", runID).Str("date", date).Logger()

	if err := store.CreateRun(ctx, e.db.Pool, runID, date); err != nil {
		return domain.RunResult{Status: domain.StatusFailed, Date: date, Error: err.Error()}
	}
	e.publish(events.TypeRunStarted, map[string]string{"run_id": runID, "date": date})

	result, runErr := e.run(ctx, log, runID, date)
	if runErr != nil {
		log.Error().Err(runErr).Msg("run failed")
		_ = store.FailRun(context.WithoutCancel(ctx), e.db.Pool, runID, runErr.Error())
		e.publish(events.TypeRunFailed, map[string]string{"run_id": runID, "error": runErr.Error()})
		return domain.RunResult{Status: domain.StatusFailed, Date: date, Error: runErr.Error()}
	}

	e.publish(events.TypeRunCompleted, result)
	return result
}

func (e *Engine) run(ctx context.Context, log zerolog.Logger, runID, date string) (domain.RunResult, error) {
	started := time.Now()

	companies, err := store.ListActiveCompanies(ctx, e.db.Pool)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("load companies: %w", err)
	}
	names := companyNames(companies)

	merged, failedSources := e.collect(ctx, log, names, companyPages(companies))

	kept := merged[:0]
	for _, j := range merged {
		j = j.Trim()
		if !j.Valid() {
			continue
		}
		if !ukfilter.InScope(j.Location) {
			continue
		}
		kept = append(kept, j)
	}

	unique, dupCount := dedup.Deduplicate(kept)
	found := len(kept)

	newJobs, crossDayDups, err := e.reconcile(ctx, runID, date, unique, found, dupCount, failedSources)
	if err != nil {
		return domain.RunResult{}, err
	}

	log.Info().
		Int("found", found).
		Int("new", newJobs).
		Int("duplicates", dupCount+crossDayDups).
		Int("failed_sources", failedSources).
		Dur("elapsed", time.Since(started)).
		Msg("run completed")

	return domain.RunResult{
		Status:        domain.StatusCompleted,
		Date:          date,
		JobsFound:     found,
		NewJobs:       newJobs,
		Duplicates:    dupCount + crossDayDups,
		FailedSources: failedSources,
	}, nil
}

// collect runs every available source concurrently but merges by priority
// index, so batch dedup sees results in a stable order.
func (e *Engine) collect(ctx context.Context, log zerolog.Logger, names []string, pages []types.CompanyPage) ([]domain.JobPosting, int) {
	results := make([][]domain.JobPosting, len(e.sources)+1)
	skipped := 0

	var g errgroup.Group
	for i, src := range e.sources {
		if !src.Available() {
			log.Debug().Str("source", src.Name()).Msg("unavailable, skipping")
			skipped++
			continue
		}
		i, src := i, src
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, e.cfg.SourceTimeout)
			defer cancel()
			results[i] = src.Scrape(sctx, names, e.cfg.GeneralQueries)
			return nil
		})
	}
	if e.careers != nil && len(pages) > 0 {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, e.cfg.SourceTimeout)
			defer cancel()
			results[len(e.sources)] = e.careers.ScrapePages(sctx, pages)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	var merged []domain.JobPosting
	for i, src := range e.sources {
		if !src.Available() {
			continue
		}
		if len(results[i]) == 0 {
			log.Warn().Str("source", src.Name()).Msg("returned nothing, counting as failed")
			failed++
			continue
		}
		merged = append(merged, results[i]...)
	}
	merged = append(merged, results[len(e.sources)]...)
	return merged, failed
}

// reconcile inserts the batch and finalizes the run inside one transaction.
// A posting seen on an earlier day keeps its original first_seen; the
// earlier row's last_seen is bumped so listing stays consistent either way.
func (e *Engine) reconcile(ctx context.Context, runID, date string, unique []domain.JobPosting, found, batchDups, failedSources int) (newJobs, crossDayDups int, err error) {
	tx, err := e.db.Pool.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, j := range unique {
		hash := dedup.URLHash(j.URL)

		stored, errExists := store.ExistsForDate(ctx, tx, hash, date)
		if errExists != nil {
			return 0, 0, errExists
		}
		if stored {
			crossDayDups++
			continue
		}

		row := store.NewJobRow(j, hash, date)
		prior, ok, errPrior := store.LatestByHash(ctx, tx, hash)
		if errPrior != nil {
			return 0, 0, errPrior
		}
		if ok {
			row.FirstSeen = prior.FirstSeen
			if err := store.TouchLastSeen(ctx, tx, prior.ID, date); err != nil {
				return 0, 0, err
			}
			crossDayDups++
		} else {
			newJobs++
		}
		if _, err := store.InsertJob(ctx, tx, row); err != nil {
			return 0, 0, err
		}
	}

	if err := store.CompleteRun(ctx, tx, runID, found, newJobs, batchDups+crossDayDups, failedSources, ""); err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit: %w", err)
	}
	return newJobs, crossDayDups, nil
}

func (e *Engine) publish(typ string, data any) {
	if e.hub != nil {
		e.hub.Publish(events.New("", typ, data))
	}
}

func companyNames(companies []domain.Company) []string {
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.Name)
	}
	return out
}

func companyPages(companies []domain.Company) []types.CompanyPage {
	var out []types.CompanyPage
	for _, c := range companies {
		if strings.TrimSpace(c.CareerURL) == "" {
			continue
		}
		out = append(out, types.CompanyPage{Name: c.Name, CareerURL: c.CareerURL})
	}
	return out
}
