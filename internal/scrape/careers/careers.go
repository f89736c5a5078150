// Package careers scrapes company career pages directly. Pages hosted on a
// known ATS (Greenhouse, Lever, SmartRecruiters, Workday) go through that
// platform's JSON API; anything else falls back to an HTML link scan.
package careers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/types"
	"ukjobs-engine/internal/scrape/util"
)

// maxPerCompany keeps one oversized board from drowning out the rest.
const maxPerCompany = 100

var (
	greenhouseRE     = regexp.MustCompile(`(?i)boards\.greenhouse\.io/([A-Za-z0-9_-]+)`)
	greenhouseEmbedRE = regexp.MustCompile(`(?i)greenhouse\.io/embed/job_board\?for=([A-Za-z0-9_-]+)`)
	leverRE          = regexp.MustCompile(`(?i)jobs\.lever\.co/([A-Za-z0-9_-]+)`)
	smartrecruitersRE = regexp.MustCompile(`(?i)(?:careers|jobs)\.smartrecruiters\.com/([A-Za-z0-9_-]+)`)
	workdayRE        = regexp.MustCompile(`(?i)myworkdayjobs\.com`)
	taleoRE          = regexp.MustCompile(`(?i)\.taleo\.net`)
)

type Config struct {
	Pacer   *util.Pacer
	Limiter *util.HostLimiter
}

type Source struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
	log     zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Source {
	if cfg.Pacer == nil {
		cfg.Pacer = util.NewPacer(time.Second, 3*time.Second)
	}
	if cfg.Limiter == nil {
		// Many companies share an ATS host, so limit per host, not per company.
		cfg.Limiter = util.NewHostLimiter(2, 2)
	}
	return &Source{
		cfg:     cfg,
		hc:      util.NewHTTPClient(30 * time.Second),
		limiter: cfg.Limiter,
		log:     logger.With().Str("source", "careers").Logger(),
	}
}

func (s *Source) Name() string { return "careers" }

func (s *Source) Available() bool { return true }

// ScrapePages visits each company page in order, pacing between companies.
// Failures are logged and skipped so one dead page never aborts the pass.
func (s *Source) ScrapePages(ctx context.Context, pages []types.CompanyPage) []domain.JobPosting {
	var out []domain.JobPosting

	for i, page := range pages {
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			if err := s.cfg.Pacer.Wait(ctx); err != nil {
				break
			}
		}

		jobs, err := s.scrapeCompany(ctx, page)
		if err != nil {
			s.log.Warn().Err(err).Str("company", page.Name).Msg("career page failed")
			continue
		}
		if len(jobs) > maxPerCompany {
			jobs = jobs[:maxPerCompany]
		}
		s.log.Debug().Str("company", page.Name).Int("jobs", len(jobs)).Msg("company done")
		out = append(out, jobs...)
	}

	s.log.Info().Int("jobs", len(out)).Int("companies", len(pages)).Msg("extracted")
	return out
}

func (s *Source) scrapeCompany(ctx context.Context, page types.CompanyPage) ([]domain.JobPosting, error) {
	if err := s.limiter.WaitURL(ctx, page.CareerURL); err != nil {
		return nil, err
	}
	switch {
	case greenhouseRE.MatchString(page.CareerURL):
		slug := greenhouseRE.FindStringSubmatch(page.CareerURL)[1]
		return s.fetchGreenhouse(ctx, page.Name, slug)
	case greenhouseEmbedRE.MatchString(page.CareerURL):
		slug := greenhouseEmbedRE.FindStringSubmatch(page.CareerURL)[1]
		return s.fetchGreenhouse(ctx, page.Name, slug)
	case leverRE.MatchString(page.CareerURL):
		slug := leverRE.FindStringSubmatch(page.CareerURL)[1]
		return s.fetchLever(ctx, page.Name, slug)
	case smartrecruitersRE.MatchString(page.CareerURL):
		slug := smartrecruitersRE.FindStringSubmatch(page.CareerURL)[1]
		return s.fetchSmartRecruiters(ctx, page.Name, slug)
	case workdayRE.MatchString(page.CareerURL):
		return s.fetchWorkday(ctx, page.Name, page.CareerURL)
	case taleoRE.MatchString(page.CareerURL):
		// Taleo boards render server side without a public JSON API.
		return s.scanGeneric(ctx, page)
	}
	return s.scanGeneric(ctx, page)
}

// fallbackLocation covers postings whose page omits one. The watch list is
// UK companies, so the country is the safe default.
func fallbackLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return "United Kingdom"
	}
	return loc
}
