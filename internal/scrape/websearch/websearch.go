// Package websearch discovers postings through DuckDuckGo's HTML endpoint.
// Results are links into job boards and career pages, so title, company and
// location are reconstructed from page titles and snippets.
package websearch

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/heuristics"
	"ukjobs-engine/internal/scrape/util"
)

const searchURL = "https://html.duckduckgo.com/html/"

// skipDomains never yield a direct posting link worth keeping.
var skipDomains = []string{
	"duckduckgo.com",
	"google.com",
	"bing.com",
	"youtube.com",
	"wikipedia.org",
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"tiktok.com",
	"quora.com",
	"medium.com",
}

type Config struct {
	MaxQueries  int
	ExtraQueries []string
	Pacer       *util.Pacer
}

type Source struct {
	cfg    Config
	client tls_client.HttpClient
	streak *util.FailureStreak
	log    zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) (*Source, error) {
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = 12
	}
	if cfg.Pacer == nil {
		cfg.Pacer = util.NewPacer(2*time.Second, 5*time.Second)
	}

	jar, _ := fhttpcookiejar.New(nil)
	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(30),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	return &Source{
		cfg:    cfg,
		client: client,
		streak: util.NewFailureStreak(5),
		log:    logger.With().Str("source", "websearch").Logger(),
	}, nil
}

func (s *Source) Name() string { return "websearch" }

func (s *Source) Available() bool { return true }

// BuildQueries combines per-company quoted queries, general discovery
// queries and configured extras, capped at max. Company names come first
// since they are the highest-signal.
func BuildQueries(companies, general, extras []string, max int) []string {
	var out []string
	for _, c := range companies {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		out = append(out, `"`+c+`" jobs UK hiring`)
	}
	for _, q := range general {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, q+" jobs hiring 2026")
	}
	if len(general) == 0 {
		out = append(out,
			"software engineer jobs UK hiring 2026",
			"data engineer jobs London hiring 2026",
			"devops engineer jobs UK remote",
		)
	}
	out = append(out, extras...)
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func (s *Source) Scrape(ctx context.Context, companies, queries []string) []domain.JobPosting {
	var out []domain.JobPosting
	seen := make(map[string]bool)

	all := BuildQueries(companies, queries, s.cfg.ExtraQueries, s.cfg.MaxQueries)

	for _, query := range all {
		if s.streak.Tripped() {
			s.log.Warn().Int("failures", s.streak.Count()).Msg("stopping after consecutive failures")
			break
		}
		if ctx.Err() != nil {
			break
		}

		jobs, err := s.search(ctx, query)
		if err != nil {
			s.log.Error().Err(err).Str("query", query).Msg("search failed")
			s.streak.Failure()
		} else {
			s.streak.Success()
			for _, j := range jobs {
				if !seen[j.URL] {
					seen[j.URL] = true
					out = append(out, j)
				}
			}
		}

		if err := s.cfg.Pacer.Wait(ctx); err != nil {
			break
		}
	}

	s.log.Info().Int("jobs", len(out)).Msg("extracted")
	return out
}

func (s *Source) search(ctx context.Context, query string) ([]domain.JobPosting, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, searchURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", util.RandomUA())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseResults(doc), nil
}

// ParseResults walks DuckDuckGo result blocks and reconstructs postings
// from page titles and snippets.
func ParseResults(doc *goquery.Document) []domain.JobPosting {
	var out []domain.JobPosting

	doc.Find(".result").Each(func(_ int, sel *goquery.Selection) {
		anchor := sel.Find(".result__a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		link := UnwrapRedirect(href)
		if link == "" || skipDomain(link) {
			return
		}

		pageTitle := strings.TrimSpace(anchor.Text())
		if pageTitle == "" || heuristics.IsSearchResultsPage(pageTitle) {
			return
		}
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())

		company := heuristics.ExtractCompany(pageTitle, hostOf(link))
		title := heuristics.CleanTitle(pageTitle, company)
		location := heuristics.ExtractLocation(pageTitle, snippet)

		j := domain.JobPosting{
			Title:           title,
			Company:         company,
			Location:        location,
			URL:             link,
			Source:          "websearch",
			Category:        heuristics.GuessCategory(title),
			ExperienceLevel: heuristics.GuessExperience(title),
			JobType:         heuristics.GuessJobType(pageTitle + " " + snippet),
		}
		if j.Valid() {
			out = append(out, j)
		}
	})

	return out
}

// UnwrapRedirect resolves DuckDuckGo's uddg indirection to the real target.
func UnwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if target, err := url.QueryUnescape(uddg); err == nil {
			return target
		}
	}
	if u.Scheme == "" {
		return ""
	}
	return href
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func skipDomain(link string) bool {
	host := hostOf(link)
	if host == "" {
		return true
	}
	for _, d := range skipDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
