package careers

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/heuristics"
	"ukjobs-engine/internal/scrape/types"
	"ukjobs-engine/internal/scrape/util"
)

// jobPathRE matches link paths that usually lead to an individual posting.
var jobPathRE = regexp.MustCompile(`(?i)/(?:job|jobs|careers?|positions?|openings?|vacanc(?:y|ies)|roles?)/[^/]`)

// cardSelectors are tried when a page lists postings in repeated blocks
// rather than plain links.
var cardSelectors = []string{
	".job", ".job-listing", ".job-card", ".position", ".opening", ".vacancy",
	"[class*='job-item']", "[class*='JobCard']", "li.posting",
}

var junkLinkRE = regexp.MustCompile(`(?i)^(view|apply|learn more|see all|all jobs|read more|show more)\b`)

// scanGeneric fetches the page and harvests posting links, falling back to
// job-card blocks when the link scan finds nothing.
func (s *Source) scanGeneric(ctx context.Context, page types.CompanyPage) ([]domain.JobPosting, error) {
	headers := map[string]string{"User-Agent": util.RandomUA()}
	doc, err := util.FetchDocument(ctx, s.hc, page.CareerURL, headers)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(page.CareerURL)
	if err != nil {
		return nil, err
	}

	jobs := scanLinks(doc, base, page.Name)
	if len(jobs) == 0 {
		jobs = scanCards(doc, base, page.Name)
	}
	return jobs, nil
}

func scanLinks(doc *goquery.Document, base *url.URL, company string) []domain.JobPosting {
	var out []domain.JobPosting
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs := resolveHref(base, href)
		if abs == "" || !jobPathRE.MatchString(abs) {
			return
		}
		if seen[abs] {
			return
		}
		seen[abs] = true

		title := util.CleanText(a.Text())
		if title == "" || junkLinkRE.MatchString(title) || len(title) > 120 {
			return
		}

		j := domain.JobPosting{
			Title:           title,
			Company:         company,
			Location:        fallbackLocation(heuristics.ExtractLocation(title, "")),
			URL:             abs,
			Source:          "careers",
			Category:        heuristics.GuessCategory(title),
			ExperienceLevel: heuristics.GuessExperience(title),
		}
		if j.Valid() {
			out = append(out, j)
		}
	})
	return out
}

func scanCards(doc *goquery.Document, base *url.URL, company string) []domain.JobPosting {
	var out []domain.JobPosting
	seen := make(map[string]bool)

	for _, selector := range cardSelectors {
		doc.Find(selector).Each(func(_ int, card *goquery.Selection) {
			a := card.Find("a[href]").First()
			href, _ := a.Attr("href")
			abs := resolveHref(base, href)
			if abs == "" || seen[abs] {
				return
			}

			title := util.CleanText(card.Find("h1,h2,h3,h4,.title,[class*='title']").First().Text())
			if title == "" {
				title = util.CleanText(a.Text())
			}
			if title == "" || junkLinkRE.MatchString(title) {
				return
			}
			seen[abs] = true

			location := util.CleanText(card.Find(".location,[class*='location']").First().Text())
			if location == "" {
				location = heuristics.ExtractLocation(title, util.CleanText(card.Text()))
			}

			j := domain.JobPosting{
				Title:           title,
				Company:         company,
				Location:        fallbackLocation(location),
				URL:             abs,
				Source:          "careers",
				Category:        heuristics.GuessCategory(title),
				ExperienceLevel: heuristics.GuessExperience(title),
			}
			if j.Valid() {
				out = append(out, j)
			}
		})
		if len(out) > 0 {
			break
		}
	}
	return out
}

func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	abs.Fragment = ""
	return abs.String()
}
