package careers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/scrape/heuristics"
	"ukjobs-engine/internal/scrape/util"
)

// Greenhouse board API.

type ghResponse struct {
	Jobs []struct {
		Title       string `json:"title"`
		AbsoluteURL string `json:"absolute_url"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
	} `json:"jobs"`
}

func (s *Source) fetchGreenhouse(ctx context.Context, company, slug string) ([]domain.JobPosting, error) {
	var resp ghResponse
	apiURL := fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs", slug)
	if err := util.GetJSON(ctx, s.hc, apiURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("greenhouse %s: %w", slug, err)
	}

	var out []domain.JobPosting
	for _, j := range resp.Jobs {
		p := domain.JobPosting{
			Title:           strings.TrimSpace(j.Title),
			Company:         company,
			Location:        fallbackLocation(j.Location.Name),
			URL:             strings.TrimSpace(j.AbsoluteURL),
			Source:          "careers",
			Category:        heuristics.GuessCategory(j.Title),
			ExperienceLevel: heuristics.GuessExperience(j.Title),
		}
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Lever postings API.

type leverPosting struct {
	Text       string `json:"text"`
	HostedURL  string `json:"hostedUrl"`
	Categories struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	WorkplaceType string `json:"workplaceType"`
}

func (s *Source) fetchLever(ctx context.Context, company, slug string) ([]domain.JobPosting, error) {
	var postings []leverPosting
	apiURL := fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", slug)
	if err := util.GetJSON(ctx, s.hc, apiURL, nil, &postings); err != nil {
		return nil, fmt.Errorf("lever %s: %w", slug, err)
	}

	var out []domain.JobPosting
	for _, lp := range postings {
		location := strings.TrimSpace(lp.Categories.Location)
		if location == "" && strings.EqualFold(lp.WorkplaceType, "remote") {
			location = "Remote"
		}
		p := domain.JobPosting{
			Title:           strings.TrimSpace(lp.Text),
			Company:         company,
			Location:        fallbackLocation(location),
			URL:             strings.TrimSpace(lp.HostedURL),
			Source:          "careers",
			Category:        lp.Categories.Team,
			ExperienceLevel: heuristics.GuessExperience(lp.Text),
			JobType:         lp.Categories.Commitment,
		}
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out, nil
}

// SmartRecruiters postings API.

type srResponse struct {
	Content []struct {
		Name     string `json:"name"`
		ID       string `json:"id"`
		Location struct {
			City    string `json:"city"`
			Country string `json:"country"`
			Remote  bool   `json:"remote"`
		} `json:"location"`
	} `json:"content"`
}

func (s *Source) fetchSmartRecruiters(ctx context.Context, company, slug string) ([]domain.JobPosting, error) {
	var resp srResponse
	apiURL := fmt.Sprintf("https://api.smartrecruiters.com/v1/companies/%s/postings", slug)
	if err := util.GetJSON(ctx, s.hc, apiURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("smartrecruiters %s: %w", slug, err)
	}

	var out []domain.JobPosting
	for _, c := range resp.Content {
		location := srLocation(c.Location.City, c.Location.Country, c.Location.Remote)
		p := domain.JobPosting{
			Title:           strings.TrimSpace(c.Name),
			Company:         company,
			Location:        fallbackLocation(location),
			URL:             fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", slug, c.ID),
			Source:          "careers",
			Category:        heuristics.GuessCategory(c.Name),
			ExperienceLevel: heuristics.GuessExperience(c.Name),
		}
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out, nil
}

func srLocation(city, country string, remote bool) string {
	var parts []string
	if city != "" {
		parts = append(parts, city)
	}
	if country != "" {
		parts = append(parts, strings.ToUpper(country))
	}
	if len(parts) == 0 && remote {
		return "Remote"
	}
	return strings.Join(parts, ", ")
}

// Workday CXS API. The board URL encodes tenant and site:
// https://<tenant>.wdN.myworkdayjobs.com[/<locale>]/<site>

type wdBoard struct {
	scheme string
	host   string
	tenant string
	site   string
}

type wdRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type wdResponse struct {
	Total       int `json:"total"`
	JobPostings []struct {
		Title         string `json:"title"`
		ExternalPath  string `json:"externalPath"`
		LocationsText string `json:"locationsText"`
	} `json:"jobPostings"`
}

func parseWorkdayBoard(raw string) (wdBoard, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return wdBoard{}, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	parts := strings.Split(u.Host, ".")
	if len(parts) < 3 {
		return wdBoard{}, fmt.Errorf("unexpected workday host %q", u.Host)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 || segs[0] == "" {
		return wdBoard{}, fmt.Errorf("workday url %q has no site segment", raw)
	}
	// A leading xx-XX segment is a locale, not the site.
	if len(segs) >= 2 && len(segs[0]) == 5 && segs[0][2] == '-' {
		segs = segs[1:]
	}

	return wdBoard{
		scheme: u.Scheme,
		host:   u.Host,
		tenant: parts[0],
		site:   segs[len(segs)-1],
	}, nil
}

func (s *Source) fetchWorkday(ctx context.Context, company, boardURL string) ([]domain.JobPosting, error) {
	b, err := parseWorkdayBoard(boardURL)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s://%s/wday/cxs/%s/%s/jobs", b.scheme, b.host, b.tenant, b.site)

	payload, _ := json.Marshal(wdRequest{
		AppliedFacets: map[string]any{},
		Limit:         50,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", util.RandomUA())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("workday %s status %d", b.tenant, res.StatusCode)
	}

	var resp wdResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, err
	}
	if resp.Total == 0 && len(resp.JobPostings) == 0 {
		return nil, errors.New("workday board returned no postings")
	}

	var out []domain.JobPosting
	for _, wj := range resp.JobPostings {
		path := strings.TrimSpace(wj.ExternalPath)
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		p := domain.JobPosting{
			Title:           strings.TrimSpace(wj.Title),
			Company:         company,
			Location:        fallbackLocation(wj.LocationsText),
			URL:             fmt.Sprintf("%s://%s%s", b.scheme, b.host, path),
			Source:          "careers",
			Category:        heuristics.GuessCategory(wj.Title),
			ExperienceLevel: heuristics.GuessExperience(wj.Title),
		}
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out, nil
}
