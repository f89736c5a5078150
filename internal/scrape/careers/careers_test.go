package careers

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestParseWorkdayBoard(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		tenant  string
		site    string
		wantErr bool
	}{
		{
			name:   "plain board",
			in:     "https://acme.wd3.myworkdayjobs.com/External",
			tenant: "acme",
			site:   "External",
		},
		{
			name:   "locale prefix",
			in:     "https://globex.wd1.myworkdayjobs.com/en-GB/GlobexCareers",
			tenant: "globex",
			site:   "GlobexCareers",
		},
		{
			name:    "no site segment",
			in:      "https://acme.wd3.myworkdayjobs.com/",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := parseWorkdayBoard(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.tenant, b.tenant)
			require.Equal(t, tt.site, b.site)
		})
	}
}

func TestPlatformDetection(t *testing.T) {
	require.Equal(t, "acme", greenhouseRE.FindStringSubmatch("https://boards.greenhouse.io/acme")[1])
	require.Equal(t, "acme", leverRE.FindStringSubmatch("https://jobs.lever.co/acme")[1])
	require.Equal(t, "Acme", smartrecruitersRE.FindStringSubmatch("https://careers.smartrecruiters.com/Acme")[1])
	require.True(t, workdayRE.MatchString("https://acme.wd3.myworkdayjobs.com/External"))
	require.False(t, greenhouseRE.MatchString("https://acme.example/careers"))
}

const careerPage = `
<html><body>
<nav><a href="/about">About us</a><a href="/careers">See all</a></nav>
<main>
  <a href="/careers/platform-engineer-london">Platform Engineer</a>
  <a href="/careers/senior-data-engineer">Senior Data Engineer</a>
  <a href="/careers/platform-engineer-london">Platform Engineer</a>
  <a href="https://other.example/blog/hiring-guide">Read more</a>
</main>
</body></html>`

func TestScanLinks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(careerPage))
	require.NoError(t, err)
	base, _ := url.Parse("https://acme.example/careers")

	jobs := scanLinks(doc, base, "Acme")
	require.Len(t, jobs, 2) // duplicate and junk links dropped

	require.Equal(t, "Platform Engineer", jobs[0].Title)
	require.Equal(t, "Acme", jobs[0].Company)
	require.Equal(t, "https://acme.example/careers/platform-engineer-london", jobs[0].URL)
	require.Equal(t, "careers", jobs[0].Source)
	require.Equal(t, "Senior Level", jobs[1].ExperienceLevel)
}

const cardPage = `
<html><body>
<div class="job-card">
  <h3>Site Reliability Engineer</h3>
  <span class="location">Manchester, UK</span>
  <a href="/jobs/sre-42">View role</a>
</div>
<div class="job-card">
  <h3></h3>
  <a href="/jobs/untitled">View role</a>
</div>
</body></html>`

func TestScanCardsFallback(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardPage))
	require.NoError(t, err)
	base, _ := url.Parse("https://acme.example/jobs")

	jobs := scanCards(doc, base, "Acme")
	require.Len(t, jobs, 1)
	require.Equal(t, "Site Reliability Engineer", jobs[0].Title)
	require.Equal(t, "Manchester, UK", jobs[0].Location)
	require.Equal(t, "https://acme.example/jobs/sre-42", jobs[0].URL)
}

func TestResolveHref(t *testing.T) {
	base, _ := url.Parse("https://acme.example/careers/")
	require.Equal(t, "https://acme.example/jobs/1", resolveHref(base, "/jobs/1"))
	require.Equal(t, "https://other.example/x", resolveHref(base, "https://other.example/x"))
	require.Empty(t, resolveHref(base, "#apply"))
	require.Empty(t, resolveHref(base, "mailto:jobs@acme.example"))
	require.Empty(t, resolveHref(base, "javascript:void(0)"))
}
