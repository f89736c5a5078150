package websearch

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "uddg redirect",
			in:   "//duckduckgo.com/l/?uddg=https%3A%2F%2Facme.example%2Fjobs%2F1&rut=abc",
			want: "https://acme.example/jobs/1",
		},
		{
			name: "direct link",
			in:   "https://acme.example/jobs/2",
			want: "https://acme.example/jobs/2",
		},
		{
			name: "relative path rejected",
			in:   "/html/?q=next",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, UnwrapRedirect(tt.in))
		})
	}
}

func TestBuildQueries(t *testing.T) {
	qs := BuildQueries(
		[]string{"Acme", " ", "Globex"},
		[]string{"data scientist UK"},
		[]string{"sre jobs Manchester"}, 10)
	require.Contains(t, qs, `"Acme" jobs UK hiring`)
	require.Contains(t, qs, `"Globex" jobs UK hiring`)
	require.Contains(t, qs, "data scientist UK jobs hiring 2026")
	require.Contains(t, qs, "sre jobs Manchester")

	capped := BuildQueries([]string{"A", "B", "C", "D"}, nil, nil, 3)
	require.Len(t, capped, 3)
}

const resultsPage = `
<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fcareers.acme.example%2Fjobs%2F42">
    Senior Go Engineer at Acme
  </a>
  <div class="result__snippet">Acme is hiring a Senior Go Engineer in London. Hybrid working.</div>
</div>
<div class="result">
  <a class="result__a" href="https://uk.indeed.com/jobs?q=go+engineer">
    Go Engineer Jobs in London - 1,234 Jobs | Indeed
  </a>
  <div class="result__snippet">Apply to Go Engineer jobs.</div>
</div>
<div class="result">
  <a class="result__a" href="https://en.wikipedia.org/wiki/Go_(programming_language)">
    Go (programming language) - Wikipedia
  </a>
  <div class="result__snippet">Go is a statically typed language.</div>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resultsPage))
	require.NoError(t, err)

	jobs := ParseResults(doc)
	require.Len(t, jobs, 1) // aggregate page and denylisted domain dropped

	j := jobs[0]
	require.Equal(t, "https://careers.acme.example/jobs/42", j.URL)
	require.Equal(t, "websearch", j.Source)
	require.Equal(t, "Acme", j.Company)
	require.Contains(t, j.Title, "Senior Go Engineer")
	require.Equal(t, "Senior Level", j.ExperienceLevel)
	require.NotEmpty(t, j.Location)
}
