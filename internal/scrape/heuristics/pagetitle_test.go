package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompanySeparator(t *testing.T) {
	cases := []struct {
		title, domain, want string
	}{
		{"Software Engineer - Monzo", "monzo.com", "Monzo"},
		{"Data Scientist | Revolut", "revolut.com", "Revolut"},
		{"Platform Engineer – Starling Bank", "starlingbank.com", "Starling Bank"},
		{"DevOps Engineer at Wise", "wise.com", "Wise"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractCompany(tc.title, tc.domain), "title=%q", tc.title)
	}
}

func TestExtractCompanyBoardSuffix(t *testing.T) {
	got := ExtractCompany("Senior Engineer - Octopus Energy | LinkedIn", "uk.linkedin.com")
	assert.Equal(t, "Octopus Energy", got)
}

func TestExtractCompanyFromDomain(t *testing.T) {
	assert.Equal(t, "Deepmind", ExtractCompany("Open roles", "careers.deepmind.com"))
	assert.Equal(t, "Acme Widgets", ExtractCompany("Openings", "acme-widgets.co.uk"))
}

func TestCleanTitleStripsCompanyAndTags(t *testing.T) {
	assert.Equal(t, "Software Engineer", CleanTitle("Software Engineer - Monzo", "Monzo"))
	assert.Equal(t, "Data Engineer", CleanTitle("Data Engineer | Indeed", ""))
	assert.Equal(t, "SRE", CleanTitle("SRE at Wise", "Wise"))
}

func TestIsSearchResultsPage(t *testing.T) {
	aggregates := []string{
		"1,234+ Software Engineer jobs",
		"500 Python developer vacancies",
		"Top 10 tech employers",
		"Browse vacancies",
		"Software Engineer Jobs in United Kingdom",
		"Salary guide for developers",
		"How to become a data scientist",
	}
	for _, title := range aggregates {
		assert.True(t, IsSearchResultsPage(title), "title=%q", title)
	}
	assert.False(t, IsSearchResultsPage("Senior Software Engineer - Monzo"))
}

func TestExtractLocation(t *testing.T) {
	assert.Equal(t, "London, UK", ExtractLocation("Engineer - London", ""))
	assert.Equal(t, "Remote, UK", ExtractLocation("Engineer", "fully remote role"))
	assert.Equal(t, "United Kingdom", ExtractLocation("Engineer", "based in the United Kingdom"))
	assert.Equal(t, "", ExtractLocation("Engineer", "Berlin office"))
}
