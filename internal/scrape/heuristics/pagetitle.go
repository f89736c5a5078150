package heuristics

import (
	"regexp"
	"strings"
)

// Job-board domains mapped to the suffix they append to result titles.
var jobBoards = []struct {
	domain string
	label  string
}{
	{"linkedin.com", "LinkedIn"},
	{"indeed.co.uk", "Indeed"},
	{"indeed.com", "Indeed"},
	{"glassdoor.co.uk", "Glassdoor"},
	{"glassdoor.com", "Glassdoor"},
	{"reed.co.uk", "Reed"},
	{"totaljobs.com", "Totaljobs"},
	{"cv-library.co.uk", "CV-Library"},
	{"monster.co.uk", "Monster"},
	{"cwjobs.co.uk", "CWJobs"},
	{"adzuna.co.uk", "Adzuna"},
	{"jobsite.co.uk", "Jobsite"},
	{"workable.com", "Workable"},
	{"lever.co", "Lever"},
	{"greenhouse.io", "Greenhouse"},
	{"findajob.dwp.gov.uk", "Find a Job (Gov.uk)"},
}

var titleSeparators = []string{" - ", " | ", " – ", " — "}

var atCompanyRE = regexp.MustCompile(`(?i)\bat\s+(.+?)$`)

var companySuffixes = []string{
	"Careers", "Jobs", "Hiring", "Vacancies",
	"careers", "jobs", "hiring", "vacancies",
	"LinkedIn", "Indeed", "Glassdoor", "Reed",
	"UK", "Ltd", "Limited", "PLC", "plc", "Inc",
}

// Titles matching these shapes are aggregate search-result pages or
// articles, not individual postings.
var searchPageREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d[\d,]*\+?\s+(?:[\w&/-]+\s+){0,5}(jobs?|vacancies|positions|results)\b`),
	regexp.MustCompile(`(?i)jobs?\s+in\s+(united kingdom|uk|london|manchester|birmingham)`),
	regexp.MustCompile(`(?i)^(search|find|browse)\s+`),
	regexp.MustCompile(`(?i)\|\s*(reed|indeed|glassdoor|totaljobs|linkedin)\s*$`),
	regexp.MustCompile(`(?i)\bhow\s+(to|ai|is)\b`),
	regexp.MustCompile(`(?i)\btop\s+\d+\s+`),
	regexp.MustCompile(`(?i)\bguide\b`),
	regexp.MustCompile(`(?i)\btips\b`),
	regexp.MustCompile(`(?i)\bbest\s+(companies|employers|places)\b`),
}

// JobBoardFor returns the display label for a known job-board domain, or "".
func JobBoardFor(domain string) string {
	for _, b := range jobBoards {
		if strings.Contains(domain, b.domain) {
			return b.label
		}
	}
	return ""
}

// IsSearchResultsPage detects titles that aren't individual job listings.
func IsSearchResultsPage(title string) bool {
	for _, re := range searchPageREs {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// StripCompanySuffixes removes trailing board names and corporate suffixes.
func StripCompanySuffixes(name string) string {
	for _, s := range companySuffixes {
		re := regexp.MustCompile(`\s*\b` + regexp.QuoteMeta(s) + `\s*$`)
		name = strings.TrimSpace(re.ReplaceAllString(name, ""))
	}
	return name
}

// ExtractCompany derives a company name from a search-result title. Tries,
// in order: board-suffix stripping, "Title sep Company" separators,
// "... at Company", then the result's domain. Returns "" when nothing
// applies; the caller discards the record as invalid.
func ExtractCompany(title, domain string) string {
	if board := JobBoardFor(domain); board != "" {
		if company := companyFromBoardTitle(title, board); company != "" {
			return company
		}
	}

	for _, sep := range titleSeparators {
		if strings.Contains(title, sep) {
			idx := strings.LastIndex(title, sep)
			candidate := StripCompanySuffixes(strings.TrimSpace(title[idx+len(sep):]))
			if len(candidate) > 2 && len(candidate) < 80 {
				return candidate
			}
		}
	}

	if m := atCompanyRE.FindStringSubmatch(title); m != nil {
		candidate := StripCompanySuffixes(strings.TrimSpace(m[1]))
		if len(candidate) > 2 {
			return candidate
		}
	}

	clean := strings.TrimPrefix(domain, "careers.")
	clean = strings.TrimPrefix(clean, "jobs.")
	base := strings.SplitN(clean, ".", 2)[0]
	if len(base) > 2 {
		return titleCase(strings.ReplaceAll(base, "-", " "))
	}
	return ""
}

func companyFromBoardTitle(title, board string) string {
	cleaned := title
	for _, suffix := range []string{"| " + board, "- " + board, "— " + board, "· " + board, board} {
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, suffix, ""))
	}

	for _, sep := range titleSeparators {
		if strings.Contains(cleaned, sep) {
			idx := strings.LastIndex(cleaned, sep)
			candidate := StripCompanySuffixes(strings.TrimSpace(cleaned[idx+len(sep):]))
			if len(candidate) > 2 && len(candidate) < 80 {
				return candidate
			}
		}
	}
	if m := atCompanyRE.FindStringSubmatch(cleaned); m != nil {
		return StripCompanySuffixes(strings.TrimSpace(m[1]))
	}
	return ""
}

// CleanTitle strips board tags and a trailing company name from a result title.
func CleanTitle(title, company string) string {
	cleaned := title
	for _, tag := range []string{
		"| LinkedIn", "- LinkedIn", "| Indeed", "- Indeed",
		"| Glassdoor", "- Glassdoor", "| Reed", "- Reed",
		"| Totaljobs", "- Totaljobs", "| CV-Library",
		"| Workable", "| Lever", "| Greenhouse",
		"| Find a Job", "- Find a Job", "| CWJobs",
	} {
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, tag, ""))
	}

	if company != "" {
		for _, sep := range []string{" - ", " | ", " – ", " — ", " at ", " @ "} {
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(sep) + regexp.QuoteMeta(company) + `\s*$`)
			cleaned = re.ReplaceAllString(cleaned, "")
		}
	}

	cleaned = regexp.MustCompile(`\s*[-|\x{2013}\x{2014}]\s*$`).ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}
