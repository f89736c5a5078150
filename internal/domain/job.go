package domain

import "strings"

// JobPosting is the normalized record every source produces. Optional
// fields stay empty when the upstream doesn't provide them.
type JobPosting struct {
	Title           string
	Company         string
	Location        string
	URL             string
	Source          string
	Category        string
	ExperienceLevel string
	JobType         string
	Salary          string
}

// Valid reports whether the posting carries the minimum required fields.
// Invalid postings are dropped before filtering and dedup.
func (j JobPosting) Valid() bool {
	return strings.TrimSpace(j.Title) != "" &&
		strings.TrimSpace(j.Company) != "" &&
		strings.TrimSpace(j.Location) != "" &&
		strings.TrimSpace(j.URL) != ""
}

// Trim normalizes surrounding whitespace on every field.
func (j JobPosting) Trim() JobPosting {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	j.Location = strings.TrimSpace(j.Location)
	j.URL = strings.TrimSpace(j.URL)
	j.Category = strings.TrimSpace(j.Category)
	j.ExperienceLevel = strings.TrimSpace(j.ExperienceLevel)
	j.JobType = strings.TrimSpace(j.JobType)
	j.Salary = strings.TrimSpace(j.Salary)
	return j
}
