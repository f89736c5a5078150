// Package heuristics holds the stateless classification rules shared by
// sources that lack structured fields. Each guesser is an ordered rule
// table evaluated first-match-wins.
package heuristics

import "strings"

type rule struct {
	keywords []string
	label    string
}

var experienceRules = []rule{
	{[]string{"senior", "sr.", "sr ", "lead", "principal", "staff"}, "Senior Level"},
	{[]string{"junior", "jr.", "jr ", "entry", "graduate", "trainee", "intern", "apprentice"}, "Entry Level"},
	{[]string{"mid", "intermediate"}, "Mid Level"},
	{[]string{"director", "head of", "vp ", "vice president", "chief", "cto", "cfo"}, "Director / Executive"},
	{[]string{"manager"}, "Manager"},
}

var categoryRules = []rule{
	{[]string{"software", "developer", "engineer", "frontend", "backend",
		"full-stack", "fullstack", "devops", "sre", "platform"}, "Technology"},
	{[]string{"data scientist", "data engineer", "data analyst",
		"machine learning", "ai ", "artificial intelligence", "ml "}, "Data & AI"},
	{[]string{"product manager", "product owner", "product lead"}, "Product"},
	{[]string{"designer", "ux", "ui", "design"}, "Design"},
	{[]string{"finance", "accountant", "auditor", "actuary", "tax",
		"investment", "banking"}, "Finance"},
	{[]string{"solicitor", "lawyer", "legal", "paralegal", "barrister"}, "Legal"},
	{[]string{"consultant", "consulting", "advisory"}, "Consulting"},
	{[]string{"marketing", "seo", "content", "brand"}, "Marketing"},
	{[]string{"sales", "business development", "account executive"}, "Sales"},
	{[]string{"nurse", "doctor", "clinical", "medical", "healthcare", "nhs"}, "Healthcare"},
	{[]string{"mechanical", "electrical", "civil", "structural", "chemical"}, "Engineering"},
	{[]string{"cyber", "security", "infosec", "penetration"}, "Cybersecurity"},
	{[]string{"project manager", "programme manager", "scrum", "delivery"}, "Project Management"},
	{[]string{"analyst", "research", "quantitative"}, "Research & Analysis"},
}

func matchRules(rules []rule, text string) string {
	t := strings.ToLower(text)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(t, k) {
				return r.label
			}
		}
	}
	return ""
}

// GuessExperience classifies a job title into a seniority bucket.
// Returns "" when no rule matches.
func GuessExperience(title string) string {
	return matchRules(experienceRules, title)
}

// GuessCategory maps a job title onto a broad job family.
func GuessCategory(title string) string {
	return matchRules(categoryRules, title)
}

// GuessJobType checks independent employment-type markers. Unlike the other
// guessers more than one can match; matches are joined into one descriptor.
func GuessJobType(text string) string {
	t := strings.ToLower(text)
	var parts []string
	if strings.Contains(t, "full-time") || strings.Contains(t, "full time") || strings.Contains(t, "permanent") {
		parts = append(parts, "Full-time")
	}
	if strings.Contains(t, "part-time") || strings.Contains(t, "part time") {
		parts = append(parts, "Part-time")
	}
	if strings.Contains(t, "contract") {
		parts = append(parts, "Contract")
	}
	if strings.Contains(t, "freelance") {
		parts = append(parts, "Freelance")
	}
	return strings.Join(parts, ", ")
}
