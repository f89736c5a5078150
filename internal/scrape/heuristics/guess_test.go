package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessExperience(t *testing.T) {
	cases := map[string]string{
		"Senior Software Engineer":   "Senior Level",
		"Graduate Analyst":           "Entry Level",
		"Mid-level Developer":        "Mid Level",
		"Head of Data":               "Director / Executive",
		"Engineering Manager":        "Manager",
		"Software Engineer":          "",
		"Staff Platform Engineer":    "Senior Level",
		"Trainee Solicitor":          "Entry Level",
	}
	for title, want := range cases {
		assert.Equal(t, want, GuessExperience(title), "title=%q", title)
	}
}

func TestGuessExperienceFirstMatchWins(t *testing.T) {
	// "Senior" outranks "Manager" because the senior bucket is checked first.
	assert.Equal(t, "Senior Level", GuessExperience("Senior Engineering Manager"))
}

func TestGuessCategory(t *testing.T) {
	cases := map[string]string{
		"Backend Developer":        "Technology",
		"Machine Learning Scientist": "Data & AI",
		"Product Manager":          "Product",
		"UX Designer":              "Design",
		"Tax Accountant":           "Finance",
		"Paralegal":                "Legal",
		"Strategy Consultant":      "Consulting",
		"SEO Specialist":           "Marketing",
		"Account Executive":        "Sales",
		"Clinical Nurse":           "Healthcare",
		"Penetration Tester":       "Cybersecurity",
		"Scrum Master":             "Project Management",
		"Quantitative Researcher":  "Research & Analysis",
		"Receptionist":             "",
	}
	for title, want := range cases {
		assert.Equal(t, want, GuessCategory(title), "title=%q", title)
	}
}

func TestGuessJobTypeComposite(t *testing.T) {
	assert.Equal(t, "Full-time", GuessJobType("Permanent role"))
	assert.Equal(t, "Part-time, Contract", GuessJobType("part time contract position"))
	assert.Equal(t, "", GuessJobType("Engineer"))
}
