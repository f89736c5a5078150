package ukfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInScope(t *testing.T) {
	cases := []struct {
		location string
		want     bool
	}{
		{"London, UK", true},
		{"Manchester", true},
		{"United Kingdom", true},
		{"Remote", true},
		{"Remote - UK", true},
		{"Hybrid", true},
		{"Worldwide", true},
		{"EMEA", true},
		{"UK", true},
		{"GB", true},
		{"Edinburgh, Scotland", true},
		{"Frankfurt, Germany", false},
		{"New York, NY", false},
		{"New York", false}, // contains "york"
		{"Birmingham, AL", false},
		{"Remote, Austin, TX", false},
		{"Kaufbeuren", false}, // "uk" inside a word must not match
		{"USA only", false},
		{"Remote (US only)", false},   // exclusion beats the remote term
		{"Remote, USA only", false},
		{"Canada only", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.location, func(t *testing.T) {
			assert.Equal(t, tc.want, InScope(tc.location), "InScope(%q)", tc.location)
		})
	}
}
