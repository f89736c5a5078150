package heuristics

import (
	"regexp"
	"strings"
)

var ukCities = []string{
	"London", "Manchester", "Birmingham", "Leeds", "Glasgow",
	"Liverpool", "Edinburgh", "Bristol", "Sheffield", "Newcastle",
	"Nottingham", "Southampton", "Cardiff", "Belfast", "Leicester",
	"Coventry", "Reading", "Cambridge", "Oxford", "Brighton",
	"York", "Aberdeen", "Bath", "Dundee", "Exeter", "Norwich",
	"Plymouth", "Derby", "Swansea", "Portsmouth", "Warwick",
	"Milton Keynes", "Swindon", "Guildford", "Cheltenham",
	"Canary Wharf", "Slough", "Luton", "Croydon", "Watford",
}

var (
	ukCountryRE = regexp.MustCompile(`(?i)\bUnited Kingdom\b`)
	remoteRE    = regexp.MustCompile(`(?i)\bRemote\b`)
	hybridRE    = regexp.MustCompile(`(?i)\bHybrid\b`)
	ukCodeRE    = regexp.MustCompile(`\b(UK|U\.K\.)\b`)
)

// ExtractLocation pulls a UK location string out of free text (result title
// plus snippet). Returns "" when nothing recognizable appears.
func ExtractLocation(title, snippet string) string {
	text := title + " " + snippet

	var found []string
	for _, city := range ukCities {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(city) + `\b`)
		if re.MatchString(text) {
			found = append(found, city)
			if len(found) == 2 {
				break
			}
		}
	}
	if len(found) > 0 {
		return strings.Join(found, ", ") + ", UK"
	}

	switch {
	case ukCountryRE.MatchString(text):
		return "United Kingdom"
	case remoteRE.MatchString(text):
		return "Remote, UK"
	case hybridRE.MatchString(text):
		return "Hybrid, UK"
	case ukCodeRE.MatchString(text):
		return "United Kingdom"
	}
	return ""
}
