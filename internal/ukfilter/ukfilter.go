// Package ukfilter decides whether a posting's location is UK-based or
// UK-eligible (remote/global roles open to UK candidates). One canonical
// gazetteer serves every caller.
package ukfilter

import (
	"regexp"
	"strings"
)

// Explicit markers that a role is closed to UK applicants. Checked first so
// a coincidental "remote" mention can't override them.
var nonUKMarkers = []string{
	"usa only", "us only", "united states only",
	"canada only", "australia only",
}

// Foreign places that contain a UK place name as a substring ("New York"
// contains "york"). Checked before the gazetteer.
var nonUKPlaces = []string{
	"new york", "cambridge, ma", "birmingham, al",
	"manchester, nh", "newcastle, australia", "perth, australia",
}

// US-state suffixes, e.g. "Austin, TX". Matched on the trailing token.
var usStateRE = regexp.MustCompile(`,\s*(al|ak|az|ar|ca|co|ct|de|fl|ga|hi|id|il|in|ia|ks|ky|la|me|md|ma|mi|mn|ms|mo|mt|ne|nv|nh|nj|nm|ny|nc|nd|oh|ok|or|pa|ri|sc|sd|tn|tx|ut|vt|va|wa|wv|wi|wy)\b`)

// UK place names, regions and counties. Safe as plain substring matches.
var ukPlaces = []string{
	"united kingdom", "england", "scotland", "wales",
	"northern ireland", "london", "manchester", "birmingham",
	"leeds", "glasgow", "liverpool", "edinburgh", "bristol",
	"sheffield", "newcastle", "nottingham", "southampton",
	"cardiff", "belfast", "leicester", "coventry",
	"cambridge", "oxford", "brighton", "york", "aberdeen",
	"dundee", "exeter", "norwich", "plymouth", "derby",
	"swansea", "portsmouth", "wolverhampton",
	"warwick", "surrey", "essex", "kent", "sussex",
	"hampshire", "hertfordshire", "berkshire", "middlesex",
	"staffordshire", "lancashire", "cheshire", "somerset",
	"dorset", "devon", "cornwall", "wiltshire", "norfolk",
	"suffolk", "cambridgeshire", "oxfordshire", "buckinghamshire",
	"greater london", "west midlands", "east midlands",
	"north west", "north east", "south west", "south east",
	"east anglia", "yorkshire", "great britain",
	"remote, uk", "remote - uk", "hybrid - uk",
}

// Country codes short enough to false-positive inside unrelated words
// ("Kaufbeuren"), so they need word boundaries.
var shortCodeRE = regexp.MustCompile(`\b(uk|gb)\b`)

// Remote/global terms that make a role UK-eligible. Word-boundary matched.
var globalTermRE = regexp.MustCompile(
	`\b(worldwide|global|anywhere|international|europe|emea|remote|hybrid|remote/hybrid)\b`)

// InScope reports whether a location string is in scope for this deployment.
func InScope(location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return false
	}

	for _, marker := range nonUKMarkers {
		if strings.Contains(loc, marker) {
			return false
		}
	}
	for _, place := range nonUKPlaces {
		if strings.Contains(loc, place) {
			return false
		}
	}
	if usStateRE.MatchString(loc) && !strings.Contains(loc, "united kingdom") {
		return false
	}
	for _, place := range ukPlaces {
		if strings.Contains(loc, place) {
			return true
		}
	}
	if shortCodeRE.MatchString(loc) {
		return true
	}
	return globalTermRE.MatchString(loc)
}
