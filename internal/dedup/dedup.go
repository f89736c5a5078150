package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"

	"ukjobs-engine/internal/domain"
)

// Query-string parameters commonly used for tracking; not part of a job's identity.
var trackingParams = map[string]bool{
	"utm_source": true, "utm_medium": true, "utm_campaign": true,
	"utm_content": true, "utm_term": true,
	"ref": true, "source": true,
	"fbclid": true, "gclid": true,
	"mc_cid": true, "mc_eid": true,
}

var (
	nonAlnumRE   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// CanonicalizeURL normalizes a URL for deduplication: lowercases it, strips
// tracking parameters, the trailing slash and the fragment. URL.Values
// encoding keeps the query deterministic regardless of input order.
func CanonicalizeURL(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	for k := range q {
		if trackingParams[k] || strings.HasPrefix(k, "utm_") {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}

// URLHash is the identity hash: first 32 hex chars of the canonical URL's sha256.
func URLHash(raw string) string {
	sum := sha256.Sum256([]byte(CanonicalizeURL(raw)))
	return hex.EncodeToString(sum[:])[:32]
}

// NormalizeText lowercases, strips non-alphanumeric chars and collapses whitespace.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Signature is the content identity: normalized title joined with normalized
// company. Equal signatures mean the same listing even across different URLs.
func Signature(j domain.JobPosting) string {
	return NormalizeText(j.Title) + "|" + NormalizeText(j.Company)
}

// Deduplicate removes duplicates from a batch, keeping the first occurrence
// of either identity key. Input order is preserved, so the result is
// identical for identical input every run.
func Deduplicate(jobs []domain.JobPosting) (unique []domain.JobPosting, duplicates int) {
	seenHashes := make(map[string]bool, len(jobs))
	seenSigs := make(map[string]bool, len(jobs))
	unique = make([]domain.JobPosting, 0, len(jobs))

	for _, j := range jobs {
		h := URLHash(j.URL)
		if seenHashes[h] {
			duplicates++
			continue
		}
		sig := Signature(j)
		if seenSigs[sig] {
			duplicates++
			continue
		}
		seenHashes[h] = true
		seenSigs[sig] = true
		unique = append(unique, j)
	}
	return unique, duplicates
}
