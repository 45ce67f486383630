// Package pii provides lightweight regex-based detection and redaction of
// common PII patterns so we can avoid storing or echoing sensitive data.
//
// This is a heuristic pre-filter, not a DLP solution. The national_id and
// passport patterns in particular are collision-prone and intentionally
// left as-is: downstream callers depend on the current recall/precision
// balance.
package pii

import (
	"regexp"
	"sort"
	"strings"
)

type Match struct {
	Kind  string `json:"kind"`
	Text  string `json:"match"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type pattern struct {
	kind string
	re   *regexp.Regexp
}

// Detection order is fixed so results are deterministic across runs.
var patterns = []pattern{
	//basic email
	{"email", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	//Kenyan phone formats (e.g., +2547XXXXXXXX, 07XXXXXXXX, 01XXXXXXXX)
	{"phone", regexp.MustCompile(`\b(?:\+?254|0)(?:7|1)\d{8}\b`)},
	//national ID: commonly 7 or 8 digits (heuristic)
	{"national_id", regexp.MustCompile(`\b\d{7,8}\b`)},
	//passport: alphanumeric 6-9 chars (heuristic)
	{"passport", regexp.MustCompile(`\b[A-Za-z0-9]{6,9}\b`)},
}

// Detect scans text and returns likely PII spans. Empty input yields an
// empty result; Detect never fails.
func Detect(text string) []Match {
	if text == "" {
		return []Match{}
	}

	var matches []Match
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if p.kind == "national_id" || p.kind == "passport" {
				// Skip tokens that are part of a URL or an email already
				// captured under another kind.
				lo := start - 8
				if lo < 0 {
					lo = 0
				}
				hi := end + 8
				if hi > len(text) {
					hi = len(text)
				}
				surrounding := text[lo:hi]
				if strings.Contains(surrounding, "http") || strings.Contains(surrounding, "@") {
					continue
				}
			}
			matches = append(matches, Match{Kind: p.kind, Text: text[start:end], Start: start, End: end})
		}
	}
	if matches == nil {
		return []Match{}
	}
	return matches
}

// Redact replaces every match span with a <KIND_REDACTED> placeholder.
// If matches is nil they are computed internally. Spans are processed in
// descending start order so earlier replacements do not shift offsets of
// matches still to be processed; a span overlapping an already redacted
// one is skipped.
func Redact(text string, matches []Match) string {
	if text == "" {
		return text
	}
	if matches == nil {
		matches = Detect(text)
	}
	if len(matches) == 0 {
		return text
	}

	ordered := make([]Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	redacted := text
	prevStart := len(text) + 1
	for _, m := range ordered {
		if m.End > prevStart {
			continue
		}
		placeholder := "<" + strings.ToUpper(m.Kind) + "_REDACTED>"
		redacted = redacted[:m.Start] + placeholder + redacted[m.End:]
		prevStart = m.Start
	}
	return redacted
}
