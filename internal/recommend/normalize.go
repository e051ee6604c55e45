package recommend

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeSpace collapses runs of whitespace into single spaces and trims.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// depthOf counts the segments of a " > " joined path.
func depthOf(path string) int {
	return len(strings.Split(NormalizeSpace(path), ">"))
}

// uniqByPath keeps the first occurrence of each path, preserving order.
func uniqByPath(recs []Rec) []Rec {
	seen := make(map[string]struct{}, len(recs))
	out := make([]Rec, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r.Path]; ok {
			continue
		}
		seen[r.Path] = struct{}{}
		out = append(out, r)
	}
	return out
}

// clampReason bounds a reason string to max runes.
func clampReason(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// wordCount counts whitespace-separated tokens.
func wordCount(s string) int {
	return len(strings.Fields(s))
}
