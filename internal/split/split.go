// Package split provides the sentence-splitting heuristics used when
// ingesting English/Korean passage pairs: terminal-punctuation splitting with
// an abbreviation guard for English, and a midpoint split for dividing one
// pair into two.
package split

import (
	"regexp"
	"strings"
)

var (
	wsRe     = regexp.MustCompile(`\s+`)
	abbrRe   = regexp.MustCompile(`(?i)\b(e\.g|i\.e|Mr|Mrs|Ms|Dr|Sr|Jr|vs)\.$`)
	midPunct = ".?!;:"
)

// English splits a passage into sentence units on . ! ? while keeping common
// abbreviations (e.g., Mr., Dr.) attached to their sentence.
func English(text string) []string {
	cleaned := strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
	if cleaned == "" {
		return nil
	}
	var out []string
	var buf strings.Builder
	for i, ch := range cleaned {
		buf.WriteRune(ch)
		if ch != '.' && ch != '!' && ch != '?' {
			continue
		}
		// A period mid-token (e.g., i.e., 3.14) does not end a sentence.
		if ch == '.' && i+1 < len(cleaned) && cleaned[i+1] != ' ' {
			continue
		}
		trimmed := strings.TrimSpace(buf.String())
		tokens := strings.Split(trimmed, " ")
		last := tokens[len(tokens)-1]
		if abbrRe.MatchString(last) {
			continue
		}
		out = append(out, trimmed)
		buf.Reset()
	}
	if rest := strings.TrimSpace(buf.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}

// Korean splits on terminal punctuation only; Korean has no abbreviation
// periods to guard against.
func Korean(text string) []string {
	cleaned := strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
	if cleaned == "" {
		return nil
	}
	var out []string
	var buf strings.Builder
	for _, ch := range cleaned {
		buf.WriteRune(ch)
		if ch == '.' || ch == '?' || ch == '!' {
			out = append(out, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
	}
	if rest := strings.TrimSpace(buf.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}

// PairParts is the result of splitting one EN/KO pair in two. The second
// halves are empty when no usable split point exists.
type PairParts struct {
	EN1 string `json:"en1"`
	EN2 string `json:"en2"`
	KO1 string `json:"ko1"`
	KO2 string `json:"ko2"`
}

// Pair splits both sides of a pair near their midpoints at the closest
// punctuation mark. Sides split independently; a side with no punctuation
// stays whole.
func Pair(en, ko string) PairParts {
	enSplit := cutByPunct(en)
	if enSplit == nil {
		enSplit = cutByPunct(wsRe.ReplaceAllString(en, " "))
	}
	koSplit := cutByPunct(ko)
	if koSplit == nil {
		koSplit = cutByPunct(wsRe.ReplaceAllString(ko, " "))
	}

	if enSplit == nil && koSplit == nil {
		return PairParts{EN1: en, KO1: ko}
	}
	out := PairParts{EN1: en, KO1: ko}
	if enSplit != nil {
		out.EN1, out.EN2 = enSplit[0], enSplit[1]
	}
	if koSplit != nil {
		out.KO1, out.KO2 = koSplit[0], koSplit[1]
	}
	return out
}

// cutByPunct finds the punctuation mark nearest the midpoint, preferring the
// right side, and cuts after it. Returns nil when either half would be empty.
func cutByPunct(s string) []string {
	runes := []rune(s)
	mid := len(runes) / 2
	left, right := -1, -1
	for i := mid; i >= 0 && i < len(runes); i-- {
		if strings.ContainsRune(midPunct, runes[i]) {
			left = i
			break
		}
	}
	for i := mid; i < len(runes); i++ {
		if strings.ContainsRune(midPunct, runes[i]) {
			right = i
			break
		}
	}
	pos := right
	if pos == -1 {
		pos = left
	}
	if pos == -1 {
		return nil
	}
	a := strings.TrimSpace(string(runes[:pos+1]))
	b := strings.TrimSpace(string(runes[pos+1:]))
	if a == "" || b == "" {
		return nil
	}
	return []string{a, b}
}
