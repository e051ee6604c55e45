package recommend

import (
	"encoding/json"
	"regexp"
)

var (
	fencedRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	braceRe  = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
)

type itemsEnvelope struct {
	Items []rawRec `json:"items"`
}

// rawRec tolerates missing reason/score fields in model output.
type rawRec struct {
	Path   string   `json:"path"`
	Reason string   `json:"reason"`
	Score  *float64 `json:"score"`
}

// ParseItems extracts candidate recommendations from raw model output. It
// tries a direct parse first (an {items: [...]} object or a bare array), then
// a fenced code block, then a greedy brace/bracket span. On total failure it
// returns nil rather than an error; the caller treats that as an empty sample.
// Missing scores default to defaultScore so the aggregator never sees a hole.
func ParseItems(raw string, defaultScore float64) []Rec {
	if items, ok := tryParse([]byte(raw)); ok {
		return finalize(items, defaultScore)
	}
	if m := fencedRe.FindStringSubmatch(raw); m != nil {
		if items, ok := tryParse([]byte(m[1])); ok {
			return finalize(items, defaultScore)
		}
	}
	if m := braceRe.FindStringSubmatch(raw); m != nil {
		if items, ok := tryParse([]byte(m[1])); ok {
			return finalize(items, defaultScore)
		}
	}
	return nil
}

func tryParse(data []byte) ([]rawRec, bool) {
	var env itemsEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Items != nil {
		return env.Items, true
	}
	var arr []rawRec
	if err := json.Unmarshal(data, &arr); err == nil && arr != nil {
		return arr, true
	}
	return nil, false
}

func finalize(items []rawRec, defaultScore float64) []Rec {
	out := make([]Rec, 0, len(items))
	for _, it := range items {
		score := defaultScore
		if it.Score != nil {
			score = *it.Score
		}
		out = append(out, Rec{
			Path:   NormalizeSpace(it.Path),
			Reason: clampReason(it.Reason, 220),
			Score:  score,
		})
	}
	return out
}
