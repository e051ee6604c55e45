package recommend

import (
	"sort"
	"strings"
)

// ensembleVote accumulates per-path agreement across samples.
type ensembleVote struct {
	path     string
	votes    int
	scoreSum float64
	reasons  []string
}

// AggregateEnsemble merges independently-sampled recommendation sets by path.
// Paths outside allowedPaths are dropped. The calibrated score is the sample
// average plus a bounded agreement bonus: min(0.25, (votes-1)*0.12), capped at
// 1. The result is sorted by descending calibrated score, filtered to
// minScore, and truncated to topN, with reasons deduplicated and joined.
func AggregateEnsemble(buckets [][]Rec, allowedPaths map[string]struct{}, topN int, minScore float64) []Rec {
	acc := make(map[string]*ensembleVote)
	var order []string
	for _, sample := range buckets {
		for _, r := range sample {
			if _, ok := allowedPaths[r.Path]; !ok {
				continue
			}
			slot, ok := acc[r.Path]
			if !ok {
				slot = &ensembleVote{path: r.Path}
				acc[r.Path] = slot
				order = append(order, r.Path)
			}
			slot.votes++
			slot.scoreSum += r.Score
			if r.Reason != "" {
				slot.reasons = append(slot.reasons, r.Reason)
			}
		}
	}

	merged := make([]Rec, 0, len(order))
	for _, path := range order {
		v := acc[path]
		avg := v.scoreSum / float64(v.votes)
		bonus := float64(v.votes-1) * 0.12
		if bonus > 0.25 {
			bonus = 0.25
		}
		score := avg + bonus
		if score > 1 {
			score = 1
		}
		merged = append(merged, Rec{
			Path:   path,
			Reason: clampReason(joinUnique(v.reasons, " / "), 220),
			Score:  score,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })

	out := merged[:0]
	for _, r := range merged {
		if r.Score < minScore {
			continue
		}
		out = append(out, r)
		if len(out) >= topN {
			break
		}
	}
	return out
}

func joinUnique(items []string, sep string) string {
	seen := make(map[string]struct{}, len(items))
	uniq := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		uniq = append(uniq, it)
	}
	return strings.Join(uniq, sep)
}
