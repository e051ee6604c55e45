package recommend

import (
	"regexp"
	"strings"
)

const (
	heuristicScore  = 0.55
	heuristicReason = "전형적 패턴(휴리스틱)"
)

// heuristicRule maps a surface lexical cue onto a taxonomy leaf. Rules are
// checked in declaration order; the order is part of the contract since only
// paths present in the caller's whitelist survive.
type heuristicRule struct {
	re   *regexp.Regexp
	path string
}

var heuristicRules = []heuristicRule{
	{regexp.MustCompile(`i wish`), "특수 구문 > 가정법 구문 > I wish 가정법"},
	{regexp.MustCompile(`\b(if|unless|provided|as long as)\b`), "절(Clause) > 부사절 > 조건의 부사절"},
	{regexp.MustCompile(`\b(because|since|as)\b`), "절(Clause) > 부사절 > 이유의 부사절"},
	{regexp.MustCompile(`\b(when|while|after|before|until|once)\b`), "절(Clause) > 부사절 > 시간의 부사절"},
	{regexp.MustCompile(`\b(though|although|even though|even if|whereas)\b`), "절(Clause) > 부사절 > 양보의 부사절"},
	{regexp.MustCompile(`\bthat\b`), "절(Clause) > 명사절 > that절"},
	{regexp.MustCompile(`\b(who|which|that)\b`), "절(Clause) > 형용사절 > 관계대명사절"},
	{regexp.MustCompile(`\b(where|in which|at which|on which|to which)\b`), "절(Clause) > 형용사절 > 관계부사절"},
	{regexp.MustCompile(`\bto\s+\w+`), "구(Phrase) > to부정사구 > 부사적 용법"},
	{regexp.MustCompile(`\b(more|most|less|least|than|as\b.*\bas)\b`), "특수 구문 > 비교급 구문"},
}

// Heuristic proposes recommendations from fixed lexical patterns over the
// English text. Pure and deterministic; used only as a fallback when the
// model path fails or under-delivers. Matches outside allowedPaths are
// dropped, duplicates removed, the result capped at maxRec, and every pick
// carries the fixed moderate confidence.
func Heuristic(en string, allowedPaths map[string]struct{}, maxRec int) []Rec {
	s := strings.ToLower(en)
	var picks []string
	for _, rule := range heuristicRules {
		if rule.re.MatchString(s) {
			picks = append(picks, rule.path)
		}
	}

	seen := make(map[string]struct{}, len(picks))
	out := make([]Rec, 0, len(picks))
	for _, p := range picks {
		if _, ok := allowedPaths[p]; !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, Rec{Path: p, Reason: heuristicReason, Score: heuristicScore})
		if len(out) >= maxRec {
			break
		}
	}
	return out
}
