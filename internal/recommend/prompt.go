package recommend

import (
	"encoding/json"
	"fmt"
	"strings"

	"gramtax/internal/llm"
)

// systemPrompt frames the model as a grammar-classification assistant and
// states the hard rules: leaf-only paths, exact whitelist match, JSON only.
const systemPrompt = `너는 한국 중·고등 영어 교육과정 분류를 위한 문장 분석 보조 교사다.
- 가능한 경우 '리프(leaf)' 경로만 선택(중간 노드 단독 추천 금지)
- 결과는 JSON으로만 반환하고, 각 추천에 reason(간단 근거)과 score(0~1 확신도)를 포함
- 규칙: 경로 구분자는 " > " (양쪽 공백 포함), 화이트리스트에 **정확히 일치**하는 경로만
- 불확실하면 빈 배열 허용(단, 후속 검증 단계에서 보완될 수 있음)`

// verifierSystemPrompt frames the second pass as a judge over an existing
// candidate set rather than a generator.
const verifierSystemPromptFmt = `너는 문장 분류 결과를 검증하는 교사다. 주어진 후보들에서 규칙 위반(리프가 아님, 중복, 논리 불충분)을 제거하고 최적의 상위 %d개를 JSON으로만 반환하라.`

type pass int

const (
	passConservative pass = iota
	passAggressive
)

type fewShot struct {
	EN    string
	KO    string
	Items []Rec
}

var fewShots = []fewShot{
	{
		EN: "I wish I could fly.",
		KO: "나는 날 수 있으면 좋겠다.",
		Items: []Rec{
			{Path: "특수 구문 > 가정법 구문 > I wish 가정법", Reason: "I wish + 과거형", Score: 0.9},
			{Path: "문장의 형식 > 3형식", Reason: "wish의 3형식 문형", Score: 0.6},
		},
	},
	{
		EN: "To live a happy life, you need to be grateful.",
		KO: "행복하게 살기 위해서는 감사할 줄 알아야 한다.",
		Items: []Rec{
			{Path: "구(Phrase) > to부정사구 > 부사적 용법", Reason: "to 부정사 목적/이유", Score: 0.9},
			{Path: "문장의 형식 > 1형식", Reason: "you need to be ~", Score: 0.6},
		},
	},
}

// buildMessages assembles the system/user pair for one recommendation call.
// The leaf list is truncated to leafLimit entries to bound prompt size.
func buildMessages(en, ko string, leafList []string, minRec, topN, leafLimit int, p pass) []llm.Message {
	hints := []string{
		"EN을 우선으로 판단하고 KO는 보조적으로만 사용.",
		fmt.Sprintf("권장 개수: %d~%d개.", minRec, topN),
		`경로 구분자는 " > " (양쪽 공백).`,
		"화이트리스트(leaf)에 **정확히 일치**하는 경로만.",
		"중복/유사 포인트는 피하고 다양성을 확보.",
		"score는 0~1 실수로 추정치라도 반드시 포함.",
	}
	switch p {
	case passConservative:
		hints = append(hints, "확신이 없으면 빈 배열을 반환해도 된다.")
	case passAggressive:
		hints = append(hints, "빈 배열은 피하고, 확신이 낮더라도 가장 가까운 후보를 제시하라.")
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(hints, "\n"))
	sb.WriteString("\n\n영문: ")
	sb.WriteString(en)
	sb.WriteString("\n한글: ")
	sb.WriteString(orNone(ko))
	sb.WriteString("\n\n[허용 리프 목록]\n")
	sb.WriteString(formatLeafList(leafList, leafLimit))
	sb.WriteString("\n\n")
	sb.WriteString(formatFewShots())

	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: sb.String()},
	}
}

// buildVerifierMessages assembles the judge pass over an existing candidate
// set, with the pruning rules spelled out.
func buildVerifierMessages(en, ko string, leafList []string, candidates []Rec, topN int, minScore float64, leafLimit int) []llm.Message {
	candJSON, _ := json.MarshalIndent(struct {
		Items []Rec `json:"items"`
	}{Items: candidates}, "", "  ")

	var sb strings.Builder
	sb.WriteString("[문장]\nEN: ")
	sb.WriteString(en)
	sb.WriteString("\nKO: ")
	sb.WriteString(orNone(ko))
	sb.WriteString("\n\n[허용 리프 목록]\n")
	sb.WriteString(formatLeafList(leafList, leafLimit))
	sb.WriteString("\n\n[후보 목록(JSON)]\n")
	sb.Write(candJSON)
	sb.WriteString("\n\n[규칙]\n")
	sb.WriteString(strings.Join([]string{
		"- 허용 목록에 없는 경로 제거",
		"- 중간 노드 단독 제거(리프만)",
		"- 중복 제거",
		"- reason이 빈약한 항목은 낮은 점수",
		"- score는 0~1 사이로 보정",
		fmt.Sprintf("- minScore=%g 미만은 제외", minScore),
		fmt.Sprintf("- 상위 %d개만 남김", topN),
	}, "\n"))
	sb.WriteString("\n\n[출력 형식] { \"items\": [ { \"path\": string, \"reason\": string, \"score\": number } ] }")

	return []llm.Message{
		{Role: "system", Content: fmt.Sprintf(verifierSystemPromptFmt, topN)},
		{Role: "user", Content: sb.String()},
	}
}

func formatLeafList(leafList []string, limit int) string {
	if limit > 0 && len(leafList) > limit {
		leafList = leafList[:limit]
	}
	lines := make([]string, len(leafList))
	for i, p := range leafList {
		lines[i] = "- " + p
	}
	return strings.Join(lines, "\n")
}

func formatFewShots() string {
	parts := make([]string, 0, len(fewShots))
	for _, s := range fewShots {
		b, _ := json.Marshal(struct {
			Items []Rec `json:"items"`
		}{Items: s.Items})
		parts = append(parts, strings.Join([]string{
			"예시 EN: " + s.EN,
			"예시 KO: " + s.KO,
			"예시 정답(JSON): " + string(b),
		}, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func orNone(s string) string {
	if s == "" {
		return "(없음)"
	}
	return s
}
