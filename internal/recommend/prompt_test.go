package recommend

import (
	"strings"
	"testing"
)

func TestBuildMessages_Sections(t *testing.T) {
	msgs := buildMessages("I wish I could fly.", "나는 날 수 있으면 좋겠다.", testLeaves, 3, 6, 400, passConservative)
	if len(msgs) != 2 {
		t.Fatalf("expected system+user pair, got %d messages", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("unexpected roles %q/%q", msgs[0].Role, msgs[1].Role)
	}
	user := msgs[1].Content
	for _, want := range []string{
		"영문: I wish I could fly.",
		"한글: 나는 날 수 있으면 좋겠다.",
		"[허용 리프 목록]",
		"- " + testLeaves[0],
		"예시 EN:",
		"예시 정답(JSON):",
		"권장 개수: 3~6개.",
	} {
		if !strings.Contains(user, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestBuildMessages_EmptyKO(t *testing.T) {
	msgs := buildMessages("Hello there, my friend.", "", testLeaves, 3, 6, 400, passConservative)
	if !strings.Contains(msgs[1].Content, "한글: (없음)") {
		t.Fatalf("empty KO should render as (없음)")
	}
}

func TestBuildMessages_PassHints(t *testing.T) {
	conservative := buildMessages("x y z w", "", testLeaves, 3, 6, 400, passConservative)[1].Content
	aggressive := buildMessages("x y z w", "", testLeaves, 3, 6, 400, passAggressive)[1].Content
	if !strings.Contains(conservative, "빈 배열을 반환해도 된다") {
		t.Fatalf("conservative pass should permit an empty result")
	}
	if !strings.Contains(aggressive, "빈 배열은 피하고") {
		t.Fatalf("aggressive pass should discourage an empty result")
	}
	if conservative == aggressive {
		t.Fatalf("passes should produce different prompts")
	}
}

func TestBuildMessages_TruncatesLeafList(t *testing.T) {
	long := make([]string, 10)
	for i := range long {
		long[i] = "그룹 > 항목" + strings.Repeat("!", i+1)
	}
	user := buildMessages("x y z w", "", long, 3, 6, 4, passConservative)[1].Content
	if !strings.Contains(user, "- "+long[3]) {
		t.Fatalf("entry inside the limit should be present")
	}
	if strings.Contains(user, "- "+long[4]) {
		t.Fatalf("entry beyond the limit should be truncated")
	}
}

func TestBuildVerifierMessages(t *testing.T) {
	candidates := []Rec{{Path: testLeaves[1], Reason: "that절", Score: 0.8}}
	msgs := buildVerifierMessages("He said that.", "", testLeaves, candidates, 3, 0.4, 400)
	if len(msgs) != 2 {
		t.Fatalf("expected system+user pair, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0].Content, "상위 3개") {
		t.Fatalf("verifier system prompt should carry topN")
	}
	user := msgs[1].Content
	for _, want := range []string{
		"[후보 목록(JSON)]",
		testLeaves[1],
		"minScore=0.4 미만은 제외",
		"[규칙]",
	} {
		if !strings.Contains(user, want) {
			t.Fatalf("verifier prompt missing %q:\n%s", want, user)
		}
	}
}
