package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gramtax/internal/llm"
	"gramtax/internal/recommend"
)

var handlerLeaves = []string{
	"특수 구문 > 가정법 구문 > I wish 가정법",
	"절(Clause) > 명사절 > that절",
	"절(Clause) > 부사절 > 조건의 부사절(if, unless 등)",
	"문장의 형식 > 3형식",
}

func newTestHandler(fake *llm.FakeClient) *RecommendHandler {
	rec := recommend.New(fake, recommend.Options{
		Logger:           log.New(io.Discard, "", 0),
		DefaultLeafPaths: handlerLeaves,
	})
	return NewRecommendHandler(rec, log.New(io.Discard, "", 0))
}

func fatResponse() string {
	items := []recommend.Rec{
		{Path: handlerLeaves[0], Reason: "r1", Score: 0.9},
		{Path: handlerLeaves[1], Reason: "r2", Score: 0.8},
		{Path: handlerLeaves[2], Reason: "r3", Score: 0.7},
	}
	b, _ := json.Marshal(struct {
		Items []recommend.Rec `json:"items"`
	}{Items: items})
	return string(b)
}

type recommendResp struct {
	Results []struct {
		PairID json.RawMessage `json:"pair_id"`
		Recs   []recommend.Rec `json:"recs"`
	} `json:"results"`
}

func postRecommend(t *testing.T, h *RecommendHandler, body string) (*httptest.ResponseRecorder, recommendResp) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Handle(w, req)
	var resp recommendResp
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return w, resp
}

func TestRecommendHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&llm.FakeClient{})
	req := httptest.NewRequest(http.MethodGet, "/api/recommend", nil)
	w := httptest.NewRecorder()
	h.Handle(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRecommendHandler_EmptyBatchMakesNoCalls(t *testing.T) {
	fake := &llm.FakeClient{Responses: []string{fatResponse()}}
	h := newTestHandler(fake)

	w, resp := postRecommend(t, h, `{"items":[]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("results = %v", resp.Results)
	}
	if fake.CallCount() != 0 {
		t.Fatalf("empty batch should not reach the model, got %d calls", fake.CallCount())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"results":[]`)) {
		t.Fatalf("body should carry an explicit empty results array: %s", w.Body.String())
	}
}

func TestRecommendHandler_BadBody(t *testing.T) {
	h := newTestHandler(&llm.FakeClient{})
	w, _ := postRecommend(t, h, `{"items": not-json`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRecommendHandler_Batch(t *testing.T) {
	fake := &llm.FakeClient{Responses: []string{fatResponse()}}
	h := newTestHandler(fake)

	body := fmt.Sprintf(`{
		"items": [
			{"pair_id": 1, "en": "I wish I could fly today.", "ko": "날고 싶다."},
			{"pair_id": "p-2", "en": "He said that he was tired.", "ko": ""}
		],
		"leafPaths": %s
	}`, mustJSON(handlerLeaves))

	w, resp := postRecommend(t, h, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if string(resp.Results[0].PairID) != "1" {
		t.Fatalf("pair_id[0] = %s", resp.Results[0].PairID)
	}
	if string(resp.Results[1].PairID) != `"p-2"` {
		t.Fatalf("pair_id[1] = %s", resp.Results[1].PairID)
	}
	for i, res := range resp.Results {
		if len(res.Recs) != 3 {
			t.Fatalf("result %d recs = %v", i, res.Recs)
		}
	}
}

func TestRecommendHandler_SkipsInvalidItems(t *testing.T) {
	fake := &llm.FakeClient{Responses: []string{fatResponse()}}
	h := newTestHandler(fake)

	body := `{"items": [
		{"pair_id": true, "en": "Valid sentence but boolean id."},
		{"pair_id": {"x":1}, "en": "Valid sentence but object id."},
		{"pair_id": 7, "en": ""},
		{"pair_id": 8, "en": "Only this one survives the filter."}
	]}`

	w, resp := postRecommend(t, h, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if string(resp.Results[0].PairID) != "8" {
		t.Fatalf("pair_id = %s", resp.Results[0].PairID)
	}
}

func TestRecommendHandler_ClampsTopN(t *testing.T) {
	fake := &llm.FakeClient{Responses: []string{fatResponse()}}
	h := newTestHandler(fake)

	w, resp := postRecommend(t, h, `{
		"items": [{"pair_id": 1, "en": "He said that he was tired."}],
		"topN": 100,
		"minScore": -3
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %v", resp.Results)
	}
	if len(resp.Results[0].Recs) > 6 {
		t.Fatalf("topN should clamp to the hard cap, got %d recs", len(resp.Results[0].Recs))
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
