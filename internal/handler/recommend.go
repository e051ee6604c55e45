package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"gramtax/internal/recommend"
)

// RecommendHandler is the batch boundary of the recommendation pipeline.
type RecommendHandler struct {
	rec *recommend.Recommender
	log *log.Logger
}

func NewRecommendHandler(rec *recommend.Recommender, logger *log.Logger) *RecommendHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &RecommendHandler{rec: rec, log: logger}
}

type recommendReqItem struct {
	PairID json.RawMessage `json:"pair_id"`
	EN     string          `json:"en"`
	KO     string          `json:"ko"`
}

type recommendReq struct {
	Items     []recommendReqItem `json:"items"`
	LeafPaths []string           `json:"leafPaths"`
	TopN      *float64           `json:"topN"`
	MinScore  *float64           `json:"minScore"`
	Quality   string             `json:"quality"`
}

type recommendResult struct {
	PairID json.RawMessage `json:"pair_id"`
	Recs   []recommend.Rec `json:"recs"`
}

// Handle validates the batch, fans out per-sentence orchestration
// concurrently, and assembles one result per pair_id. Items with no usable
// pair_id or en are skipped rather than failing the batch; only an unreadable
// body yields a 500.
func (h *RecommendHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req recommendReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	items := validItems(req.Items)
	if len(items) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"results": []recommendResult{}})
		return
	}

	leafPaths := normalizedPaths(req.LeafPaths)
	if len(leafPaths) == 0 {
		leafPaths = h.rec.DefaultLeafPaths()
	}

	topN := clampTopN(req.TopN, h.rec.MaxRec())
	minScore := clampMinScore(req.MinScore)
	quality := recommend.ParseQuality(req.Quality)

	results := make([]recommendResult, len(items))
	var wg sync.WaitGroup
	for i, it := range items {
		wg.Add(1)
		go func(i int, it recommendReqItem) {
			defer wg.Done()
			recs := h.rec.Recommend(r.Context(), it.EN, it.KO, leafPaths, quality, topN, minScore)
			if recs == nil {
				recs = []recommend.Rec{}
			}
			results[i] = recommendResult{PairID: it.PairID, Recs: recs}
		}(i, it)
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// validItems keeps items whose pair_id is a JSON string or number and whose
// en is a non-empty string, mirroring the lenient body policy: bad fields
// become defaults or skips, never a batch rejection.
func validItems(items []recommendReqItem) []recommendReqItem {
	out := make([]recommendReqItem, 0, len(items))
	for _, it := range items {
		if it.EN == "" || !isStringOrNumber(it.PairID) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func isStringOrNumber(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v.(type) {
	case string, float64:
		return true
	}
	return false
}

func normalizedPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if np := recommend.NormalizeSpace(p); np != "" {
			out = append(out, np)
		}
	}
	return out
}

func clampTopN(v *float64, max int) int {
	if v == nil {
		return max
	}
	n := int(*v)
	if n < 1 {
		n = 1
	}
	if n > max {
		n = max
	}
	return n
}

func clampMinScore(v *float64) float64 {
	if v == nil {
		return 0
	}
	s := *v
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
