package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"gramtax/internal/feedback"
)

// Embedder vectorizes one text; the learn handler tolerates a nil Embedder
// by storing entries without vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Model() string
}

// LearnHandler accepts teacher-confirmed labels and forwards them to the
// feedback store along with an embedding and path-usage bumps.
type LearnHandler struct {
	store    *feedback.Store
	embedder Embedder
	log      *log.Logger
}

func NewLearnHandler(store *feedback.Store, embedder Embedder, logger *log.Logger) *LearnHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &LearnHandler{store: store, embedder: embedder, log: logger}
}

type learnReqItem struct {
	MaterialID  string   `json:"material_id"`
	PairID      int64    `json:"pair_id"`
	EN          string   `json:"en"`
	KO          string   `json:"ko"`
	Paths       []string `json:"paths"`
	TeacherName string   `json:"teacher_name"`
}

type learnReq struct {
	Items []learnReqItem `json:"items"`
}

func (h *LearnHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req learnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "inserted": 0})
		return
	}

	inserted := 0
	for _, it := range req.Items {
		en := strings.TrimSpace(it.EN)
		paths := nonEmpty(it.Paths)
		if en == "" || len(paths) == 0 {
			continue
		}

		entry := feedback.Entry{
			MaterialID:  it.MaterialID,
			PairID:      it.PairID,
			EN:          en,
			KO:          strings.TrimSpace(it.KO),
			Paths:       paths,
			TeacherName: it.TeacherName,
		}

		if h.embedder != nil {
			// EN+KO together gives the embedding richer context.
			embText := en
			if entry.KO != "" {
				embText = en + "\n" + entry.KO
			}
			vec, err := h.embedder.Embed(r.Context(), embText)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			entry.Embedding = vec
			entry.EmbeddingModel = h.embedder.Model()
		}

		if err := h.store.Put(r.Context(), entry); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if err := h.store.BumpPaths(r.Context(), paths); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		inserted++
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "inserted": inserted})
}

func nonEmpty(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
