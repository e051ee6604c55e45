package handler

import (
	"encoding/json"
	"net/http"

	"gramtax/internal/split"
)

// SplitHandler exposes the sentence-splitting heuristics to the review flow.
type SplitHandler struct{}

func NewSplitHandler() *SplitHandler { return &SplitHandler{} }

type splitReq struct {
	EN string `json:"en"`
	KO string `json:"ko"`
}

func (h *SplitHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req splitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	enSentences := split.English(req.EN)
	koSentences := split.Korean(req.KO)
	if enSentences == nil {
		enSentences = []string{}
	}
	if koSentences == nil {
		koSentences = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"en_sentences": enSentences,
		"ko_sentences": koSentences,
		"pair":         split.Pair(req.EN, req.KO),
	})
}
