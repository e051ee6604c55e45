package handler

import (
	"context"
	"log"
	"net/http"

	"gramtax/internal/feedback"
)

// ExportSource supplies the accumulated feedback corpus.
type ExportSource interface {
	All(ctx context.Context) ([]feedback.Entry, error)
}

// ExportTarget writes one snapshot and returns its object key.
type ExportTarget interface {
	Export(ctx context.Context, entries []feedback.Entry) (string, error)
}

// ExportHandler snapshots the feedback corpus to object storage. It answers
// 503 when no export target is configured.
type ExportHandler struct {
	store    ExportSource
	exporter ExportTarget
	log      *log.Logger
}

func NewExportHandler(store ExportSource, exporter ExportTarget, logger *log.Logger) *ExportHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ExportHandler{store: store, exporter: exporter, log: logger}
}

func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.exporter == nil {
		http.Error(w, "export target not configured", http.StatusServiceUnavailable)
		return
	}

	entries, err := h.store.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	key, err := h.exporter.Export(r.Context(), entries)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.log.Printf("feedback export: %d entries to %s", len(entries), key)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"exported": len(entries),
		"key":      key,
	})
}
