// Package handler implements the HTTP boundary: the batch recommendation
// endpoint, the learn store-and-forward endpoint, the sentence splitter, and
// the feedback export trigger. All endpoints are POST-only JSON; CORS
// preflight is handled by the middleware wrapping the mux.
package handler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
