package handler

import (
	"encoding/json"
	"net/http"

	"gramtax/internal/taxonomy"
)

// TaxonomyHandler materializes leaf paths for a caller-supplied node tree and
// resolves recommended path strings back onto node ids so callers can apply
// results without re-implementing the fuzzy matching.
type TaxonomyHandler struct{}

func NewTaxonomyHandler() *TaxonomyHandler { return &TaxonomyHandler{} }

type taxonomyReq struct {
	Nodes []taxonomy.Node `json:"nodes"`
	Paths []string        `json:"paths"`
}

type resolvedPath struct {
	Path   string `json:"path"`
	NodeID string `json:"node_id,omitempty"`
	Found  bool   `json:"found"`
	Leaf   bool   `json:"leaf"`
}

func (h *TaxonomyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req taxonomyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resolver := taxonomy.NewResolver(req.Nodes)

	leafPaths := resolver.LeafPaths()
	if leafPaths == nil {
		leafPaths = []string{}
	}

	resolved := make([]resolvedPath, 0, len(req.Paths))
	for _, p := range req.Paths {
		id, ok := resolver.Resolve(p)
		rp := resolvedPath{Path: p, Found: ok}
		if ok {
			rp.NodeID = id
			rp.Leaf = resolver.IsLeaf(id)
		}
		resolved = append(resolved, rp)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leaf_paths": leafPaths,
		"resolved":   resolved,
	})
}
