// Package taxonomy maps free-text category path strings onto nodes of the
// caller-supplied grammar taxonomy tree. The model may emit a path with
// cosmetic differences from the authoritative string (extra space, curly vs.
// straight quote), so resolution prefers exactness but tolerates variance
// rather than discarding otherwise-correct suggestions.
package taxonomy

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Node is one taxonomy row. ParentID is empty for roots. A node is a leaf
// iff no other node names it as parent.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

const rootKey = "root"

var wsRe = regexp.MustCompile(`\s+`)

// normalizeName applies NFKC, collapses whitespace, and strips spacing around
// ">" and parentheses, the same normalization on both query and node names.
func normalizeName(s string) string {
	s = norm.NFKC.String(s)
	s = wsRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " > ", ">")
	s = strings.ReplaceAll(s, "> ", ">")
	s = strings.ReplaceAll(s, " >", ">")
	s = strings.ReplaceAll(s, " (", "(")
	s = strings.ReplaceAll(s, "( ", "(")
	s = strings.ReplaceAll(s, " )", ")")
	s = strings.ReplaceAll(s, ") ", ")")
	return strings.TrimSpace(s)
}

// Resolver resolves " > " joined path strings against one tree snapshot.
// Children keep the order nodes were supplied in, which makes the fuzzy
// tie-break deterministic: the first sibling satisfying a tier wins.
type Resolver struct {
	byParentName     map[string]string
	childrenByParent map[string][]Node
	hasChildren      map[string]bool
	order            []Node
}

func NewResolver(nodes []Node) *Resolver {
	r := &Resolver{
		byParentName:     make(map[string]string, len(nodes)),
		childrenByParent: make(map[string][]Node),
		hasChildren:      make(map[string]bool),
		order:            nodes,
	}
	for _, n := range nodes {
		pid := n.ParentID
		if pid == "" {
			pid = rootKey
		}
		r.childrenByParent[pid] = append(r.childrenByParent[pid], n)
		key := pid + "|||" + normalizeName(n.Name)
		if _, exists := r.byParentName[key]; !exists {
			r.byParentName[key] = n.ID
		}
		if n.ParentID != "" {
			r.hasChildren[n.ParentID] = true
		}
	}
	return r
}

// Resolve walks the query's ">" segments top-down. Each level tries an exact
// normalized-name match among the current parent's children, then falls back
// in order to prefix/suffix containment and substring containment. It returns
// the final segment's node id, or ("", false) when any segment fails.
func (r *Resolver) Resolve(path string) (string, bool) {
	raw := strings.TrimSpace(path)
	if raw == "" {
		return "", false
	}

	var parts []string
	for _, p := range strings.Split(raw, ">") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", false
	}

	parent := rootKey
	var cur string
	for _, part := range parts {
		p0 := normalizeName(part)
		found, ok := r.byParentName[parent+"|||"+p0]
		if !ok {
			found, ok = r.fuzzyChild(parent, p0)
		}
		if !ok {
			return "", false
		}
		cur = found
		parent = found
	}
	return cur, true
}

func (r *Resolver) fuzzyChild(parent, p0 string) (string, bool) {
	candidates := r.childrenByParent[parent]
	tiers := []func(name string) bool{
		func(name string) bool { return name == p0 },
		func(name string) bool { return strings.HasPrefix(name, p0) || strings.HasPrefix(p0, name) },
		func(name string) bool { return strings.Contains(name, p0) || strings.Contains(p0, name) },
	}
	for _, match := range tiers {
		for _, c := range candidates {
			if match(normalizeName(c.Name)) {
				return c.ID, true
			}
		}
	}
	return "", false
}

// IsLeaf reports whether the node has no children in this snapshot.
func (r *Resolver) IsLeaf(id string) bool {
	return !r.hasChildren[id]
}

// LeafPaths materializes the " > " joined root-to-leaf path for every leaf,
// in the stable order nodes were supplied. This is the whitelist enumeration
// handed to the recommendation pipeline.
func (r *Resolver) LeafPaths() []string {
	names := make(map[string]Node, len(r.order))
	for _, n := range r.order {
		names[n.ID] = n
	}
	var out []string
	for _, n := range r.order {
		if r.hasChildren[n.ID] {
			continue
		}
		var segs []string
		cur := n
		for {
			segs = append([]string{cur.Name}, segs...)
			if cur.ParentID == "" {
				break
			}
			p, ok := names[cur.ParentID]
			if !ok {
				break
			}
			cur = p
		}
		out = append(out, strings.Join(segs, " > "))
	}
	return out
}
