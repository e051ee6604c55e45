package recommend

// Rec is one category suggestion: a leaf path from the allowed whitelist, a
// short human-readable justification, and a confidence in [0,1].
type Rec struct {
	Path   string  `json:"path"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score"`
}

// Quality selects the orchestration policy.
type Quality string

const (
	// QualityFast issues one conservative call, one aggressive retry if the
	// result is thin, then falls back to heuristics.
	QualityFast Quality = "fast"
	// QualityHigh samples an ensemble at several temperatures, aggregates by
	// vote, and re-ranks the pool with a verifier pass.
	QualityHigh Quality = "high"
)

// ParseQuality maps an arbitrary selector onto a known quality; anything
// other than "high" means fast.
func ParseQuality(s string) Quality {
	if s == string(QualityHigh) {
		return QualityHigh
	}
	return QualityFast
}
