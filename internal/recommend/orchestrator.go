package recommend

import (
	"context"
	"log"
	"time"

	"gramtax/internal/llm"
)

// Options tunes the pipeline. Zero values fall back to the defaults the
// service has always shipped with; the ensemble widening knobs are tunable
// configuration, not invariants.
type Options struct {
	Logger *log.Logger

	MinWords int // below this EN word count, KO is appended for context
	MinDepth int // minimum path depth for a usable recommendation
	MinRec   int // below this count, another source is consulted
	MaxRec   int // hard cap on recommendations per sentence

	MaxTokens       int
	VerifyMaxTokens int
	Timeout         time.Duration
	VerifyTimeout   time.Duration

	FastTemps        [2]float64 // conservative first pass, aggressive retry
	EnsembleTemps    []float64  // one sample per temperature
	VerifyTemp       float64
	WidenScoreMargin float64 // subtracted from minScore before verification

	DefaultScore    float64 // assigned when the model omits score
	PromptLeafLimit int     // whitelist prefix length in prompts

	DefaultLeafPaths []string // fallback when a request carries none
}

func (o *Options) fillDefaults() {
	if o.MinWords == 0 {
		o.MinWords = 4
	}
	if o.MinDepth == 0 {
		o.MinDepth = 2
	}
	if o.MinRec == 0 {
		o.MinRec = 3
	}
	if o.MaxRec == 0 {
		o.MaxRec = 6
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = 900
	}
	if o.VerifyMaxTokens == 0 {
		o.VerifyMaxTokens = 500
	}
	if o.Timeout == 0 {
		o.Timeout = 20 * time.Second
	}
	if o.VerifyTimeout == 0 {
		o.VerifyTimeout = 20 * time.Second
	}
	if o.FastTemps == [2]float64{} {
		o.FastTemps = [2]float64{0.3, 0.6}
	}
	if len(o.EnsembleTemps) == 0 {
		o.EnsembleTemps = []float64{0.2, 0.4, 0.7}
	}
	if o.VerifyTemp == 0 {
		o.VerifyTemp = 0.2
	}
	if o.WidenScoreMargin == 0 {
		o.WidenScoreMargin = 0.05
	}
	if o.DefaultScore == 0 {
		o.DefaultScore = 0.66
	}
	if o.PromptLeafLimit == 0 {
		o.PromptLeafLimit = 400
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if len(o.DefaultLeafPaths) == 0 {
		o.DefaultLeafPaths = DefaultTaxonomy
	}
}

// Recommender runs the per-sentence pipeline against one model client.
type Recommender struct {
	client llm.Client
	opts   Options
}

func New(client llm.Client, opts Options) *Recommender {
	opts.fillDefaults()
	return &Recommender{client: client, opts: opts}
}

// MaxRec reports the hard cap on recommendations per sentence.
func (r *Recommender) MaxRec() int { return r.opts.MaxRec }

// DefaultLeafPaths reports the injected fallback whitelist.
func (r *Recommender) DefaultLeafPaths() []string { return r.opts.DefaultLeafPaths }

// Recommend produces up to topN whitelist-member recommendations for one
// sentence pair. It never returns an error: any failure along the model path
// degrades to the heuristic fallback, possibly yielding an empty list.
//
// Fast quality: one conservative call, one aggressive retry when the result
// is at or below the thin threshold, heuristics to top up. High quality: an
// ensemble sample per configured temperature, vote aggregation over a widened
// pool, a verifier re-rank, then heuristics to top up.
func (r *Recommender) Recommend(ctx context.Context, en, ko string, leafList []string, quality Quality, topN int, minScore float64) []Rec {
	if len(leafList) == 0 {
		leafList = r.opts.DefaultLeafPaths
	}
	allow := make(map[string]struct{}, len(leafList))
	for _, p := range leafList {
		allow[NormalizeSpace(p)] = struct{}{}
	}

	enNorm := NormalizeSpace(en)
	koNorm := NormalizeSpace(ko)

	// Short EN inputs get the KO gloss appended so the model has enough
	// context; the returned paths are unaffected.
	baseEN := enNorm
	if wordCount(enNorm) < r.opts.MinWords && koNorm != "" {
		baseEN = enNorm + ". " + koNorm
	}

	if quality == QualityHigh {
		return r.highQuality(ctx, baseEN, enNorm, koNorm, leafList, allow, topN, minScore)
	}
	return r.fastQuality(ctx, baseEN, enNorm, koNorm, leafList, allow, topN, minScore)
}

func (r *Recommender) fastQuality(ctx context.Context, baseEN, enNorm, koNorm string, leafList []string, allow map[string]struct{}, topN int, minScore float64) []Rec {
	recs, err := r.askOnce(ctx, baseEN, koNorm, leafList, allow, r.opts.FastTemps[0], topN, minScore, passConservative)
	if err != nil {
		r.opts.Logger.Printf("recommend: fast pass failed, heuristic fallback: %v", err)
		return capN(Heuristic(enNorm, allow, r.opts.MaxRec), topN)
	}
	if len(recs) < r.opts.MinRec {
		more, err := r.askOnce(ctx, baseEN, koNorm, leafList, allow, r.opts.FastTemps[1], topN, minScore, passAggressive)
		if err != nil {
			r.opts.Logger.Printf("recommend: retry pass failed: %v", err)
		} else {
			recs = capN(uniqByPath(append(recs, more...)), topN)
		}
	}
	if len(recs) < r.opts.MinRec {
		recs = capN(uniqByPath(append(recs, Heuristic(enNorm, allow, r.opts.MaxRec)...)), topN)
	}
	return recs
}

func (r *Recommender) highQuality(ctx context.Context, baseEN, enNorm, koNorm string, leafList []string, allow map[string]struct{}, topN int, minScore float64) []Rec {
	// Samples and the aggregate pool run at a widened floor so borderline
	// candidates reach the verifier; the response floor stays minScore.
	widenedFloor := minScore - r.opts.WidenScoreMargin
	if widenedFloor < 0 {
		widenedFloor = 0
	}

	buckets := make([][]Rec, 0, len(r.opts.EnsembleTemps))
	failures := 0
	for _, temp := range r.opts.EnsembleTemps {
		out, err := r.askOnce(ctx, baseEN, koNorm, leafList, allow, temp, topN*2, widenedFloor, passConservative)
		if err != nil {
			// A failed sample is simply absent from aggregation.
			r.opts.Logger.Printf("recommend: ensemble sample (temp=%.1f) failed: %v", temp, err)
			failures++
			continue
		}
		buckets = append(buckets, out)
	}
	if failures == len(r.opts.EnsembleTemps) {
		return capN(Heuristic(enNorm, allow, r.opts.MaxRec), topN)
	}

	combined := AggregateEnsemble(buckets, allow, topN*2, widenedFloor)

	verified, err := r.verifyAndRefine(ctx, enNorm, koNorm, leafList, allow, combined, topN, minScore)
	if err != nil {
		r.opts.Logger.Printf("recommend: verifier pass failed, keeping aggregate: %v", err)
		verified = r.filter(combined, allow, topN, minScore)
	}
	if len(verified) < r.opts.MinRec {
		verified = capN(uniqByPath(append(verified, Heuristic(enNorm, allow, r.opts.MaxRec)...)), topN)
	}
	return verified
}

// askOnce performs one sampled model call and applies the first-stage filter:
// non-empty whitelist-member path, minimum depth, score at or above the floor.
func (r *Recommender) askOnce(ctx context.Context, en, ko string, leafList []string, allow map[string]struct{}, temperature float64, topN int, minScore float64, p pass) ([]Rec, error) {
	raw, err := r.client.Complete(ctx, llm.ChatRequest{
		Temperature:    temperature,
		MaxTokens:      r.opts.MaxTokens,
		ResponseFormat: BuildSchema(leafList, r.opts.MaxRec),
		Messages:       buildMessages(en, ko, leafList, r.opts.MinRec, topN, r.opts.PromptLeafLimit, p),
		Timeout:        r.opts.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return r.filter(ParseItems(raw, r.opts.DefaultScore), allow, topN, minScore), nil
}

// verifyAndRefine runs the judge pass over the aggregated candidates.
func (r *Recommender) verifyAndRefine(ctx context.Context, en, ko string, leafList []string, allow map[string]struct{}, candidates []Rec, topN int, minScore float64) ([]Rec, error) {
	raw, err := r.client.Complete(ctx, llm.ChatRequest{
		Temperature:    r.opts.VerifyTemp,
		MaxTokens:      r.opts.VerifyMaxTokens,
		ResponseFormat: BuildSchema(leafList, r.opts.MaxRec),
		Messages:       buildVerifierMessages(en, ko, leafList, candidates, topN, minScore, r.opts.PromptLeafLimit),
		Timeout:        r.opts.VerifyTimeout,
	})
	if err != nil {
		return nil, err
	}
	return r.filter(ParseItems(raw, r.opts.DefaultScore), allow, topN, minScore), nil
}

// filter drops invalid recommendations outright; a Rec is never repaired.
func (r *Recommender) filter(recs []Rec, allow map[string]struct{}, topN int, minScore float64) []Rec {
	out := make([]Rec, 0, len(recs))
	for _, rec := range recs {
		if rec.Path == "" {
			continue
		}
		if _, ok := allow[rec.Path]; !ok {
			continue
		}
		if depthOf(rec.Path) < r.opts.MinDepth {
			continue
		}
		if rec.Score < minScore {
			continue
		}
		out = append(out, rec)
		if len(out) >= topN {
			break
		}
	}
	return uniqByPath(out)
}

func capN(recs []Rec, n int) []Rec {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}
