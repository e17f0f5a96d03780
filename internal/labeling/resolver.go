package labeling

import (
	"log/slog"

	"partsplit/internal/catalog"
	"partsplit/internal/config"
	"partsplit/internal/logging"
	"partsplit/internal/textutil"
)

// Similarity scores assigned ahead of the bigram comparison. An exact alias
// hit always wins; whole-word containment ("2nd cornet part" contains
// "2nd cornet") outranks any fuzzy score but stays below exact.
const (
	scoreExact       = 1.0
	scoreContainment = 0.9
)

// ResolvedLabel is the instrument attributed to one page.
type ResolvedLabel struct {
	// PageIndex is the 1-based page position.
	PageIndex int
	// Instrument is the canonical catalog name when Matched, otherwise the
	// best-effort normalized fragment.
	Instrument string
	// Matched reports whether a catalog alias cleared the threshold.
	Matched bool
	// Score is the winning similarity, 0 for unmatched or inherited labels.
	Score float64
	// Alias is the normalized catalog alias that won, empty when unmatched.
	Alias string
}

// Resolver matches page fragments against the catalog.
type Resolver struct {
	aliases      []aliasFingerprint
	threshold    float64
	carryForward bool
	logger       *slog.Logger
}

type aliasFingerprint struct {
	alias       string
	canonical   string
	fingerprint *textutil.Fingerprint
}

// NewResolver builds a resolver over the catalog's normalized alias table.
// Alias fingerprints are computed once here, not per page.
func NewResolver(cat *catalog.Catalog, matching config.Matching, logger *slog.Logger) *Resolver {
	entries := cat.Aliases()
	aliases := make([]aliasFingerprint, 0, len(entries))
	for _, entry := range entries {
		aliases = append(aliases, aliasFingerprint{
			alias:       entry.Alias,
			canonical:   entry.Canonical,
			fingerprint: textutil.NewFingerprint(entry.Alias),
		})
	}
	return &Resolver{
		aliases:      aliases,
		threshold:    matching.SimilarityThreshold,
		carryForward: matching.CarryForwardLabels,
		logger:       logging.NewComponentLogger(logger, "labeling"),
	}
}

// Resolve attributes an instrument label to one page. prev is the previous
// page's result, nil for the first page. Absent text (empty or normalizing
// to empty) inherits prev when the continuation policy is on; a first page
// without text resolves to the unmatched empty label so the segmenter still
// groups it.
func (r *Resolver) Resolve(pageIndex int, raw string, prev *ResolvedLabel) ResolvedLabel {
	normalized := textutil.NormalizeLabel(raw)
	if normalized == "" {
		if prev != nil && r.carryForward {
			r.logger.Debug("label carried forward",
				logging.Int(logging.FieldPage, pageIndex),
				logging.String("instrument", prev.Instrument))
			return ResolvedLabel{
				PageIndex:  pageIndex,
				Instrument: prev.Instrument,
				Matched:    prev.Matched,
			}
		}
		return ResolvedLabel{PageIndex: pageIndex}
	}

	best, score := r.bestAlias(normalized)
	if best != nil && score >= r.threshold {
		r.logger.Debug("label matched", logging.Args(append(
			logging.DecisionAttrs("label_match", "accepted", "similarity cleared threshold"),
			logging.Int(logging.FieldPage, pageIndex),
			logging.String("fragment", normalized),
			logging.String("alias", best.alias),
			logging.String("instrument", best.canonical),
			logging.Float64("score", score),
			logging.Float64("threshold", r.threshold))...)...)
		return ResolvedLabel{
			PageIndex:  pageIndex,
			Instrument: best.canonical,
			Matched:    true,
			Score:      score,
			Alias:      best.alias,
		}
	}

	r.logger.Debug("label unmatched", logging.Args(append(
		logging.DecisionAttrs("label_match", "rejected", "best similarity below threshold"),
		logging.Int(logging.FieldPage, pageIndex),
		logging.String("fragment", normalized),
		logging.Float64("best_score", score),
		logging.Float64("threshold", r.threshold))...)...)
	return ResolvedLabel{PageIndex: pageIndex, Instrument: normalized}
}

// ResolveAll resolves an ordered page-text sequence in one pass, applying the
// continuation rule between consecutive pages. Indices are 1-based.
func (r *Resolver) ResolveAll(texts []string) []ResolvedLabel {
	labels := make([]ResolvedLabel, 0, len(texts))
	var prev *ResolvedLabel
	for i, text := range texts {
		resolved := r.Resolve(i+1, text, prev)
		labels = append(labels, resolved)
		prev = &labels[len(labels)-1]
	}
	return labels
}

// Threshold returns the configured acceptance threshold.
func (r *Resolver) Threshold() float64 {
	return r.threshold
}

func (r *Resolver) bestAlias(normalized string) (*aliasFingerprint, float64) {
	fragment := textutil.NewFingerprint(normalized)
	var best *aliasFingerprint
	bestScore := -1.0
	for i := range r.aliases {
		candidate := &r.aliases[i]
		score := scoreAlias(normalized, fragment, candidate)
		// Ties break toward the longer alias so "solo cornet" beats
		// "cornet" on a "Solo Cornet" page; catalog order settles the rest.
		if score > bestScore || (score == bestScore && best != nil && len(candidate.alias) > len(best.alias)) {
			best = candidate
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestScore
}

func scoreAlias(normalized string, fragment *textutil.Fingerprint, candidate *aliasFingerprint) float64 {
	if normalized == candidate.alias {
		return scoreExact
	}
	if textutil.ContainsWords(normalized, candidate.alias) {
		return scoreContainment
	}
	return textutil.CosineSimilarity(fragment, candidate.fingerprint)
}
