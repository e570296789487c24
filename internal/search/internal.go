// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/littlescienceai/littlesci/internal/corpus"
	"github.com/littlescienceai/littlesci/internal/keyword"
	"github.com/littlescienceai/littlesci/pkg/types"
)

// Default retrieval parameters. The relaxed tier is tried only when the
// primary tier yields nothing.
const (
	defaultThreshold         = 0.15
	defaultFallbackThreshold = 0.05
	defaultMaxResults        = 5
)

// CorpusRetriever ranks internal corpus rows against a mapped query using
// cosine similarity over the store's pre-fitted title index.
type CorpusRetriever struct {
	store   *corpus.Store
	glosser Glosser
	cfg     types.RetrievalConfig
	logger  *zap.Logger
}

// CorpusOption configures a CorpusRetriever.
type CorpusOption func(*CorpusRetriever)

// WithCorpusLogger sets an optional logger.
func WithCorpusLogger(l *zap.Logger) CorpusOption {
	return func(r *CorpusRetriever) { r.logger = l }
}

// NewCorpusRetriever builds a retriever over the given store. The glosser
// fills hit summaries lazily and may be nil, in which case summaries stay
// empty.
func NewCorpusRetriever(store *corpus.Store, glosser Glosser, cfg types.RetrievalConfig, opts ...CorpusOption) *CorpusRetriever {
	r := &CorpusRetriever{store: store, glosser: glosser, cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search maps the query to English terms and returns the top-k corpus rows
// above the similarity threshold, descending by score with ties kept in
// table order. It never returns an error: an empty query, an empty corpus,
// or any internal failure all collapse to an empty slice.
func (r *CorpusRetriever) Search(ctx context.Context, query string) (hits []types.InternalHit) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("corpus retrieval panicked, returning no hits", zap.Any("panic", p))
			hits = nil
		}
	}()

	if r.store == nil || r.store.Empty() {
		return nil
	}

	terms := keyword.Map(query)
	if len(terms) == 0 {
		return nil
	}

	vec := r.store.Index().Transform(strings.Join(terms, " "))
	sims := r.store.Index().Similarities(vec)

	selected := aboveThreshold(sims, r.threshold())
	if len(selected) == 0 {
		selected = aboveThreshold(sims, r.fallbackThreshold())
	}
	if len(selected) == 0 {
		return nil
	}

	// Stable sort keeps the underlying table order for equal scores.
	sort.SliceStable(selected, func(i, j int) bool {
		return sims[selected[i]] > sims[selected[j]]
	})

	k := r.maxResults()
	if len(selected) > k {
		selected = selected[:k]
	}

	rows := r.store.Rows()
	hits = make([]types.InternalHit, 0, len(selected))
	for _, idx := range selected {
		hit := types.InternalHit{CorpusRow: rows[idx], Score: sims[idx]}
		if r.glosser != nil {
			hit.Summary = r.glosser.TitleGloss(ctx, hit.Title)
		}
		hits = append(hits, hit)
	}
	return hits
}

// aboveThreshold returns the row indices whose score strictly exceeds the
// cutoff, in table order.
func aboveThreshold(sims []float64, cutoff float64) []int {
	var idxs []int
	for i, s := range sims {
		if s > cutoff {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (r *CorpusRetriever) threshold() float64 {
	if r.cfg.Threshold > 0 {
		return r.cfg.Threshold
	}
	return defaultThreshold
}

func (r *CorpusRetriever) fallbackThreshold() float64 {
	if r.cfg.FallbackThreshold > 0 {
		return r.cfg.FallbackThreshold
	}
	return defaultFallbackThreshold
}

func (r *CorpusRetriever) maxResults() int {
	if r.cfg.MaxResults > 0 {
		return r.cfg.MaxResults
	}
	return defaultMaxResults
}
