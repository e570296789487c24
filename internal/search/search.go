// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search ranks prior work against a student's query from two
// sources: the internal project corpus and the public arXiv feed. Both
// retrievers degrade to sentinel values instead of returning errors; a
// caller always receives a renderable result list.
package search

import (
	"context"
	"sync"

	"github.com/littlescienceai/littlesci/pkg/types"
)

// Glosser produces a one-paragraph pedagogical gloss from a title.
// Satisfied by *explain.Client; tests supply a stub.
type Glosser interface {
	TitleGloss(ctx context.Context, title string) string
}

// Results bundles the output of both retrievers for one query.
type Results struct {
	Internal []types.InternalHit
	Feed     []types.FeedRecord
}

// Gather runs the corpus and feed retrievers concurrently and waits for
// both. The retrievers are independent; either may come back with
// sentinel or empty results without affecting the other.
func Gather(ctx context.Context, query string, corpus *CorpusRetriever, feed *FeedRetriever) Results {
	var (
		res Results
		wg  sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		res.Internal = corpus.Search(ctx, query)
	}()
	go func() {
		defer wg.Done()
		res.Feed = feed.Search(ctx, query)
	}()
	wg.Wait()

	return res
}
