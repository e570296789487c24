// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/littlescienceai/littlesci/internal/explain"
	"github.com/littlescienceai/littlesci/internal/httputil"
	"github.com/littlescienceai/littlesci/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "http://export.arxiv.org/api/query"

// feedSource labels every record produced by this retriever, sentinels
// included.
const feedSource = "arXiv"

// Sentinel titles for the two degraded outcomes: an upstream failure and a
// well-formed feed with no entries.
const (
	SentinelFailure = "arXiv 검색 실패"
	SentinelEmpty   = "검색 결과 없음"
)

// FeedRetriever queries the arXiv Atom feed and normalizes entries into
// FeedRecords.
type FeedRetriever struct {
	client  *http.Client
	glosser Glosser
	cfg     types.RetrievalConfig
	logger  *zap.Logger
}

// FeedOption configures a FeedRetriever.
type FeedOption func(*FeedRetriever)

// WithFeedLogger sets an optional logger.
func WithFeedLogger(l *zap.Logger) FeedOption {
	return func(r *FeedRetriever) { r.logger = l }
}

// NewFeedRetriever builds a retriever over the arXiv API. The glosser may
// be nil; entry summaries are then kept verbatim.
func NewFeedRetriever(client *http.Client, glosser Glosser, cfg types.RetrievalConfig, opts ...FeedOption) *FeedRetriever {
	if client == nil {
		client = http.DefaultClient
	}
	r := &FeedRetriever{client: client, glosser: glosser, cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search queries the feed with the raw user query (not the mapped term
// bag) and returns up to max-results normalized records. Failures never
// propagate: an upstream error yields the single failure sentinel and an
// empty feed yields the single no-results sentinel.
func (r *FeedRetriever) Search(ctx context.Context, query string) []types.FeedRecord {
	records, err := r.fetch(ctx, query)
	if err != nil {
		r.logger.Warn("arXiv fetch failed, returning sentinel", zap.Error(err))
		return []types.FeedRecord{{Title: SentinelFailure, Source: feedSource}}
	}
	if len(records) == 0 {
		return []types.FeedRecord{{
			Title:   SentinelEmpty,
			Summary: fmt.Sprintf("'%s'에 대한 arXiv 검색 결과가 없습니다. 더 일반적인 검색어로 다시 시도해 보세요.", strings.TrimSpace(query)),
			Source:  feedSource,
		}}
	}
	return records
}

func (r *FeedRetriever) fetch(ctx context.Context, query string) ([]types.FeedRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	maxResults := r.cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	reqURL := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, r.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []types.FeedRecord
	for _, entry := range feed.Entries {
		title := strings.Join(strings.Fields(entry.Title), " ")
		if title == "" {
			continue
		}
		records = append(records, types.FeedRecord{
			Title:   title,
			Summary: r.summarize(ctx, title, strings.TrimSpace(entry.Summary)),
			Link:    entry.link(),
			Source:  feedSource,
		})
		if len(records) == maxResults {
			break
		}
	}
	return records, nil
}

// summarize replaces the entry abstract with a short Korean gloss when the
// glosser produces one, keeping the original abstract otherwise.
func (r *FeedRetriever) summarize(ctx context.Context, title, original string) string {
	if r.glosser == nil {
		return original
	}
	gloss := r.glosser.TitleGloss(ctx, title)
	if gloss == "" || gloss == explain.Fallback {
		return original
	}
	return gloss
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID      string     `xml:"id"`
	Title   string     `xml:"title"`
	Summary string     `xml:"summary"`
	Links   []atomLink `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// link returns the entry's abstract-page URL: the alternate link when
// present, else the first link, else the entry ID.
func (e atomEntry) link() string {
	for _, l := range e.Links {
		if l.Rel == "alternate" && l.Href != "" {
			return l.Href
		}
	}
	for _, l := range e.Links {
		if l.Href != "" {
			return l.Href
		}
	}
	return strings.TrimSpace(e.ID)
}
