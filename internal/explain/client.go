// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explain produces pedagogical explanations through the
// language-model provider. Three prompt profiles are supported; every call
// goes through a content-hashed TTL cache, and provider failures degrade
// to a fixed fallback string rather than an error.
package explain

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/littlescienceai/littlesci/pkg/types"
)

// Fallback is returned in place of provider output when a call fails.
const Fallback = "AI 설명을 생성할 수 없습니다."

// per-profile token budgets. The essay profile needs room for seven
// sections; a title gloss is a few sentences.
const (
	fullTopicMaxTokens    = 3000
	quickSummaryMaxTokens = 1200
	titleGlossMaxTokens   = 400
)

// Client issues profile-shaped provider calls with caching.
type Client struct {
	provider Provider
	cache    *Cache
	cfg      types.ExplainConfig
	logger   *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets an optional logger for degraded-call diagnostics.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a Client around the given provider.
func NewClient(provider Provider, cfg types.ExplainConfig, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		cache:    NewCache(cfg.CacheTTL),
		cfg:      cfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FullTopic returns the seven-section pedagogical essay for a topic, split
// into ordered paragraphs. On provider failure the list holds the single
// fallback string; the returned list is never empty.
func (c *Client) FullTopic(ctx context.Context, topic string) []string {
	return splitParagraphs(c.complete(ctx, ProfileFullTopic, topic, fullTopicMaxTokens))
}

// QuickSummary returns the compressed five-section variant as paragraphs.
func (c *Client) QuickSummary(ctx context.Context, topic string) []string {
	return splitParagraphs(c.complete(ctx, ProfileQuickSummary, topic, quickSummaryMaxTokens))
}

// TitleGloss infers a 3-4 sentence summary from a project title alone.
func (c *Client) TitleGloss(ctx context.Context, title string) string {
	return c.complete(ctx, ProfileTitleGloss, title, titleGlossMaxTokens)
}

// complete runs one cached provider call. The raw provider text is cached
// so repeated calls within the TTL are byte-identical; callers split or
// trim afterwards.
func (c *Client) complete(ctx context.Context, profile Profile, input string, maxTokens int) string {
	if strings.TrimSpace(input) == "" {
		return Fallback
	}

	key := Key(profile, input)
	if v, ok := c.cache.Get(key); ok {
		return v
	}

	text, err := c.provider.Complete(ctx, CompleteRequest{
		System:      systemPrompt,
		User:        userPrompt(profile, input),
		Model:       c.cfg.Model,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		c.logger.Warn("explainer call degraded to fallback",
			zap.String("profile", string(profile)), zap.Error(err))
		return Fallback
	}

	c.cache.Put(key, text)
	return text
}

// splitParagraphs splits provider text on blank-line boundaries into an
// ordered list of non-empty paragraphs. The result always has length >= 1.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p := strings.TrimSpace(block); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{Fallback}
	}
	return paragraphs
}
