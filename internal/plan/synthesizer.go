// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan synthesizes a seven-section research plan for a chosen
// sub-idea. The provider is asked for a strict JSON object; a ladder of
// increasingly tolerant parsers guarantees a well-formed plan even when
// the response is not JSON at all.
package plan

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/littlescienceai/littlesci/internal/explain"
	"github.com/littlescienceai/littlesci/pkg/types"
)

// profilePlan is the cache profile for synthesis calls, alongside the
// three explainer profiles.
const profilePlan explain.Profile = "plan"

const planMaxTokens = 4000

// planSystemPrompt mandates the exact response shape. The slot names
// double as the JSON keys.
const planSystemPrompt = `당신은 중·고등학생의 연구 계획서 작성을 돕는 과학 선생님입니다.
반드시 아래 일곱 개의 키를 가진 JSON 객체 하나만 출력하세요. JSON 밖에 다른 텍스트를 쓰지 마세요.

{"abstract": "...", "introduction": "...", "methods": "...", "results": "...", "visuals": "...", "conclusion": "...", "references": "..."}

- abstract: 연구 요약 (3~4문장)
- introduction: 연구 배경과 탐구 질문
- methods: 실험 설계와 절차
- results: 예상 결과
- visuals: 결과를 보여줄 표와 그래프 계획
- conclusion: 예상 결론과 한계
- references: 참고할 자료와 출처

모든 값은 한국어로, 학생이 바로 사용할 수 있게 작성합니다.`

// Synthesizer produces research plans through the provider.
type Synthesizer struct {
	provider explain.Provider
	cache    *explain.Cache
	cfg      types.ExplainConfig
	logger   *zap.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets an optional logger for ladder diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Synthesizer) { s.logger = l }
}

// NewSynthesizer builds a Synthesizer around the given provider.
func NewSynthesizer(provider explain.Provider, cfg types.ExplainConfig, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		provider: provider,
		cache:    explain.NewCache(cfg.CacheTTL),
		cfg:      cfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize returns a complete research plan for the topic and idea.
// Every slot is present and at least 20 useful characters long; provider
// failure or unparseable output degrades to the per-slot defaults, never
// to an error.
func (s *Synthesizer) Synthesize(ctx context.Context, topic, idea string) *types.ResearchPlan {
	response := s.complete(ctx, topic, idea)

	sections := parseResponse(response)
	if len(sections) == 0 && strings.TrimSpace(response) != "" {
		s.logger.Warn("plan response yielded no sections, using defaults",
			zap.String("topic", topic))
	}

	p := applyDefaults(sections)
	sanitize(p)
	return p
}

// complete runs the cached provider call. An empty string means the call
// failed; the ladder then resolves every slot to its default.
func (s *Synthesizer) complete(ctx context.Context, topic, idea string) string {
	input := topic + "\x00" + idea
	key := explain.Key(profilePlan, input)
	if v, ok := s.cache.Get(key); ok {
		return v
	}

	user := fmt.Sprintf("주제: %s\n선택한 탐구 아이디어: %s\n\n이 아이디어에 대한 연구 계획서를 작성해 주세요.", topic, idea)
	text, err := s.provider.Complete(ctx, explain.CompleteRequest{
		System:      planSystemPrompt,
		User:        user,
		Model:       s.cfg.Model,
		MaxTokens:   planMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Warn("plan synthesis call failed, using defaults", zap.Error(err))
		return ""
	}

	s.cache.Put(key, text)
	return text
}
