// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "littlesci/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call the language-model provider.
type AIConfig struct {
	// Model is the provider model identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the provider API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CorpusConfig holds settings for the internal corpus store.
type CorpusConfig struct {
	// Path is the corpus spreadsheet (.xlsx) or CSV file.
	Path string `json:"path" yaml:"path"`

	// MaxFeatures caps the vocabulary size of the title index (default 5000).
	MaxFeatures int `json:"max_features" yaml:"max_features"`
}

// RetrievalConfig holds settings for both retrievers.
type RetrievalConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults bounds the hit count per retriever (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Threshold is the primary cosine-similarity cutoff (default 0.15).
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// FallbackThreshold is the relaxed cutoff tried when the primary
	// tier yields nothing (default 0.05).
	FallbackThreshold float64 `json:"fallback_threshold" yaml:"fallback_threshold"`
}

// ExplainConfig holds settings for the explainer client and plan synthesizer.
type ExplainConfig struct {
	AIConfig `yaml:",inline"`

	// CacheTTL is how long a cached provider response stays fresh (default 1h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// RenderConfig holds settings for the PDF renderer.
type RenderConfig struct {
	// OutputDir is the directory for generated reports (default "outputs").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// FontRegular is the path to the Korean-capable regular-weight TTF.
	FontRegular string `json:"font_regular" yaml:"font_regular"`

	// FontBold is the path to the bold-weight TTF. When missing, bold
	// requests reuse the regular weight.
	FontBold string `json:"font_bold" yaml:"font_bold"`
}

// ArchiveConfig holds settings for the persisted report archive.
type ArchiveConfig struct {
	// Dir is the base directory for the archive (contains index/).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Corpus    CorpusConfig    `json:"corpus" yaml:"corpus"`
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	Explain   ExplainConfig   `json:"explain" yaml:"explain"`
	Render    RenderConfig    `json:"render" yaml:"render"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive"`
}
