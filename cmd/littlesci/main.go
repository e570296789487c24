// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the littlesci CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/littlescienceai/littlesci/internal/explain"
	"github.com/littlescienceai/littlesci/internal/secrets"
	"github.com/littlescienceai/littlesci/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is the process logger, nop unless --verbose is set.
var logger = zap.NewNop()

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the littlesci CLI.
var rootCmd = &cobra.Command{
	Use:   "littlesci",
	Short: "Research exploration assistant for student science projects",
	Long: `littlesci turns a research topic into an explained, sourced exploration
report. It expands Korean queries into English search terms, retrieves
matching projects from a local corpus and recent papers from arXiv,
generates student-friendly explanations and a seven-section research plan
through the Claude API, and renders everything into an A4 PDF report.

Each pipeline stage is a subcommand: explain, search, arxiv, plan, report,
parse, and archive.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		sessionKey, _ := cmd.Flags().GetString("session-key")
		if !secrets.Allowed(loadedSecrets, sessionKey) {
			return fmt.Errorf("session key not accepted: check .secrets/%s", secrets.KeySessionKeys)
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			logger = l
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./littlesci.yaml or ~/.config/littlesci/config.yaml)")
	rootCmd.PersistentFlags().String("session-key", "", "session key checked against the session-keys allowlist")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("littlesci")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "littlesci"))
		}
	}

	viper.SetEnvPrefix("LITTLESCI")
	viper.AutomaticEnv()

	viper.SetDefault("corpus.path", "corpus/projects.xlsx")
	viper.SetDefault("corpus.max_features", 5000)
	viper.SetDefault("retrieval.timeout", 30*time.Second)
	viper.SetDefault("retrieval.user_agent", "littlesci/"+version)
	viper.SetDefault("retrieval.max_results", 5)
	viper.SetDefault("retrieval.threshold", 0.15)
	viper.SetDefault("retrieval.fallback_threshold", 0.05)
	viper.SetDefault("explain.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("explain.max_retries", 3)
	viper.SetDefault("explain.cache_ttl", time.Hour)
	viper.SetDefault("render.output_dir", "outputs")
	viper.SetDefault("render.font_regular", "fonts/NanumGothic.ttf")
	viper.SetDefault("render.font_bold", "fonts/NanumGothicBold.ttf")
	viper.SetDefault("archive.dir", "archive")
	viper.SetDefault("archive.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig materializes the full stage configuration from viper.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Corpus: types.CorpusConfig{
			Path:        viper.GetString("corpus.path"),
			MaxFeatures: viper.GetInt("corpus.max_features"),
		},
		Retrieval: types.RetrievalConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("retrieval.timeout"),
				UserAgent: viper.GetString("retrieval.user_agent"),
			},
			MaxResults:        viper.GetInt("retrieval.max_results"),
			Threshold:         viper.GetFloat64("retrieval.threshold"),
			FallbackThreshold: viper.GetFloat64("retrieval.fallback_threshold"),
		},
		Explain: types.ExplainConfig{
			AIConfig: types.AIConfig{
				Model:      viper.GetString("explain.model"),
				APIKey:     viper.GetString("explain.api_key"),
				MaxRetries: viper.GetInt("explain.max_retries"),
			},
			CacheTTL: viper.GetDuration("explain.cache_ttl"),
		},
		Render: types.RenderConfig{
			OutputDir:   viper.GetString("render.output_dir"),
			FontRegular: viper.GetString("render.font_regular"),
			FontBold:    viper.GetString("render.font_bold"),
		},
		Archive: types.ArchiveConfig{
			Dir:        viper.GetString("archive.dir"),
			MaxResults: viper.GetInt("archive.max_results"),
		},
	}
}

// newProvider builds the Claude provider, failing when no API key is
// available. Missing anthropic-api-key is the pipeline's only fatal
// configuration error.
func newProvider(cfg types.ExplainConfig, timeout time.Duration) (*explain.ClaudeProvider, error) {
	key := secretDefault(secrets.KeyAnthropicAPI, cfg.APIKey)
	if key == "" {
		return nil, fmt.Errorf("anthropic-api-key not found: add .secrets/%s or set LITTLESCI_EXPLAIN_API_KEY",
			secrets.KeyAnthropicAPI)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &explain.ClaudeProvider{
		APIKey:     key,
		Client:     &http.Client{Timeout: timeout},
		MaxRetries: cfg.MaxRetries,
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
