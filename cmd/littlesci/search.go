// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/littlescienceai/littlesci/internal/corpus"
	"github.com/littlescienceai/littlesci/internal/explain"
	"github.com/littlescienceai/littlesci/internal/search"
	"github.com/littlescienceai/littlesci/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the internal project corpus",
	Long: `Search expands the topic into English search terms, scores corpus
project titles by cosine similarity, and returns the best matches above
the similarity threshold. With an API key available, each hit gets a
one-line Korean gloss; without one, hits are returned without summaries.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("topic", "", "research topic or question")
	searchCmd.Flags().Int("max-results", 0, "maximum number of hits (default 5)")
	searchCmd.Flags().Bool("json", false, "output hits as JSON")
	searchCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := pipelineConfig()
	if maxResults > 0 {
		cfg.Retrieval.MaxResults = maxResults
	}

	store := corpus.Load(cfg.Corpus, corpus.WithLogger(logger))

	// The gloss step is best effort: without an API key the hits come
	// back without summaries instead of failing.
	var glosser search.Glosser
	if provider, err := newProvider(cfg.Explain, cfg.Retrieval.Timeout); err == nil {
		glosser = explain.NewClient(provider, cfg.Explain, explain.WithLogger(logger))
	} else {
		fmt.Fprintf(os.Stderr, "warning: %v; returning hits without summaries\n", err)
	}

	retriever := search.NewCorpusRetriever(store, glosser, cfg.Retrieval,
		search.WithCorpusLogger(logger))
	hits := retriever.Search(context.Background(), topic)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	printInternalHits(hits)
	return nil
}

func printInternalHits(hits []types.InternalHit) {
	if len(hits) == 0 {
		fmt.Println("No matching projects found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-50s  %-6s  %s\n", "Score", "Title", "Year", "Category")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, hit := range hits {
		title := hit.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-6.3f  %-50s  %-6s  %s\n", hit.Score, title, hit.Year, hit.Category)
		if hit.Summary != "" {
			fmt.Fprintf(os.Stdout, "        %s\n", hit.Summary)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d hits\n", len(hits))
}
