// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/littlescienceai/littlesci/internal/explain"
	"github.com/littlescienceai/littlesci/internal/search"
	"github.com/littlescienceai/littlesci/pkg/types"
)

var arxivCmd = &cobra.Command{
	Use:   "arxiv",
	Short: "Search arXiv for recent papers on a topic",
	Long: `Arxiv queries the arXiv Atom API for recent papers matching the topic.
Network or feed failures produce a single sentinel record rather than an
error, so the surrounding pipeline always has something to show. With an
API key available, abstracts are replaced by one-line Korean glosses.`,
	RunE: runArxiv,
}

func init() {
	arxivCmd.Flags().String("topic", "", "research topic or question")
	arxivCmd.Flags().Int("max-results", 0, "maximum number of records (default 5)")
	arxivCmd.Flags().Bool("json", false, "output records as JSON")
	arxivCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(arxivCmd)
}

func runArxiv(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := pipelineConfig()
	if maxResults > 0 {
		cfg.Retrieval.MaxResults = maxResults
	}

	var glosser search.Glosser
	if provider, err := newProvider(cfg.Explain, cfg.Retrieval.Timeout); err == nil {
		glosser = explain.NewClient(provider, cfg.Explain, explain.WithLogger(logger))
	} else {
		fmt.Fprintf(os.Stderr, "warning: %v; returning records without glosses\n", err)
	}

	httpClient := &http.Client{Timeout: cfg.Retrieval.Timeout}
	retriever := search.NewFeedRetriever(httpClient, glosser, cfg.Retrieval,
		search.WithFeedLogger(logger))
	records := retriever.Search(context.Background(), topic)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	printFeedRecords(records)
	return nil
}

func printFeedRecords(records []types.FeedRecord) {
	for i, rec := range records {
		fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, rec.Title)
		if rec.Summary != "" {
			fmt.Fprintf(os.Stdout, "   %s\n", rec.Summary)
		}
		if rec.Link != "" {
			fmt.Fprintf(os.Stdout, "   %s\n", rec.Link)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d records\n", len(records))
}
