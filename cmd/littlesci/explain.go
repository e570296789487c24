// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/littlescienceai/littlesci/internal/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain a research topic in student-friendly Korean",
	Long: `Explain asks the language model for a structured Korean explanation of
a research topic. The default profile produces a full sectioned
explanation; --quick produces a shorter summary. Responses are cached
for an hour, and provider failures degrade to a fixed fallback message
instead of an error.`,
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().String("topic", "", "research topic to explain")
	explainCmd.Flags().Bool("quick", false, "use the shorter quick-summary profile")
	explainCmd.Flags().Bool("json", false, "output paragraphs as JSON")
	explainCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	quick, _ := cmd.Flags().GetBool("quick")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := pipelineConfig()
	provider, err := newProvider(cfg.Explain, cfg.Retrieval.Timeout)
	if err != nil {
		return err
	}
	client := explain.NewClient(provider, cfg.Explain, explain.WithLogger(logger))

	ctx := context.Background()
	var paragraphs []string
	if quick {
		paragraphs = client.QuickSummary(ctx, topic)
	} else {
		paragraphs = client.FullTopic(ctx, topic)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(paragraphs)
	}

	fmt.Println(strings.Join(paragraphs, "\n\n"))
	return nil
}
