// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/littlescienceai/littlesci/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a seven-section research plan",
	Long: `Plan asks the language model for a structured research plan (abstract,
introduction, methods, results, visuals, conclusion, references) for a
topic and research idea. Malformed model output is repaired section by
section; sections that cannot be recovered fall back to fixed Korean
scaffold text, so the plan always has all seven sections.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("topic", "", "research topic")
	planCmd.Flags().String("idea", "", "the student's research idea")
	planCmd.Flags().Bool("json", false, "output the plan as JSON instead of YAML")
	planCmd.MarkFlagRequired("topic")
	planCmd.MarkFlagRequired("idea")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	idea, _ := cmd.Flags().GetString("idea")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := pipelineConfig()
	provider, err := newProvider(cfg.Explain, cfg.Retrieval.Timeout)
	if err != nil {
		return err
	}

	synthesizer := plan.NewSynthesizer(provider, cfg.Explain, plan.WithLogger(logger))
	p := synthesizer.Synthesize(context.Background(), topic, idea)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
