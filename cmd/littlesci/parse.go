// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/littlescienceai/littlesci/internal/render"
	"github.com/littlescienceai/littlesci/internal/report"
	"github.com/littlescienceai/littlesci/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a persisted report blob back into a structured model",
	Long: `Parse reads a previously composed report (Markdown or legacy HTML
fragments) and rebuilds the structured model: topic, explanation,
retrieval hits, and research plan. Parsing is total; unrecognized input
yields an empty model with the default topic rather than an error.
With --render the recovered model is rendered to a fresh PDF.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("file", "", "report blob file to parse")
	parseCmd.Flags().String("render", "", "also render the parsed model to this PDF file name")
	parseCmd.Flags().Bool("json", false, "output the model as JSON")
	parseCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	renderOut, _ := cmd.Flags().GetString("render")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading report blob: %w", err)
	}

	model := report.Parse(string(data))

	if renderOut != "" {
		cfg := pipelineConfig()
		renderer := render.NewRenderer(cfg.Render, render.WithLogger(logger))
		path, err := renderer.Render(model, renderOut)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(model)
	}

	printModelSummary(model)
	return nil
}

func printModelSummary(m *types.ReportModel) {
	fmt.Printf("Topic:       %s\n", m.Topic)
	fmt.Printf("Explanation: %d paragraph(s)\n", len(m.Explanation))
	fmt.Printf("Internal:    %d hit(s)\n", len(m.Internal))
	fmt.Printf("Feed:        %d record(s)\n", len(m.Feed))
	if m.Plan != nil {
		fmt.Println("Plan:        present")
	} else {
		fmt.Println("Plan:        none")
	}
}
