// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/littlescienceai/littlesci/internal/archive"
	"github.com/littlescienceai/littlesci/internal/corpus"
	"github.com/littlescienceai/littlesci/internal/explain"
	"github.com/littlescienceai/littlesci/internal/plan"
	"github.com/littlescienceai/littlesci/internal/render"
	"github.com/littlescienceai/littlesci/internal/report"
	"github.com/littlescienceai/littlesci/internal/search"
	"github.com/littlescienceai/littlesci/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full pipeline and render a PDF report",
	Long: `Report runs the whole exploration pipeline for one topic: internal
corpus and arXiv retrieval fan out concurrently, the explainer produces
the topic explanation, and with --idea a research plan is synthesized.
The assembled report is rendered to an A4 PDF under the output directory
and archived; the artifact path is printed on success. When PDF
generation fails, a plain-text backup is written instead.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("topic", "", "research topic")
	reportCmd.Flags().String("idea", "", "research idea; adds a research plan to the report")
	reportCmd.Flags().String("out", "", "output file name (default report-<timestamp>.pdf)")
	reportCmd.Flags().Bool("no-archive", false, "skip archiving the report blob")
	reportCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	idea, _ := cmd.Flags().GetString("idea")
	out, _ := cmd.Flags().GetString("out")
	noArchive, _ := cmd.Flags().GetBool("no-archive")

	cfg := pipelineConfig()
	provider, err := newProvider(cfg.Explain, cfg.Retrieval.Timeout)
	if err != nil {
		return err
	}
	client := explain.NewClient(provider, cfg.Explain, explain.WithLogger(logger))

	store := corpus.Load(cfg.Corpus, corpus.WithLogger(logger))
	corpusRetriever := search.NewCorpusRetriever(store, client, cfg.Retrieval,
		search.WithCorpusLogger(logger))
	feedRetriever := search.NewFeedRetriever(
		&http.Client{Timeout: cfg.Retrieval.Timeout}, client, cfg.Retrieval,
		search.WithFeedLogger(logger))

	ctx := context.Background()
	results := search.Gather(ctx, topic, corpusRetriever, feedRetriever)

	model := &types.ReportModel{
		Topic:       topic,
		Explanation: client.FullTopic(ctx, topic),
		Internal:    results.Internal,
		Feed:        results.Feed,
	}
	if idea != "" {
		synthesizer := plan.NewSynthesizer(provider, cfg.Explain, plan.WithLogger(logger))
		model.Plan = synthesizer.Synthesize(ctx, topic, idea)
	}

	if out == "" {
		out = "report-" + time.Now().Format("20060102-150405") + ".pdf"
	}

	renderer := render.NewRenderer(cfg.Render, render.WithLogger(logger))
	path, err := renderer.Render(model, out)
	if err != nil {
		return err
	}

	if !noArchive {
		archiveReport(ctx, cfg.Archive, model)
	}

	fmt.Println(path)
	return nil
}

// archiveReport persists the report blob, best effort.
func archiveReport(ctx context.Context, cfg types.ArchiveConfig, model *types.ReportModel) {
	store, err := archive.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: report not archived: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Save(ctx, model.Topic, report.Compose(model)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: report not archived: %v\n", err)
	}
}
