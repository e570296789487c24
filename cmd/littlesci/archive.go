// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/littlescienceai/littlesci/internal/archive"
	"github.com/littlescienceai/littlesci/internal/render"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List, show, and search archived reports",
	Long: `Archive manages the local report archive. Every generated report is
stored as a text blob in SQLite; use subcommands to list past reports,
show or re-render one, or search them with full-text queries.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent archived reports",
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print an archived report blob, or re-render it as a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over archived reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveSearch,
}

func init() {
	archiveShowCmd.Flags().String("render", "", "re-render the report to this PDF file name")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	rootCmd.AddCommand(archiveCmd)
}

func openArchive() (*archive.Store, error) {
	return archive.NewStore(pipelineConfig().Archive)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}
	printArchiveRecords(records)
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid report id %q", args[0])
	}
	renderOut, _ := cmd.Flags().GetString("render")

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), id)
	if err != nil {
		return err
	}

	if renderOut != "" {
		renderer := render.NewRenderer(pipelineConfig().Render, render.WithLogger(logger))
		path, err := renderer.RenderBlob(rec.Blob, renderOut)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	fmt.Print(rec.Blob)
	return nil
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Search(context.Background(), args[0])
	if err != nil {
		return err
	}
	printArchiveRecords(records)
	return nil
}

func printArchiveRecords(records []archive.Record) {
	if len(records) == 0 {
		fmt.Println("No archived reports found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-20s  %s\n", "ID", "Created", "Topic")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
	for _, rec := range records {
		fmt.Fprintf(os.Stdout, "%-6d  %-20s  %s\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Topic)
	}
	fmt.Fprintf(os.Stdout, "\n%d reports\n", len(records))
}
