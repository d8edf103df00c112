/*
Package main is the entry point for the insight-hub CLI.

insight-hub is a curated knowledge base of development learnings captured
during coding sessions. Learnings are categorized by keyword scoring,
near-duplicates are detected with lexical similarity (Jaccard + containment)
and merged with provenance, and stale entries are archived by session age.

Usage:
  insight-hub [command]

Available Commands:
  add       Capture a development insight
  ingest    Capture learnings in bulk from a file or stdin
  curate    Categorize, merge duplicates, and archive stale learnings
  search    Search active learnings
  list      List active learnings, optionally filtered
  show      Show one learning by id
  stats     Show knowledge base statistics
  timeline  Show learnings grouped by session
  history   Show past curation runs
  serve     Run the MCP server (stdio transport)
  version   Show version information

Examples:
  # Capture and curate
  insight-hub add "FastAPI middleware executes in reverse order of registration" --session 12
  insight-hub curate --dry-run

  # Query
  insight-hub search "middleware order"
  insight-hub list --category gotchas
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/cli"
	"github.com/ankushdixit/insight-hub/internal/version"
)

func main() {
	var storeFlag string

	rootCmd := &cobra.Command{
		Use:   "insight-hub",
		Short: "Curated knowledge base for development learnings",
		Long: `insight-hub keeps the insights you capture during coding sessions useful:
it categorizes them, merges near-duplicates (keeping the most detailed text
and full provenance), archives stale entries, and answers ranked searches.

The knowledge base is a single JSON document (default ~/.insight-hub.json),
read whole and written whole with atomic replacement, never partially.`,
		Version: version.GetVersion(),
	}

	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Store document path (default ~/.insight-hub.json)")

	rootCmd.AddCommand(cli.NewAddCmd())
	rootCmd.AddCommand(cli.NewIngestCmd())
	rootCmd.AddCommand(cli.NewCurateCmd())
	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewListCmd())
	rootCmd.AddCommand(cli.NewShowCmd())
	rootCmd.AddCommand(cli.NewStatsCmd())
	rootCmd.AddCommand(cli.NewTimelineCmd())
	rootCmd.AddCommand(cli.NewHistoryCmd())
	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
