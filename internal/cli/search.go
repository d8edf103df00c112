package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/query"
	"github.com/ankushdixit/insight-hub/internal/search"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewSearchCmd creates the 'search' command for relevance-ranked search.
func NewSearchCmd() *cobra.Command {
	var (
		mode  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search active learnings",
		Long: `Search active learnings with a free-text query.

Modes:
  weighted  Weighted lexical scoring (default): category matches outrank
            tag matches, which outrank content, which outrank context.
            Partial token matches count ("auth" matches "authentication").
  bm25      BM25 full-text relevance (Bleve index).
  hybrid    Weighted and BM25 scores fused 70/30.`,
		Example: `  insight-hub search "auth token"
  insight-hub search middleware --mode bm25
  insight-hub search "connection pool" --mode hybrid --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryText := strings.Join(args, " ")

			col, err := store.Load(storePath(cmd))
			if err != nil {
				return err
			}

			switch mode {
			case "weighted":
				return runWeightedSearch(col, queryText, limit)
			case "bm25", "hybrid":
				return runIndexedSearch(col, queryText, mode, limit)
			default:
				return fmt.Errorf("unknown search mode %q (want weighted, bm25, or hybrid)", mode)
			}
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "weighted", "Search mode: weighted, bm25, or hybrid")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum results")

	return cmd
}

func runWeightedSearch(col *store.Collection, queryText string, limit int) error {
	hits := query.Search(col, queryText)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	if len(hits) == 0 {
		fmt.Println("No matching learnings.")
		return nil
	}

	fmt.Printf("Found %d learning(s):\n\n", len(hits))
	for _, hit := range hits {
		fmt.Printf("  %.1f  %s  [%s]\n", hit.Score, hit.Learning.ID, hit.Learning.Category)
		fmt.Printf("       %s\n", hit.Learning.Content)
	}
	return nil
}

func runIndexedSearch(col *store.Collection, queryText, mode string, limit int) error {
	indexer, err := search.NewIndexer()
	if err != nil {
		return err
	}
	defer indexer.Close()

	if err := indexer.IndexCollection(col); err != nil {
		return err
	}

	var results []search.Result
	if mode == "bm25" {
		results, err = indexer.SearchBM25(queryText, limit)
	} else {
		results, err = indexer.SearchHybrid(col, queryText, limit, search.DefaultFusionConfig)
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matching learnings.")
		return nil
	}

	fmt.Printf("Found %d learning(s):\n\n", len(results))
	for _, r := range results {
		fmt.Printf("  %.2f  %s  [%s]\n", r.Score, r.ID, r.Category)
		fmt.Printf("        %s\n", r.Content)
	}
	return nil
}
