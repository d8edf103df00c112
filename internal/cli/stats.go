package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/query"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewStatsCmd creates the 'stats' command for aggregate statistics.
func NewStatsCmd() *cobra.Command {
	var (
		topTags    int
		recent     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		Example: `  insight-hub stats
  insight-hub stats --top 5 --recent 10
  insight-hub stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := store.Load(storePath(cmd))
			if err != nil {
				return err
			}

			stats := query.Statistics(col, topTags, recent)

			if jsonOutput {
				data, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Println("Knowledge Base Statistics")
			fmt.Println("=========================")
			fmt.Printf("Active learnings:   %d\n", stats.Total)
			fmt.Printf("Archived learnings: %d\n", stats.Archived)
			fmt.Println()

			if len(stats.Categories) > 0 {
				fmt.Println("By category:")
				for _, c := range stats.Categories {
					fmt.Printf("  %-22s %4d (%.1f%%)\n", c.Category, c.Count, c.Percent)
				}
				fmt.Println()
			}

			if len(stats.TopTags) > 0 {
				fmt.Printf("Top %d tags:\n", len(stats.TopTags))
				for _, t := range stats.TopTags {
					fmt.Printf("  %-22s %4d\n", t.Tag, t.Count)
				}
				fmt.Println()
			}

			fmt.Printf("Captured in last %d sessions: %d\n", stats.RecentSessions, stats.RecentCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&topTags, "top", 10, "Number of top tags to show")
	cmd.Flags().IntVar(&recent, "recent", 5, "Recent-session window for growth count")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}
