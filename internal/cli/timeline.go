package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/query"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewTimelineCmd creates the 'timeline' command: learnings grouped by
// session, most recent session first.
func NewTimelineCmd() *cobra.Command {
	var (
		window  int
		preview int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show learnings grouped by session",
		Example: `  insight-hub timeline
  insight-hub timeline --window 5 --preview 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := store.Load(storePath(cmd))
			if err != nil {
				return err
			}

			entries := query.Timeline(col, window, preview)
			if len(entries) == 0 {
				fmt.Println("No learnings captured yet.")
				return nil
			}

			for _, entry := range entries {
				fmt.Printf("Session %d (%d learning(s)):\n", entry.Session, entry.TotalCount)
				for _, l := range entry.Learnings {
					fmt.Printf("  • [%s] %s\n", l.Category, l.Content)
				}
				if rest := entry.TotalCount - len(entry.Learnings); rest > 0 {
					fmt.Printf("  … and %d more\n", rest)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", 0, "Number of most recent sessions to show (0 = all)")
	cmd.Flags().IntVarP(&preview, "preview", "p", 3, "Learnings shown per session before summarizing")

	return cmd
}
