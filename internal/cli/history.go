package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/history"
)

// NewHistoryCmd creates the 'history' command: the log of past curation
// runs.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past curation runs",
		Example: `  insight-hub history
  insight-hub history --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := history.NewStore()
			if err := h.Init(); err != nil {
				return fmt.Errorf("failed to open run log: %w", err)
			}
			defer h.Close()

			runs, err := h.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No curation runs recorded yet.")
				return nil
			}

			fmt.Printf("Curation runs (%d):\n\n", len(runs))
			for _, rec := range runs {
				fmt.Printf("  %s  %d → %d active", rec.RunAt.Format("2006-01-02 15:04"), rec.BeforeCount, rec.AfterCount)
				fmt.Printf("  (categorized %d, merged %d, archived %d)\n", rec.Recategorized, rec.MergedCount, rec.ArchivedCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum runs to show")

	return cmd
}
