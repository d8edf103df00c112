package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/query"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewShowCmd creates the 'show' command for id-based lookup. Unlike list and
// search, show also resolves archived learnings and ids that were absorbed
// by a merge.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one learning by id (active, archived, or merged)",
		Example: `  insight-hub show L1a2b3c4d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := store.Load(storePath(cmd))
			if err != nil {
				return err
			}

			l, origin, err := query.Get(col, args[0])
			if err != nil {
				return err
			}

			switch origin {
			case query.OriginArchived:
				fmt.Println("(archived)")
			case query.OriginMerged:
				fmt.Printf("(merged into %s)\n", l.ID)
			}

			fmt.Printf("%s  [%s] (session %d, %s)\n", l.ID, l.Category, l.Session, l.Timestamp.Format("2006-01-02"))
			fmt.Printf("  %s\n", l.Content)
			if len(l.Tags) > 0 {
				fmt.Printf("  Tags:    %v\n", l.Tags)
			}
			if l.Context != "" {
				fmt.Printf("  Context: %s\n", l.Context)
			}
			if len(l.MergeHistory) > 0 {
				fmt.Println("  Merge history:")
				for _, rec := range l.MergeHistory {
					fmt.Printf("    • %s absorbed %s (%s)\n", rec.MergedAt.Format("2006-01-02"), rec.MergedID, rec.Reason)
				}
			}
			return nil
		},
	}

	return cmd
}
