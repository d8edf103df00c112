package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/query"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewListCmd creates the 'list' command for filtered listings.
func NewListCmd() *cobra.Command {
	var (
		category   string
		tag        string
		session    int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List active learnings, optionally filtered",
		Long:    `List active learnings. Filters combine with AND; no filters lists everything.`,
		Example: `  insight-hub list
  insight-hub list --category security
  insight-hub list --tag jwt --session 12
  insight-hub list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := store.Load(storePath(cmd))
			if err != nil {
				return err
			}

			opts := query.FilterOptions{
				Category:  category,
				Tag:       tag,
				Session:   session,
				BySession: cmd.Flags().Changed("session"),
			}
			learnings := query.Filter(col, opts)

			if jsonOutput {
				data, err := json.MarshalIndent(learnings, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(learnings) == 0 {
				fmt.Println("No matching learnings.")
				return nil
			}

			fmt.Printf("Active learnings (%d):\n\n", len(learnings))
			for _, l := range learnings {
				printLearning(l)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Filter by tag")
	cmd.Flags().IntVarP(&session, "session", "s", 0, "Filter by session number")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}
