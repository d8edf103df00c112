package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewAddCmd creates the 'add' command for capturing a learning.
func NewAddCmd() *cobra.Command {
	var (
		category     string
		tags         []string
		session      int
		context      string
		keywordsPath string
	)

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Capture a development insight",
		Long: `Capture a learning into the knowledge base.

Without --category the learning stays uncategorized until the next curation
pass assigns one from its content and tags.

Categories: ` + strings.Join(store.Categories, ", "),
		Example: `  insight-hub add "JWT refresh tokens must be rotated on every use" --category security --tag jwt --session 12
  insight-hub add "pgx batch inserts beat row-at-a-time by 40x" --session 13`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := buildEngine(keywordsPath)
			if err != nil {
				return err
			}

			path := storePath(cmd)
			col, err := store.LoadOrInit(path)
			if err != nil {
				return err
			}

			l, err := engine.Add(col, args[0], category, tags, session, context, time.Now().UTC())
			if err != nil {
				return err
			}

			if err := store.Save(col, path); err != nil {
				return fmt.Errorf("failed to save store: %w", err)
			}

			fmt.Printf("Captured %s (category: %s)\n", l.ID, l.Category)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: auto-assigned at next curation)")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "Tag (repeatable)")
	cmd.Flags().IntVarP(&session, "session", "s", 0, "Session number this was captured in")
	cmd.Flags().StringVar(&context, "context", "", "Optional context note")
	cmd.Flags().StringVar(&keywordsPath, "keywords", "", "Category keyword table override (YAML)")

	return cmd
}
