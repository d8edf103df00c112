/*
Package cli provides the insight-hub commands.

Every command follows the same lifecycle: load the whole store document,
operate on it in memory, and (for mutating commands) write it back whole.
No command caches collection state.
*/
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/learning"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// storePath resolves the store document location: --store flag, then the
// INSIGHT_HUB_STORE environment variable, then ~/.insight-hub.json.
func storePath(cmd *cobra.Command) string {
	if p, err := cmd.Flags().GetString("store"); err == nil && p != "" {
		return p
	}
	return store.DefaultPath()
}

// buildEngine creates a curation engine from the default config plus an
// optional keyword-table override file.
func buildEngine(keywordsPath string) (*learning.Engine, error) {
	cfg := learning.DefaultConfig()
	if keywordsPath != "" {
		keywords, err := learning.LoadKeywords(keywordsPath)
		if err != nil {
			return nil, err
		}
		cfg.Keywords = keywords
	}
	return learning.NewEngine(cfg), nil
}

// printLearning writes one learning in the standard list format.
func printLearning(l *store.Learning) {
	fmt.Printf("  %s  [%s] (session %d)\n", l.ID, l.Category, l.Session)
	fmt.Printf("    %s\n", l.Content)
	if len(l.Tags) > 0 {
		fmt.Printf("    Tags: %v\n", l.Tags)
	}
}
