package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/history"
	"github.com/ankushdixit/insight-hub/internal/learning"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewCurateCmd creates the 'curate' command: one full pass of
// categorization, duplicate merging, and archival over the knowledge base.
func NewCurateCmd() *cobra.Command {
	var (
		dryRun       bool
		session      int
		jaccard      float64
		containment  float64
		archiveAge   int
		keywordsPath string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Categorize, merge duplicates, and archive stale learnings",
		Long: `Run one curation pass over the knowledge base:

  1. Assign a category to every uncategorized learning
  2. Merge near-duplicate learnings within each category
     (Jaccard >= 0.6 or containment >= 0.8 over content tokens)
  3. Archive learnings more than 50 sessions old

The pass is idempotent: running it twice in a row changes nothing the
second time. With --dry-run the report shows what would change and the
store is guaranteed untouched.`,
		Example: `  insight-hub curate
  insight-hub curate --dry-run
  insight-hub curate --session 120 --jaccard 0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := learning.DefaultConfig()
			cfg.JaccardThreshold = jaccard
			cfg.ContainmentThreshold = containment
			cfg.ArchiveAfterSessions = archiveAge
			if keywordsPath != "" {
				keywords, err := learning.LoadKeywords(keywordsPath)
				if err != nil {
					return err
				}
				cfg.Keywords = keywords
			}
			engine := learning.NewEngine(cfg)

			path := storePath(cmd)
			col, err := store.Load(path)
			if err != nil {
				return err
			}

			// Dry runs operate on a deep copy and never reach Save, so the
			// persisted document cannot change no matter what fails below.
			if dryRun {
				col = col.Clone()
			}

			now := time.Now().UTC()
			report := engine.Curate(col, session, now)
			report.DryRun = dryRun

			if !dryRun {
				if err := store.Save(col, path); err != nil {
					return fmt.Errorf("failed to save store: %w", err)
				}
				recordRun(report, now)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if dryRun {
				fmt.Println("Curation (dry run, nothing persisted):")
			} else {
				fmt.Println("Curation complete:")
			}
			fmt.Printf("  Active learnings: %d → %d\n", report.BeforeCount, report.AfterCount)
			fmt.Printf("  Categorized:      %d\n", report.CategorizationChanges)
			fmt.Printf("  Merged:           %d\n", report.MergedCount)
			fmt.Printf("  Archived:         %d\n", report.ArchivedCount)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report changes without persisting them")
	cmd.Flags().IntVarP(&session, "session", "s", 0, "Current session number (default: highest active session)")
	cmd.Flags().Float64Var(&jaccard, "jaccard", learning.DefaultJaccardThreshold, "Jaccard duplicate threshold")
	cmd.Flags().Float64Var(&containment, "containment", learning.DefaultContainmentThreshold, "Containment duplicate threshold")
	cmd.Flags().IntVar(&archiveAge, "archive-age", learning.DefaultArchiveAfterSessions, "Archive learnings older than this many sessions")
	cmd.Flags().StringVar(&keywordsPath, "keywords", "", "Category keyword table override (YAML)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output report as JSON")

	return cmd
}

// recordRun appends the pass to the curation-run log. Best-effort: the log
// never fails a completed curation.
func recordRun(report learning.Report, now time.Time) {
	h := history.NewStore()
	if err := h.Init(); err != nil {
		return
	}
	defer h.Close()

	_ = h.RecordRun(history.RunRecord{
		RunAt:         now,
		BeforeCount:   report.BeforeCount,
		AfterCount:    report.AfterCount,
		MergedCount:   report.MergedCount,
		ArchivedCount: report.ArchivedCount,
		Recategorized: report.CategorizationChanges,
	})
}
