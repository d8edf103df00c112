package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/store"
)

// NewIngestCmd creates the 'ingest' command: batch capture of candidate
// learnings from a text file or stdin, with similarity-based deduplication
// against the existing collection.
func NewIngestCmd() *cobra.Command {
	var (
		session      int
		keywordsPath string
	)

	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Capture learnings in bulk from a file or stdin",
		Long: `Read candidate learnings (one per non-empty line, leading list
markers stripped) and capture each one that is not a near-duplicate of an
existing learning. Deduplication uses the same similarity measures curation
uses, so a candidate that would immediately be merged away is skipped
instead of captured.

Each captured learning is categorized immediately from its content.`,
		Example: `  insight-hub ingest session-notes.txt --session 14
  cat notes.md | insight-hub ingest --session 14`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reader io.Reader = os.Stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				reader = f
			}

			texts, err := readBlocks(reader)
			if err != nil {
				return err
			}

			engine, err := buildEngine(keywordsPath)
			if err != nil {
				return err
			}

			path := storePath(cmd)
			col, err := store.LoadOrInit(path)
			if err != nil {
				return err
			}

			added, skipped, err := engine.Ingest(col, texts, session, time.Now().UTC())
			if err != nil {
				return err
			}

			if len(added) > 0 {
				if err := store.Save(col, path); err != nil {
					return fmt.Errorf("failed to save store: %w", err)
				}
			}

			fmt.Printf("Captured %d learning(s), skipped %d near-duplicate(s)\n", len(added), skipped)
			for _, l := range added {
				fmt.Printf("  • %s [%s] %s\n", l.ID, l.Category, l.Content)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&session, "session", "s", 0, "Session number for the captured learnings")
	cmd.Flags().StringVar(&keywordsPath, "keywords", "", "Category keyword table override (YAML)")

	return cmd
}

// readBlocks splits input into candidate learning texts: one per non-empty
// line, with leading markdown list markers stripped.
func readBlocks(r io.Reader) ([]string, error) {
	var texts []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimPrefix(line, "• ")
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return texts, nil
}
