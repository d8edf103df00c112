package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ankushdixit/insight-hub/internal/mcp"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
func NewServeCmd() *cobra.Command {
	var keywordsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the insight-hub MCP server using stdio transport.

The server exposes 4 tools to AI clients:
  • learning_capture - Capture a development insight
  • learning_search  - Relevance-ranked search over active learnings
  • learning_curate  - Run a curation pass (dry-run capable)
  • learning_stats   - Aggregate statistics

Every call loads the store document fresh; mutating calls write it back
whole.`,
		Example: `  # Run directly
  insight-hub serve

  # Add to Claude Code
  claude mcp add insight-hub -- insight-hub serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := buildEngine(keywordsPath)
			if err != nil {
				return err
			}

			server := mcp.NewServer(storePath(cmd), engine)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Run()
			}()

			select {
			case sig := <-sigChan:
				log.Info("shutting down", "signal", sig)
				return nil
			case err := <-errChan:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&keywordsPath, "keywords", "", "Category keyword table override (YAML)")

	return cmd
}
