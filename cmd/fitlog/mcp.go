// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout; logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitlog": {
        "command": "fitlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_record        Log a day of exercise and sleep
  list_records      List records in logged order
  delete_record     Delete the record for a date
  analyze           Health report over a trailing window
  summarize_entry   Describe one day against the rest
  get_tip           Random health tip
  get_stats         Whole-journal totals
  coach             AI coaching paragraph

AVAILABLE RESOURCES:

  fitlog://recent     Last 10 records
  fitlog://analysis   Current health report
  fitlog://stats      Journal totals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		coachClient, err := cfg.NewCoach(logger)
		if err != nil {
			return fmt.Errorf("failed to configure coach: %w", err)
		}

		server, err := mcp.NewServer(repo, cfg.AnalyzerOptions(), coachClient, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
