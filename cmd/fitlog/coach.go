// ABOUTME: CLI command that asks the configured LLM provider for coaching text.
// ABOUTME: Falls back to a placeholder when the provider is unavailable.
package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/spf13/cobra"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Get an AI coaching paragraph for recent records",
	Long: `Send a digest of the recent report to the configured chat-completion
provider and print its advice.

Set the provider with 'fitlog config set coach.provider <openrouter|openai|deepseek|zhipu>'
and export the matching API key (for example OPENROUTER_API_KEY). A .env file
in the working directory is loaded automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := analyzerOptionsFromFlags()
		if err != nil {
			return err
		}
		client, err := cfg.NewCoach(logger)
		if err != nil {
			return fmt.Errorf("failed to configure coach: %w", err)
		}

		records, err := repo.ListRecords(0)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}
		report := analyzer.New(opts).Analyze(records)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		text := client.SummarizeOrPlaceholder(ctx, analyzer.Digest(records, report))

		if !client.Enabled() {
			color.Yellow("⚠ %s", text)
			return nil
		}
		color.New(color.Faint).Printf("%s · %s\n\n", client.Provider(), client.Model())
		fmt.Println(text)
		return nil
	},
}

func init() {
	coachCmd.Flags().IntVarP(&analyzeWindow, "window", "w", 0, "trailing window size (default from config)")
	coachCmd.Flags().BoolVar(&analyzeExtended, "extended", false, "use the 14-record window")
	coachCmd.Flags().StringVarP(&analyzeMode, "mode", "m", "", "basic or composite (default from config)")
	rootCmd.AddCommand(coachCmd)
}
