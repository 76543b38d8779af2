// ABOUTME: CLI commands for the health report and per-day summaries.
// ABOUTME: Window and mode default to config and can be overridden per run.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/spf13/cobra"
)

var (
	analyzeWindow   int
	analyzeExtended bool
	analyzeMode     string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"report"},
	Short:   "Score recent exercise and sleep",
	Long: `Analyze the most recent records and print a health report.

The report needs at least 3 records. It averages the trailing window
(7 records by default, 14 with --extended) and rates exercise and sleep.
Composite mode adds a 0-100 health score.

EXAMPLES:

  fitlog analyze
  fitlog analyze --extended
  fitlog analyze --window 10 --mode composite
  fitlog analyze --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := analyzerOptionsFromFlags()
		if err != nil {
			return err
		}

		records, err := repo.ListRecords(0)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		report := analyzer.New(opts).Analyze(records)
		if analyzeJSON {
			return printJSON(report)
		}
		printReport(report)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize every logged day",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repo.ListRecords(0)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No records found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range analyzer.SummarizeAll(records) {
			fmt.Printf("%s %s\n", faint.Sprint(s.Date), s.Summary)
			for _, h := range s.Highlights {
				fmt.Printf("           • %s\n", h)
			}
		}
		return nil
	},
}

// analyzerOptionsFromFlags layers the command flags over config defaults.
func analyzerOptionsFromFlags() (analyzer.Options, error) {
	opts := cfg.AnalyzerOptions()
	if analyzeExtended {
		opts.Window = analyzer.ExtendedWindow
	}
	if analyzeWindow > 0 {
		opts.Window = analyzeWindow
	} else if analyzeWindow < 0 {
		return opts, fmt.Errorf("window must be positive, got %d", analyzeWindow)
	}
	if analyzeMode != "" {
		mode, err := analyzer.ParseMode(analyzeMode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	return opts, nil
}

func printReport(report analyzer.AnalysisReport) {
	if !report.HasScores() {
		color.Yellow("⚠ %s", report.Message)
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	agg := report.Aggregates

	bold.Printf("Last %d of %d records\n\n", agg.WindowSize, agg.TotalRecords)

	fmt.Printf("  %s %.1f min avg, %d active days, %d sports\n",
		padRight("Exercise", 10), agg.AvgDuration, agg.ActiveDays, agg.SportVariety)
	fmt.Printf("  %s %s\n", padRight("", 10), tierString(report.ExerciseTier))
	fmt.Printf("  %s %.1f h avg, quality %.1f\n", padRight("Sleep", 10), agg.AvgSleep, agg.AvgQuality)
	fmt.Printf("  %s %s\n", padRight("", 10), tierString(report.SleepTier))

	if c := report.Composite; c != nil {
		fmt.Println()
		bold.Printf("Health score: %.1f ", c.Score)
		faint.Printf("(%s)\n", c.Band)
		fmt.Printf("  sport %.1f  sleep %.1f\n", c.SportScore, c.SleepScore)
		faint.Printf("  duration %.1f  consistency %.1f  variety %.1f  sleep hours %.1f  sleep quality %.1f\n",
			c.DurationScore, c.ConsistencyScore, c.VarietyScore, c.SleepDurationScore, c.SleepQualityScore)
	}

	if len(report.Suggestions) > 0 {
		fmt.Println()
		bold.Println("Suggestions")
		for _, s := range report.Suggestions {
			fmt.Printf("  • %s\n", s)
		}
	}
}

func tierString(t *analyzer.Tier) string {
	if t == nil {
		return ""
	}
	label := t.Label
	switch t.Level {
	case analyzer.TierExcellent, analyzer.TierIdeal:
		label = color.GreenString(label)
	case analyzer.TierNeedsImprovement:
		label = color.YellowString(label)
	}
	return fmt.Sprintf("%s: %s", label, t.Remark)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeWindow, "window", "w", 0, "trailing window size (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeExtended, "extended", false, "use the 14-record window")
	analyzeCmd.Flags().StringVarP(&analyzeMode, "mode", "m", "", "basic or composite (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(summaryCmd)
}
