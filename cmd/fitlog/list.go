// ABOUTME: CLI commands for listing and showing journal records.
// ABOUTME: list prints records in logged order; show adds a per-day summary.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List journal records",
	Long: `List records in the order they were logged (a replaced day moves to the end).

OUTPUT FORMAT:

  Each line shows: DATE  SPORT  MINUTES  SLEEP  QUALITY  (NOTES)

EXAMPLES:

  fitlog list          # Show every record
  fitlog list -n 7     # Show the last 7 records`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repo.ListRecords(listLimit)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No records found.")
			return nil
		}

		for _, r := range records {
			printRecordLine(r)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <date>",
	Short: "Show one day with a short summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := models.NormalizeDate(args[0])
		if err != nil {
			return err
		}

		r, err := repo.GetRecord(date)
		if err != nil {
			return err
		}
		all, err := repo.ListRecords(0)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		faint := color.New(color.Faint)
		color.New(color.Bold).Println(r.Date)
		fmt.Printf("  %s %s\n", faint.Sprint("id:"), r.ID.String())
		fmt.Printf("  %s %s\n", faint.Sprint("activity:"), describeRecord(r))
		if r.HasNotes() {
			fmt.Printf("  %s %s\n", faint.Sprint("notes:"), *r.Notes)
		}

		s := analyzer.SummarizeEntry(r, all)
		fmt.Println()
		fmt.Println(s.Summary)
		for _, h := range s.Highlights {
			fmt.Printf("  • %s\n", h)
		}
		return nil
	},
}

func printRecordLine(r *models.DailyRecord) {
	faint := color.New(color.Faint)

	sport := padRight(r.Sport, 14)
	if r.IsRestDay() {
		sport = faint.Sprint(padRight("rest", 14))
	}
	quality := "-"
	if r.SleepQuality > 0 {
		quality = fmt.Sprintf("%.0f/5", r.SleepQuality)
	}
	notes := ""
	if r.HasNotes() {
		notes = faint.Sprintf(" (%s)", truncate(*r.Notes, 30))
	}

	fmt.Printf("%s %s %5.0f min %5.1f h %s%s\n",
		faint.Sprint(r.Date),
		sport,
		r.ExerciseMinutes,
		r.SleepHours,
		padRight(quality, 4),
		notes)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "keep only the last N records (0 = all)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
