// ABOUTME: CLI commands for whole-journal stats and random tips.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals across the whole journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repo.ListRecords(0)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		st := analyzer.ComputeStats(records)
		if statsJSON {
			return printJSON(st)
		}
		if st.TotalRecords == 0 {
			fmt.Println("No records found.")
			return nil
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Printf("%d records ", st.TotalRecords)
		faint.Printf("(%s to %s)\n\n", st.FirstDate, st.LastDate)
		fmt.Printf("  Active days   %d (rest %d)\n", st.ActiveDays, st.RestDays)
		fmt.Printf("  Total minutes %.0f\n", st.TotalMinutes)
		fmt.Printf("  Avg session   %.1f min\n", st.AvgDuration)
		fmt.Printf("  Avg sleep     %.1f h, quality %.1f\n", st.AvgSleep, st.AvgQuality)

		if len(st.Sports) > 0 {
			fmt.Println()
			bold.Println("Sports")
			for _, sc := range st.Sports {
				fmt.Printf("  %s %3d days %6.0f min\n", padRight(sc.Sport, 14), sc.Days, sc.Minutes)
			}
		}

		if len(st.ByWeekday) > 0 {
			days := make([]string, 0, len(st.ByWeekday))
			for d := range st.ByWeekday {
				days = append(days, d)
			}
			sort.Slice(days, func(i, j int) bool { return st.ByWeekday[days[i]] > st.ByWeekday[days[j]] })
			fmt.Println()
			faint.Printf("Most active on %s\n", days[0])
		}
		return nil
	},
}

var tipCmd = &cobra.Command{
	Use:         "tip",
	Short:       "Print a random health tip",
	Annotations: map[string]string{skipStorage: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		color.Cyan("💡 %s", models.RandomTip(nil))
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print stats as JSON")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tipCmd)
}
