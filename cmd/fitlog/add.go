// ABOUTME: CLI command for logging a day of exercise and sleep.
// ABOUTME: Re-adding a date replaces that day's record.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	addDate    string
	addQuality float64
	addNotes   string
)

var addCmd = &cobra.Command{
	Use:     "add <sport> <minutes> <sleep_hours>",
	Aliases: []string{"a"},
	Short:   "Log a day of exercise and sleep",
	Long: `Log one day of exercise and sleep. Each date holds one record; adding
the same date again replaces it.

Use "rest" or "-" as the sport for a rest day.

Examples:
  fitlog add running 30 7.5
  fitlog add swimming 45 8 --quality 4 --notes "felt strong"
  fitlog add rest 0 9 --date yesterday
  fitlog add cycling 60 6.5 --date 2026-03-14`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid minutes: %s", args[1])
		}
		sleep, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid sleep hours: %s", args[2])
		}

		date, err := models.NormalizeDate(addDate)
		if err != nil {
			return err
		}

		r := models.NewDailyRecord(date, parseSport(args[0]), minutes, sleep, addQuality)
		if addNotes != "" {
			r.WithNotes(addNotes)
		}
		if err := r.Validate(); err != nil {
			return err
		}

		if err := repo.UpsertRecord(r); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		color.Green("✓ Logged %s", r.Date)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(r.ID.String()[:8]), describeRecord(r))
		return nil
	},
}

// parseSport maps rest-day spellings to an empty sport.
func parseSport(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "rest", "-", "none":
		return ""
	}
	return s
}

// describeRecord renders the one-line form used by add and list.
func describeRecord(r *models.DailyRecord) string {
	activity := "rest day"
	if !r.IsRestDay() {
		activity = fmt.Sprintf("%s %.0f min", r.Sport, r.ExerciseMinutes)
	}
	sleep := fmt.Sprintf("sleep %.1fh", r.SleepHours)
	if r.SleepQuality > 0 {
		sleep += fmt.Sprintf(" q%.0f", r.SleepQuality)
	}
	return fmt.Sprintf("%s, %s", activity, sleep)
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "today", "date being logged (YYYY-MM-DD, today, yesterday)")
	addCmd.Flags().Float64VarP(&addQuality, "quality", "q", 0, "sleep quality 1-5 (0 = unrated)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the day")
	rootCmd.AddCommand(addCmd)
}
