// ABOUTME: CLI commands for deleting one record or clearing the journal.
// ABOUTME: clear asks for confirmation unless --yes is given.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var clearYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <date>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete the record for a date",
	Long: `Delete the record for a date.

EXAMPLES:

  fitlog delete 2026-03-14
  fitlog rm yesterday

CAUTION:

  This permanently deletes the record. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := models.NormalizeDate(args[0])
		if err != nil {
			return err
		}

		r, err := repo.GetRecord(date)
		if err != nil {
			return err
		}
		if err := repo.DeleteRecord(date); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		color.Yellow("✗ Deleted %s", date)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(r.ID.String()[:8]), describeRecord(r))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			fmt.Println("This will PERMANENTLY DELETE every journal record.")
			fmt.Print("Type 'clear' to confirm: ")
			var confirm string
			_, _ = fmt.Scanln(&confirm)
			if confirm != "clear" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		n, err := repo.ClearAll()
		if err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}
		color.Yellow("✗ Deleted %d records", n)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
}
