// ABOUTME: CLI command for copying records between storage backends.
// ABOUTME: Refuses to write into a non-empty destination unless --force is set.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy records to another storage backend",
	Long: `Copy every record from the current backend to another one.

Records are written in logged order, so the destination keeps the same
trailing window. The configured backend is not changed; switch it afterwards
with 'fitlog config set backend <name>'.

USAGE:

  fitlog migrate --to json --dry-run   # Preview what would be copied
  fitlog migrate --to postgres         # Copy into Postgres
  fitlog migrate --to csv --force      # Merge into a non-empty CSV file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateTo == "" {
			return fmt.Errorf("--to is required")
		}
		if migrateTo == cfg.GetBackend() {
			return fmt.Errorf("source and destination are both %s", migrateTo)
		}

		records, err := repo.ListRecords(0)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would copy %d records from %s to %s\n", len(records), cfg.GetBackend(), migrateTo)
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo, logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", migrateTo, err)
		}
		defer dst.Close()

		existing, err := dst.ListRecords(0)
		if err != nil {
			return fmt.Errorf("failed to read destination: %w", err)
		}
		if len(existing) > 0 && !migrateForce {
			return fmt.Errorf("destination %s already has %d records (use --force to merge)", migrateTo, len(existing))
		}

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Copied %d records from %s to %s", summary.Records, cfg.GetBackend(), migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (sqlite, postgres, json, csv, charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "write into a destination that already has records")
	rootCmd.AddCommand(migrateCmd)
}
