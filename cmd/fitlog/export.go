// ABOUTME: CLI commands for exporting and importing journal data.
// ABOUTME: Supports JSON, YAML, Markdown, and XLSX export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export journal data",
	Long: `Export journal data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown table (for documentation/sharing)
  xlsx       Excel workbook (requires --output)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include records on or after this date (markdown only)

EXAMPLES:

  fitlog export json                        # Export all data as JSON
  fitlog export json -o backup.json         # Save to file
  fitlog export yaml                        # Export as YAML
  fitlog export markdown --since 2026-01-01 # Export this year as Markdown
  fitlog export xlsx -o fitlog.xlsx         # Export a spreadsheet`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "xlsx"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown":
			since := ""
			if exportSince != "" {
				since, err = models.NormalizeDate(exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
			}
			var md string
			md, err = storage.ExportMarkdown(repo, since)
			data = []byte(md)
		case "xlsx":
			if exportOutput == "" {
				return fmt.Errorf("xlsx export requires --output")
			}
			data, err = storage.ExportXLSX(repo)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or xlsx)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import journal data from JSON",
	Long: `Import records from a JSON backup made with 'fitlog export json'.

Records are upserted by date, so importing the same file twice is harmless.
Nothing is written if any record fails validation.

EXAMPLES:

  fitlog import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		n, err := storage.ImportJSON(repo, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d records from %s", n, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include records since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
