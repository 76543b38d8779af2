// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, reset, and wipe for the charm backend.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/charm"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync journal data across devices",
	Long: `Sync journal data across devices using Charm Cloud.

Only applies when the backend is charm:

  fitlog config set backend charm

Your data is E2E encrypted with your SSH key before upload.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each add/delete operation.`,
}

// charmRepo returns the open charm client or explains how to enable it.
func charmRepo() (*charm.Client, error) {
	c, ok := repo.(*charm.Client)
	if !ok {
		return nil, fmt.Errorf("sync needs the charm backend (current: %s); run 'fitlog config set backend charm'", cfg.GetBackend())
	}
	return c, nil
}

// localCharmDir is where the charm KV keeps the journal on disk.
func localCharmDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "charm", "kv", charm.DBName)
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")

		if c, err := charmRepo(); err == nil {
			if err := c.Sync(); err != nil {
				color.Yellow("⚠ Initial sync failed: %v", err)
			} else {
				color.Green("✓ Initial sync complete")
			}
		} else {
			fmt.Println(err)
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "unlink")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local journal is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmRepo()
		if err != nil {
			return err
		}

		id, err := c.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'fitlog sync link' to connect to Charm.")
			return nil
		}

		host := os.Getenv("CHARM_HOST")
		if host == "" {
			host = charm.Host
		}
		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", host)
		fmt.Println()

		records, _ := c.ListRecords(0)
		color.Green("✓ Connected to Charm")
		fmt.Printf("  Records: %d\n", len(records))
		if c.IsReadOnly() {
			color.Yellow("  Read-only: another process holds the database lock")
		}

		dir := localCharmDir()
		if present, err := storage.IsDirNonEmpty(dir); err == nil && present {
			fmt.Printf("  Local data: %s\n", dir)
		}
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmRepo()
		if err != nil {
			return err
		}

		fmt.Println("This will DELETE all local journal data and restore from cloud.")
		fmt.Print("Continue? [y/N]: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Canceled.")
			return nil
		}

		if err := c.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	Long: `Delete all cloud backups and local data.

This is a DESTRUCTIVE operation. ALL journal data will be permanently deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := charmRepo(); err != nil {
			return err
		}

		fmt.Println("This will PERMANENTLY DELETE all cloud backups and local journal data.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	rootCmd.AddCommand(syncCmd)
}
