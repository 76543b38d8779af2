// ABOUTME: CLI commands for viewing and editing the config file.
// ABOUTME: Keys use dotted names such as coach.provider or server.addr.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change settings",
	Annotations: map[string]string{skipStorage: "true"},
	Long: `View or change settings stored in ~/.config/fitlog/config.json.

EXAMPLES:

  fitlog config show
  fitlog config set backend json
  fitlog config set window 14
  fitlog config set coach.provider deepseek
  fitlog config path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		keys := config.Keys()
		width := 0
		for _, k := range keys {
			if len(k) > width {
				width = len(k)
			}
		}
		for _, k := range keys {
			v, err := cfg.Get(k)
			if err != nil {
				return err
			}
			if v == "" {
				v = faint.Sprint("(default)")
			}
			fmt.Printf("%s %s\n", padRight(k, width+1), v)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("invalid setting: %w\nKnown keys: %s", err, strings.Join(config.Keys(), ", "))
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ %s = %s", key, value)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
