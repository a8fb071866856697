// Package cli wires the skipselect commands: the interactive browse TUI,
// the scriptable list output and config management.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skipwise/skipselect/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Set once per invocation by setupLogging

// NewRootCmd creates the root Cobra command for the skipselect CLI.
// It wires up logging and the browse, list and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logResultHandle

	cmd := &cobra.Command{
		Use:     "skipselect",
		Short:   "Browse and pick waste-skip hire options",
		Long:    "skipselect: fetch the skip-hire catalogue for a location and pick a skip, interactively or from scripts",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logResult.Close()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("postcode", "", "postcode to fetch skips for (overrides config)")
	cmd.PersistentFlags().String("area", "", "area name to fetch skips for (overrides config)")
	cmd.PersistentFlags().String("base-url", "", "catalogue base URL (overrides config)")

	cmd.AddCommand(NewBrowseCmd(), NewListCmd(), newConfigCmd())
	return cmd
}

const rootCmdExample = `  # Pick a skip interactively
  skipselect browse

  # Browse skips for a different location
  skipselect browse --postcode NR32 --area Lowestoft

  # List options for scripts
  skipselect list --output json

  # Initialize configuration
  skipselect config init`

// resolvedLocation applies flag overrides on top of the config file.
func resolvedLocation(cmd *cobra.Command) (postcode, area string) {
	cfg := config.GetGlobalConfig()
	postcode = cfg.Location.Postcode
	area = cfg.Location.Area

	if v, _ := cmd.Flags().GetString("postcode"); v != "" {
		postcode = v
	}
	if v, _ := cmd.Flags().GetString("area"); v != "" {
		area = v
	}
	return postcode, area
}

// resolvedBaseURL applies the --base-url flag on top of the config file.
func resolvedBaseURL(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		return v
	}
	return config.GetGlobalConfig().API.BaseURL
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd())
	return cmd
}
