package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skipwise/skipselect/internal/config"
)

// NewConfigInitCmd creates the config init command, which writes a
// commented default config file.
func NewConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
