package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skipwise/skipselect/internal/config"
)

// NewListCmd creates the list command: the non-interactive view of the same
// catalogue batch the TUI shows, for scripts and non-TTY use.
func NewListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skip options for a location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := outputFormat
			if format == "" {
				format = config.GetGlobalConfig().Output.Format
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported output format: %s", format)
			}

			fetch := newFetcher(cmd)
			items, err := fetch(cmd.Context())
			if err != nil {
				return err
			}

			if format == "json" {
				rows := make([]skipRow, 0, len(items))
				for _, item := range items {
					rows = append(rows, newSkipRow(item))
				}
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			postcode, area := resolvedLocation(cmd)
			renderTable(cmd.OutOrStdout(), fmt.Sprintf("%s, %s", postcode, area), items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}
