package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skipwise/skipselect/internal/config"
	"github.com/skipwise/skipselect/internal/skips"
	"github.com/skipwise/skipselect/internal/tui"
)

// NewBrowseCmd creates the browse command, which runs the interactive skip
// selection TUI and prints the confirmed choice on exit.
func NewBrowseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a skip interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return fmt.Errorf("browse needs a terminal; use 'skipselect list' for scripted output")
			}

			postcode, area := resolvedLocation(cmd)
			fetch := newFetcher(cmd)

			model := tui.NewSelectModel(
				cmd.Context(),
				fetch,
				fmt.Sprintf("%s, %s", postcode, area),
			)

			p := tea.NewProgram(model, tea.WithAltScreen())
			finalModel, err := p.Run()
			if err != nil {
				return fmt.Errorf("running selection view: %w", err)
			}

			selectModel, ok := finalModel.(*tui.SelectModel)
			if !ok {
				return nil
			}
			choice := selectModel.Choice()
			if choice == nil {
				logger.Debug().Msg("browse exited without a confirmed selection")
				return nil
			}

			return printChoice(cmd, outputFormat, *choice)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "confirmation output format: text or json")
	return cmd
}

// newFetcher builds the catalogue fetch function from the resolved config
// and flags. Each invocation of the returned Fetcher performs exactly one
// request.
func newFetcher(cmd *cobra.Command) skips.Fetcher {
	cfg := config.GetGlobalConfig()
	postcode, area := resolvedLocation(cmd)

	client := skips.NewClient(resolvedBaseURL(cmd), &http.Client{
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	})

	return func(ctx context.Context) ([]skips.SkipOption, error) {
		return client.FetchByLocation(ctx, postcode, area)
	}
}

// printChoice writes the confirmed selection to stdout.
func printChoice(cmd *cobra.Command, format string, choice skips.SkipOption) error {
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), newSkipRow(choice))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Selected: %d yard skip · %d day hire · %s inc VAT\n",
		choice.Size, choice.HirePeriodDays, skips.FormatGBP(skips.TotalPrice(choice)))
	return nil
}
