package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/skipwise/skipselect/internal/skips"
)

// skipRow is the JSON shape emitted for one option: the wire fields plus
// the computed VAT-inclusive price.
type skipRow struct {
	ID             int     `json:"id"`
	Size           int     `json:"size"`
	HirePeriodDays int     `json:"hire_period_days"`
	PriceBeforeVAT float64 `json:"price_before_vat"`
	VATPercent     float64 `json:"vat"`
	TotalPrice     int     `json:"total_price"`
	AllowedOnRoad  bool    `json:"allowed_on_road"`
	AllowsHeavy    bool    `json:"allows_heavy_waste"`
	Forbidden      bool    `json:"forbidden"`
}

// newSkipRow computes the display price for one option.
func newSkipRow(opt skips.SkipOption) skipRow {
	return skipRow{
		ID:             opt.ID,
		Size:           opt.Size,
		HirePeriodDays: opt.HirePeriodDays,
		PriceBeforeVAT: opt.PriceBeforeVAT,
		VATPercent:     opt.VATPercent,
		TotalPrice:     skips.TotalPrice(opt),
		AllowedOnRoad:  opt.AllowedOnRoad,
		AllowsHeavy:    opt.AllowsHeavy,
		Forbidden:      opt.Forbidden,
	}
}

// writeJSON renders v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table styles. Kept separate from the TUI palette so plain pipelines get
// legible output.
//
//nolint:gochecknoglobals // Lipgloss styles are immutable shared values
var (
	tableTitleStyle  = lipgloss.NewStyle().Bold(true)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
)

// renderTable writes the options as an aligned text table.
func renderTable(w io.Writer, location string, items []skips.SkipOption) {
	fmt.Fprintln(w, tableTitleStyle.Render(fmt.Sprintf("Skip options for %s", location)))
	fmt.Fprintln(w)

	header := fmt.Sprintf("%-6s %-12s %-14s %-10s %-10s %s",
		"SIZE", "HIRE (DAYS)", "PRICE INC VAT", "ON ROAD", "HEAVY", "NOTES")
	fmt.Fprintln(w, tableHeaderStyle.Render(header))

	for _, item := range items {
		notes := ""
		if item.Forbidden {
			notes = "unavailable"
		}
		fmt.Fprintf(w, "%-6d %-12d %-14s %-10s %-10s %s\n",
			item.Size,
			item.HirePeriodDays,
			skips.FormatGBP(skips.TotalPrice(item)),
			yesNo(item.AllowedOnRoad),
			yesNo(item.AllowsHeavy),
			notes,
		)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
