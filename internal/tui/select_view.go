package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skipwise/skipselect/internal/skips"
)

const cardWidth = 44

// View renders the current view (Bubble Tea interface).
func (m *SelectModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return m.renderLoadingView()
	case ViewStateError:
		return m.renderErrorView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

// placeholderRows is how many skeleton cards the pending view shows.
const placeholderRows = 3

// renderLoadingView shows the spinner with placeholder rows beneath it.
func (m *SelectModel) renderLoadingView() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.loading.View())

	skeleton := SubtleStyle.Render("… Yard Skip\n…")
	for range placeholderRows {
		b.WriteString("  ")
		b.WriteString(CardStyle.Width(cardWidth).Render(skeleton))
		b.WriteString("\n")
	}

	b.WriteString(SubtleStyle.Render("\n press q to quit"))
	return b.String()
}

// renderErrorView replaces the whole content area with the error panel.
// The only recovery action is a full reload.
func (m *SelectModel) renderErrorView() string {
	var content strings.Builder
	content.WriteString(CriticalStyle.Render("Couldn't load skip options"))
	content.WriteString("\n\n")
	content.WriteString(m.errMsg)
	content.WriteString("\n\n")
	content.WriteString(SubtleStyle.Render("press r to reload · q to quit"))
	return BoxStyle.Render(content.String())
}

// renderListView renders the header, the card list and the footer.
func (m *SelectModel) renderListView() string {
	sections := []string{m.renderHeader()}

	if len(m.items) == 0 {
		sections = append(sections, InfoStyle.Render("No skips available for this location."))
	}

	for i, opt := range m.items {
		sections = append(sections, m.renderCard(opt, i == m.cursor, i == m.selected))
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the title and the location being browsed.
func (m *SelectModel) renderHeader() string {
	title := HeaderStyle.Render("Choose Your Skip Size")
	loc := SubtleStyle.Render(m.location)
	return lipgloss.JoinVertical(lipgloss.Left, title, loc)
}

// renderCard renders one skip option. The cursor marks the highlighted
// card; the selected card gets the accent border and a badge.
func (m *SelectModel) renderCard(opt skips.SkipOption, focused, selected bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%d Yard Skip", opt.Size)
	b.WriteString(ValueStyle.Render(title))
	if selected {
		b.WriteString("  ")
		b.WriteString(SelectedBadgeStyle.Render("✓ Selected"))
	}
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render(fmt.Sprintf("%d day hire period", opt.HirePeriodDays)))
	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render(skips.FormatGBP(skips.TotalPrice(opt))))
	b.WriteString(LabelStyle.Render(" inc VAT"))

	if badges := renderBadges(opt); badges != "" {
		b.WriteString("\n")
		b.WriteString(badges)
	}

	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	card := style.Width(cardWidth).Render(b.String())

	marker := "  "
	if focused {
		marker = InfoStyle.Render("▸ ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, marker, card)
}

// renderBadges shows the capability flags that affect what the skip can be
// used for. Forbidden items are shown, not hidden; flagging them is as far
// as this view goes.
func renderBadges(opt skips.SkipOption) string {
	var badges []string
	if opt.Forbidden {
		badges = append(badges, CriticalStyle.Render("Unavailable"))
	}
	if !opt.AllowedOnRoad {
		badges = append(badges, WarningStyle.Render("Not allowed on road"))
	}
	if !opt.AllowsHeavy {
		badges = append(badges, WarningStyle.Render("No heavy waste"))
	}
	return strings.Join(badges, SubtleStyle.Render(" · "))
}

// renderFooter shows the current selection summary and the key help line.
// The continue action only appears once a selection exists.
func (m *SelectModel) renderFooter() string {
	var summary string
	if sel := m.Selected(); sel != nil {
		summary = fmt.Sprintf("%s  %s %s · %d day hire",
			LabelStyle.Render("Selected:"),
			ValueStyle.Render(fmt.Sprintf("%d Yard Skip", sel.Size)),
			ValueStyle.Render(skips.FormatGBP(skips.TotalPrice(*sel))),
			sel.HirePeriodDays,
		)
	} else {
		summary = InfoStyle.Render("Select a skip to continue")
	}

	help := "↑/↓ move · enter select · q quit"
	if m.Selected() != nil {
		help = "↑/↓ move · enter select · c continue · q quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left, "", summary, SubtleStyle.Render(help))
}
