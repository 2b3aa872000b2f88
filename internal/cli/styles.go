package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"storedesk/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	styleGreen    = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow   = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed      = lipgloss.NewStyle().Foreground(colorRed)
	styleBlue     = lipgloss.NewStyle().Foreground(colorBlue)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleFg       = lipgloss.NewStyle().Foreground(colorFg)
	styleHeader   = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold     = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(colorHeader)
)

// statusStyle returns the style for a lifecycle status.
func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusOpen:
		return styleBlue
	case domain.StatusInProgress:
		return styleYellow
	case domain.StatusClosed:
		return styleGreen
	default:
		return styleDim
	}
}

// renderTable renders a simple aligned table with a header separator line.
// Columns are padded to the maximum visible width found in each column.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder

	for i, h := range headers {
		b.WriteString(styleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			b.WriteString(row[i])
			if i < cols-1 {
				pad := widths[i] - lipgloss.Width(row[i])
				if pad < 0 {
					pad = 0
				}
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// shortID truncates a record identity for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
