package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	danger = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	ok     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}

	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle        = lipgloss.NewStyle().Foreground(dim)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	errorStyle        = lipgloss.NewStyle().Foreground(danger)
	okStyle           = lipgloss.NewStyle().Foreground(ok)
	mutedStyle        = lipgloss.NewStyle().Foreground(dim)
	cursorStyle       = lipgloss.NewStyle().Bold(true).Foreground(accent)
	editingRowStyle   = lipgloss.NewStyle().Italic(true)
)

// focusedBorder returns a pane style with an accent-colored rounded border.
func focusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
}

// unfocusedBorder returns a pane style with a dim rounded border.
func unfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1)
}

// paneWidths splits the terminal width: the form gets 45%, at least minFormWidth.
func paneWidths(total int) (formWidth, listWidth int) {
	const minFormWidth = 40
	if total <= 0 {
		return 0, 0
	}
	formWidth = total * 45 / 100
	if formWidth < minFormWidth {
		formWidth = minFormWidth
	}
	listWidth = total - formWidth
	if listWidth < 0 {
		listWidth = 0
	}
	return formWidth, listWidth
}
