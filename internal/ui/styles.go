package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for the result summary line.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// HeaderStyle is used for the table header row.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// SuccessStyle is used for completion messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	// DimStyle is used for progress and secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// stateStyles colors the STATE column per value.
	stateStyles = map[string]lipgloss.Style{
		"OPEN":   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
		"CLOSED": lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Red
		"MERGED": lipgloss.NewStyle().Foreground(lipgloss.Color("99")),  // Light blue
	}
)

// stateStyle returns the style for a state value, falling back to dim.
func stateStyle(state string) lipgloss.Style {
	if s, ok := stateStyles[state]; ok {
		return s
	}
	return DimStyle
}
