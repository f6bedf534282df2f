// internal/tui/styles.go
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - matches the fatih/color semantics used by output
var (
	ColorSuccess = lipgloss.Color("#22c55e") // Green
	ColorError   = lipgloss.Color("#ef4444") // Red
	ColorWarning = lipgloss.Color("#eab308") // Yellow
	ColorInfo    = lipgloss.Color("#06b6d4") // Cyan
	ColorMuted   = lipgloss.Color("#6b7280") // Gray
)

// Box styles
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorInfo).
			Padding(0, 1)

	WarningBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)
)

// TitleStyle creates a styled title for boxes
func TitleStyle(title string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true).
		SetString(title)
}
