// internal/tui/box.go
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MinBoxWidth is the narrowest box Box renders.
const MinBoxWidth = 40

// Box renders content in a bordered box with an optional bold title line.
// Trailing newlines of content are dropped so the border closes tightly.
func Box(title, content string, style lipgloss.Style) string {
	content = strings.TrimRight(content, "\n")
	if title != "" {
		content = TitleStyle(title).String() + "\n" + content
	}

	width := lipgloss.Width(content) + style.GetHorizontalPadding()
	if width < MinBoxWidth {
		width = MinBoxWidth
	}
	return style.Width(width).Render(content)
}
