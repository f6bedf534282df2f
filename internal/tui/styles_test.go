// internal/tui/styles_test.go
package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestColors_Defined(t *testing.T) {
	assert.NotEmpty(t, string(ColorSuccess))
	assert.NotEmpty(t, string(ColorError))
	assert.NotEmpty(t, string(ColorWarning))
	assert.NotEmpty(t, string(ColorInfo))
	assert.NotEmpty(t, string(ColorMuted))
}

func TestBoxStyles_HaveBorders(t *testing.T) {
	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"BoxStyle", BoxStyle},
		{"WarningBoxStyle", WarningBoxStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := tt.style.Render("test")
			assert.Contains(t, rendered, "─")
			assert.Contains(t, rendered, "test")
		})
	}
}

func TestBox(t *testing.T) {
	rendered := Box("About to broadcast", "  Chain:     dyson-1\n  Fee:       none\n", BoxStyle)

	assert.Contains(t, rendered, "About to broadcast")
	assert.Contains(t, rendered, "dyson-1")
	assert.Contains(t, rendered, "╭")
	assert.Contains(t, rendered, "╯")
	assert.False(t, strings.HasSuffix(rendered, "\n"))

	lines := strings.Split(rendered, "\n")
	assert.GreaterOrEqual(t, lipgloss.Width(lines[0]), MinBoxWidth)
}

func TestBox_NoTitle(t *testing.T) {
	rendered := Box("", "content", WarningBoxStyle)
	assert.Contains(t, rendered, "content")
	// Border, one content line, border.
	assert.Len(t, strings.Split(rendered, "\n"), 3)
}
