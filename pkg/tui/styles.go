// Package tui renders webprobe's terminal surfaces: styled run summaries
// for the CLI and an interactive Bubble Tea browser for run history.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// Status glyphs — convey meaning without relying on color alone.
const (
	GlyphPassed  = "✓"
	GlyphFailed  = "✗"
	GlyphSkipped = "⏭"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	labelStyle  = lipgloss.NewStyle().Bold(true)

	passedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	failedStyle  = lipgloss.NewStyle().Foreground(colorRed)
	skippedStyle = lipgloss.NewStyle().Foreground(colorYellow)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 2)
)

// statusStyle picks the style for a status value.
func statusStyle(s result.Status) lipgloss.Style {
	switch s {
	case result.StatusFailed:
		return failedStyle
	case result.StatusSkipped:
		return skippedStyle
	default:
		return passedStyle
	}
}

// statusGlyph picks the glyph for a status value.
func statusGlyph(s result.Status) string {
	switch s {
	case result.StatusFailed:
		return GlyphFailed
	case result.StatusSkipped:
		return GlyphSkipped
	default:
		return GlyphPassed
	}
}
