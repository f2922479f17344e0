package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fjl/giocalc/giocalc/internal/calc"
)

// Color palette, close to the desktop theme.
var (
	ColorDigit    = lipgloss.Color("#5A5A5A")
	ColorSpecial  = lipgloss.Color("#464646")
	ColorOp       = lipgloss.Color("#7A5A5A")
	ColorEvaluate = lipgloss.Color("#A05A5A")
	ColorDisplay  = lipgloss.Color("#232323")
	ColorText     = lipgloss.Color("#FFFFFF")
	ColorMuted    = lipgloss.Color("#94A3B8")
	ColorError    = lipgloss.Color("#FF7777")
	ColorSelected = lipgloss.Color("#8B5CF6")
)

const (
	cellWidth = 7
	cellGap   = 1
)

// Layout styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	DisplayStyle = lipgloss.NewStyle().
			Background(ColorDisplay).
			Foreground(ColorText).
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Right)

	HistoryStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HistorySelectedStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorSelected)

	EmptyHistoryStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)
)

// keyStyle returns the style of a keypad button.
func keyStyle(b calc.Button) lipgloss.Style {
	var bg lipgloss.Color
	switch b.Kind {
	case calc.Digit, calc.Decimal:
		bg = ColorDigit
	case calc.Operator:
		bg = ColorOp
	case calc.Evaluate:
		bg = ColorEvaluate
	case calc.Clear:
		bg = ColorSpecial
	default:
		panic("unknown kind " + b.Kind.String())
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(ColorText).
		Bold(true).
		Align(lipgloss.Center).
		Width(spanWidth(b.Span))
}

// spanWidth is the character width of a cell covering span columns.
func spanWidth(span int) int {
	span = max(span, 1)
	return span*cellWidth + (span-1)*cellGap
}
