package main

import (
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/fjl/giocalc/giocalc/internal/calc"
	"github.com/fjl/giocalc/giocalc/internal/config"
	"github.com/fjl/giocalc/giocalc/internal/history"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// calcTheme defines the calculator style.
type calcTheme struct {
	*material.Theme
	Color struct {
		Background       color.NRGBA
		Digit            color.NRGBA
		Special          color.NRGBA
		Op               color.NRGBA
		Evaluate         color.NRGBA
		Result           color.NRGBA
		ResultBackground color.NRGBA
		Error            color.NRGBA
		HistoryText      color.NRGBA
		HistoryResult    color.NRGBA
		HistoryHover     color.NRGBA
	}
	Size struct {
		Design       image.Point // in dp
		ControlInset unit.Dp
		CornerRadius unit.Dp
		HistoryText  unit.Sp
	}
	Pad struct {
		HistoryRow layout.Inset
	}
}

func newCalcTheme(win config.WindowConfig) *calcTheme {
	th := &calcTheme{Theme: material.NewTheme()}
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	// Colors.
	th.Color.Background = color.NRGBA{50, 50, 50, 255}
	th.Color.Digit = color.NRGBA{90, 90, 90, 255}
	th.Color.Special = color.NRGBA{70, 70, 70, 255}
	th.Color.Op = color.NRGBA{122, 90, 90, 255}
	th.Color.Evaluate = color.NRGBA{160, 90, 90, 255}
	th.Color.Result = color.NRGBA{255, 255, 255, 255}
	th.Color.ResultBackground = color.NRGBA{35, 35, 35, 255}
	th.Color.Error = color.NRGBA{255, 119, 119, 255}
	th.Color.HistoryText = color.NRGBA{200, 200, 200, 255}
	th.Color.HistoryResult = color.NRGBA{255, 255, 255, 255}
	th.Color.HistoryHover = color.NRGBA{255, 255, 255, 18}
	th.Palette.Fg = th.Color.Result
	th.Palette.Bg = th.Color.Background
	th.Palette.ContrastFg = th.Color.Result

	// Sizes.
	th.Size.Design = image.Pt(win.Width, win.Height)
	th.Size.ControlInset = 6
	th.Size.CornerRadius = 3.5
	th.Size.HistoryText = 16

	// Padding.
	th.Pad.HistoryRow = layout.Inset{
		Top:    unit.Dp(3),
		Bottom: unit.Dp(3),
		Left:   unit.Dp(8),
		Right:  unit.Dp(8),
	}
	return th
}

// buttonColor returns the background of a keypad button.
func (th *calcTheme) buttonColor(k calc.Kind) color.NRGBA {
	switch k {
	case calc.Digit, calc.Decimal:
		return th.Color.Digit
	case calc.Operator:
		return th.Color.Op
	case calc.Evaluate:
		return th.Color.Evaluate
	case calc.Clear:
		return th.Color.Special
	default:
		panic("unknown kind " + k.String())
	}
}

// History rows.

type historyRowStyle struct {
	entry history.Entry
	click *widget.Clickable
	theme *calcTheme
}

// HistoryRow renders a history entry as "expression = result".
func (th *calcTheme) HistoryRow(e history.Entry, click *widget.Clickable) historyRowStyle {
	return historyRowStyle{entry: e, click: click, theme: th}
}

// Layout draws the row.
func (r historyRowStyle) Layout(gtx C) D {
	return r.click.Layout(gtx, func(gtx C) D {
		// Layout the row to get dimensions.
		rec := op.Record(gtx.Ops)
		dim := r.theme.Pad.HistoryRow.Layout(gtx, r.layoutRow)
		call := rec.Stop()

		// Highlight the row under the pointer.
		if r.click.Hovered() {
			rect := image.Rectangle{Max: dim.Size}
			rr := clip.UniformRRect(rect, gtx.Dp(r.theme.Size.CornerRadius))
			paint.FillShape(gtx.Ops, r.theme.Color.HistoryHover, rr.Op(gtx.Ops))
		}
		call.Add(gtx.Ops)
		return dim
	})
}

func (r historyRowStyle) layoutRow(gtx C) D {
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return layout.Flex{Alignment: layout.Baseline}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			l := material.Label(r.theme.Theme, r.theme.Size.HistoryText, r.entry.Expression)
			l.Color = r.theme.Color.HistoryText
			l.MaxLines = 1
			dim := l.Layout(gtx)
			dim.Size.X = gtx.Constraints.Max.X
			return dim
		}),
		layout.Rigid(func(gtx C) D {
			l := material.Label(r.theme.Theme, r.theme.Size.HistoryText, " = "+r.entry.Result)
			l.Color = r.theme.Color.HistoryResult
			l.MaxLines = 1
			return l.Layout(gtx)
		}),
	)
}
