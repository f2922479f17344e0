package main

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/io/clipboard"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/fjl/giocalc/giocalc/internal/calc"
	"github.com/fjl/giocalc/giocalc/internal/config"
	"github.com/fjl/giocalc/giocalc/internal/logx"
	"pkt.systems/pslog"
)

const textMIME = "application/text"

// calcUI is the desktop user interface of the calculator.
type calcUI struct {
	session *calc.Session
	theme   *calcTheme
	log     pslog.Logger
	buttons []*button

	history     widget.List
	historyRows []*widget.Clickable

	// pending error reset
	resetAt    time.Time
	resetToken uint64

	cornerRadius int
	gridSpacing  int
}

// button is a clickable keypad button.
type button struct {
	calc.Button
	color   color.NRGBA
	clicker widget.Clickable
}

func newUI(theme *calcTheme, session *calc.Session, log pslog.Logger) *calcUI {
	ui := &calcUI{session: session, theme: theme, log: log}
	ui.history.Axis = layout.Vertical
	ui.history.ScrollToEnd = true
	for _, b := range calc.Buttons {
		ui.buttons = append(ui.buttons, &button{Button: b, color: theme.buttonColor(b.Kind)})
	}
	return ui
}

// Layout draws the UI.
func (ui *calcUI) Layout(gtx C) D {
	// Adapt design for screen size.
	design := unit.Dp(ui.theme.Size.Design.X)
	scaleFactor := float32(gtx.Constraints.Max.X) / float32(gtx.Dp(design))
	ui.cornerRadius = gtx.Dp(ui.theme.Size.CornerRadius * unit.Dp(scaleFactor))
	ui.gridSpacing = gtx.Dp(ui.theme.Size.ControlInset * unit.Dp(scaleFactor))

	ui.expireError(gtx)
	// Handle key events.
	ui.layoutInput(gtx)

	inset := layout.UniformInset(ui.theme.Size.ControlInset)
	return inset.Layout(gtx, func(gtx C) D {
		flex := layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceStart}
		return flex.Layout(gtx,
			layout.Flexed(25, func(gtx C) D {
				return inset.Layout(gtx, ui.layoutHistory)
			}),
			layout.Flexed(17, func(gtx C) D {
				return inset.Layout(gtx, ui.layoutResult)
			}),
			layout.Flexed(58, func(gtx C) D {
				return inset.Layout(gtx, ui.layoutButtons)
			}),
		)
	})
}

func (ui *calcUI) layoutHistory(gtx C) D {
	entries := ui.session.History().Entries()
	for len(ui.historyRows) < len(entries) {
		ui.historyRows = append(ui.historyRows, new(widget.Clickable))
	}
	for i := range entries {
		if ui.historyRows[i].Clicked(gtx) {
			ui.selectHistory(i)
		}
	}

	list := material.List(ui.theme.Theme, &ui.history)
	return list.Layout(gtx, len(entries), func(gtx C, i int) D {
		return ui.theme.HistoryRow(entries[i], ui.historyRows[i]).Layout(gtx)
	})
}

func (ui *calcUI) layoutResult(gtx C) D {
	rect := image.Rectangle{Max: gtx.Constraints.Max}
	rr := clip.UniformRRect(rect, ui.cornerRadius)
	paint.FillShape(gtx.Ops, ui.theme.Color.ResultBackground, rr.Op(gtx.Ops))

	inset := layout.UniformInset(ui.theme.Size.ControlInset)
	return inset.Layout(gtx, ui.layoutResultText)
}

func (ui *calcUI) layoutResultText(gtx C) D {
	// Scale font based on height.
	fontSizePx := float32(gtx.Constraints.Max.Y) / 1.4
	fontSizeSp := unit.Sp(fontSizePx / gtx.Metric.PxPerSp)

	l := material.Label(ui.theme.Theme, fontSizeSp, ui.session.Text())
	l.Color = ui.theme.Color.Result
	if ui.session.ShowingError() {
		l.Color = ui.theme.Color.Error
	}
	l.MaxLines = 1
	return shrinkToFit(gtx, l.Layout)
}

func (ui *calcUI) layoutButtons(gtx C) D {
	g := grid{
		rows:    calc.Rows,
		cols:    calc.Cols,
		spacing: unit.Dp(float32(ui.gridSpacing) / gtx.Metric.PxPerDp),
	}
	place := func(i int) gridCell {
		b := ui.buttons[i]
		return gridCell{row: b.Row, col: b.Col, span: b.Span}
	}
	return g.layout(gtx, len(ui.buttons), place, func(i int, gtx C) D {
		return ui.layoutButton(gtx, ui.buttons[i])
	})
}

func (ui *calcUI) layoutButton(gtx C, b *button) D {
	if b.clicker.Clicked(gtx) {
		ui.apply(gtx, ui.session.Press(b.Button))
	}

	textSizePx := float32(gtx.Constraints.Max.Y) / 2.2
	textSizeSp := unit.Sp(textSizePx / gtx.Metric.PxPerSp)

	style := material.Button(ui.theme.Theme, &b.clicker, b.Label)
	style.Background = b.color
	style.Inset = layout.Inset{}
	style.TextSize = textSizeSp
	style.CornerRadius = unit.Dp(float32(ui.cornerRadius) / gtx.Metric.PxPerDp)
	return style.Layout(gtx)
}

// layoutInput registers the global key handler and processes its events.
func (ui *calcUI) layoutInput(gtx C) {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, ui)
	area.Pop()

	// Request keyboard focus. This is required to make the Return key work,
	// and takes focus back from keypad buttons after a click.
	gtx.Execute(key.FocusCmd{Tag: ui})

	for {
		ev, ok := gtx.Event(ui.filters()...)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case key.Event:
			switch {
			case ev.State != key.Press:
			case isCopy(ev):
				gtx.Execute(clipboard.WriteCmd{
					Type: textMIME,
					Data: io.NopCloser(strings.NewReader(ui.session.Text())),
				})
			case isPaste(ev):
				gtx.Execute(clipboard.ReadCmd{Tag: ui})
			default:
				ui.handleKey(gtx, ev)
			}

		case transfer.DataEvent:
			ui.paste(ev)
		}
	}
}

func (ui *calcUI) filters() []event.Filter {
	filters := []event.Filter{
		key.FocusFilter{Target: ui},
		transfer.TargetFilter{Target: ui, Type: textMIME},
		key.Filter{Focus: ui, Name: "C", Required: key.ModShortcut},
		key.Filter{Focus: ui, Name: "V", Required: key.ModShortcut},
		key.Filter{Focus: ui, Name: key.NameReturn},
		key.Filter{Focus: ui, Name: key.NameEnter},
		key.Filter{Focus: ui, Name: key.NameDeleteBackward},
		key.Filter{Focus: ui, Name: key.NameEscape},
	}
	for _, r := range "0123456789.+-*/=()" {
		filters = append(filters, key.Filter{Focus: ui, Name: key.Name(string(r)), Optional: key.ModShift})
	}
	return filters
}

func isCopy(e key.Event) bool {
	return e.Name == "C" && e.Modifiers.Contain(key.ModShortcut)
}

func isPaste(e key.Event) bool {
	return e.Name == "V" && e.Modifiers.Contain(key.ModShortcut)
}

// handleKey handles a key event.
func (ui *calcUI) handleKey(gtx C, e key.Event) {
	if res, ok := ui.session.Key(keyName(e.Name)); ok {
		ui.apply(gtx, res)
	}
}

// keyName translates Gio key names to the names known by calc.KeyAction.
func keyName(n key.Name) string {
	switch n {
	case key.NameReturn:
		return calc.KeyReturn
	case key.NameEnter:
		return calc.KeyEnter
	case key.NameDeleteBackward:
		return calc.KeyBackspace
	case key.NameEscape:
		return calc.KeyEscape
	}
	return string(n)
}

func (ui *calcUI) paste(ev transfer.DataEvent) {
	r := ev.Open()
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		ui.log.Warn("clipboard read failed", "err", err)
		return
	}
	ui.session.Paste(string(data))
}

func (ui *calcUI) selectHistory(i int) {
	if err := ui.session.SelectHistory(i); err != nil {
		ui.log.Warn("history selection failed", "index", i, "err", err)
	}
}

// apply schedules the error reset requested by an input.
func (ui *calcUI) apply(gtx C, res calc.Result) {
	if res.ResetAfter <= 0 {
		return
	}
	ui.resetAt = gtx.Now.Add(res.ResetAfter)
	ui.resetToken = res.ResetToken
	gtx.Execute(op.InvalidateCmd{At: ui.resetAt})
}

// expireError clears the error message once its display time is over.
func (ui *calcUI) expireError(gtx C) {
	if ui.resetAt.IsZero() {
		return
	}
	if gtx.Now.Before(ui.resetAt) {
		gtx.Execute(op.InvalidateCmd{At: ui.resetAt})
		return
	}
	ui.session.ExpireError(ui.resetToken)
	ui.resetAt = time.Time{}
}

// runDesktop opens the calculator window. It does not return unless the
// platform lets app.Main return.
func runDesktop(ctx context.Context, cfg config.Config) error {
	log := logx.WithUI(ctx, "desktop")
	session, closeHistory, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	th := newCalcTheme(cfg.Window)

	var (
		width    = unit.Dp(cfg.Window.Width)
		height   = unit.Dp(cfg.Window.Height)
		statusBg = app.StatusColor(th.Color.Background)
		sysBg    = app.NavigationColor(th.Color.Background)
		title    = app.Title("GioCalc")
		portrait = app.PortraitOrientation.Option()
	)
	go func() {
		w := new(app.Window)
		w.Option(statusBg, sysBg, app.Size(width, height), title, portrait)
		w.Option(app.MinSize(width*3/4, height*3/4))

		ui := newUI(th, session, log)
		err := loop(w, ui)
		if cerr := closeHistory(); cerr != nil {
			log.Error("transcript close failed", "err", cerr)
		}
		if err != nil {
			log.Error("window failed", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

// loop is the main loop of the app.
func loop(w *app.Window, ui *calcUI) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			paint.Fill(gtx.Ops, ui.theme.Color.Background)
			ui.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
