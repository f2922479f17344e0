// Package tui runs the calculator in a terminal.
package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"github.com/fjl/giocalc/giocalc/internal/calc"
)

// historyRows is how many history entries are visible.
const historyRows = 6

// Model is the Bubbletea model of the terminal calculator.
type Model struct {
	session *calc.Session
	log     pslog.Logger
	keys    keyMap
	help    help.Model

	// cursor is the highlighted history entry, -1 if none.
	cursor int
}

// New creates a model operating on session.
func New(session *calc.Session, log pslog.Logger) Model {
	if log == nil {
		log = pslog.NewWithOptions(io.Discard, pslog.Options{})
	}
	return Model{
		session: session,
		log:     log,
		keys:    defaultKeyMap(),
		help:    help.New(),
		cursor:  -1,
	}
}

// Run shows the calculator until the user quits or ctx is done.
func Run(ctx context.Context, session *calc.Session, log pslog.Logger) error {
	p := tea.NewProgram(New(session, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case resetMsg:
		m.session.ExpireError(msg.token)
	}
	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		n := m.session.History().Len()
		switch {
		case n == 0:
		case m.cursor < 0:
			m.cursor = n - 1
		case m.cursor > 0:
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor >= 0 && m.cursor < m.session.History().Len()-1 {
			m.cursor++
		} else {
			m.cursor = -1
		}
		return m, nil

	case key.Matches(msg, m.keys.Replay):
		if m.cursor >= 0 {
			if err := m.session.SelectHistory(m.cursor); err != nil {
				m.log.Warn("history selection failed", "index", m.cursor, "err", err)
			}
			m.cursor = -1
		}
		return m, nil

	case key.Matches(msg, m.keys.Evaluate):
		m.cursor = -1
		return m, m.apply(m.session.Evaluate())

	case key.Matches(msg, m.keys.Backspace):
		m.session.DeleteLast()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		return m, nil
	}

	if msg.Type != tea.KeyRunes {
		return m, nil
	}
	if msg.Paste {
		m.session.Paste(string(msg.Runes))
		return m, nil
	}
	var cmds []tea.Cmd
	for _, r := range msg.Runes {
		if res, ok := m.session.Key(string(r)); ok {
			cmds = append(cmds, m.apply(res))
		}
	}
	return m, tea.Batch(cmds...)
}

// apply schedules the error reset requested by an input.
func (m Model) apply(res calc.Result) tea.Cmd {
	if res.ResetAfter <= 0 {
		return nil
	}
	token := res.ResetToken
	return tea.Tick(res.ResetAfter, func(time.Time) tea.Msg {
		return resetMsg{token: token}
	})
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("giocalc"))
	b.WriteString("\n\n")
	b.WriteString(m.renderHistory())
	b.WriteString("\n\n")
	b.WriteString(m.renderDisplay())
	b.WriteString("\n\n")
	b.WriteString(m.renderKeypad())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHistory() string {
	entries := m.session.History().Entries()
	if len(entries) == 0 {
		return EmptyHistoryStyle.Render("no history")
	}
	first := max(len(entries)-historyRows, 0)
	if m.cursor >= 0 && m.cursor < first {
		first = m.cursor
	}
	last := min(first+historyRows, len(entries))

	rows := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		line := entries[i].Expression + " = " + entries[i].Result
		if i == m.cursor {
			rows = append(rows, HistorySelectedStyle.Render(line))
		} else {
			rows = append(rows, HistoryStyle.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderDisplay() string {
	style := DisplayStyle.Width(spanWidth(calc.Cols))
	if m.session.ShowingError() {
		style = style.Foreground(ColorError)
	}
	return style.Render(m.session.Text())
}

func (m Model) renderKeypad() string {
	rows := make([][]string, calc.Rows)
	for _, b := range calc.Buttons {
		rows[b.Row] = append(rows[b.Row], keyStyle(b).Render(b.Label))
	}
	gap := strings.Repeat(" ", cellGap)
	lines := make([]string, len(rows))
	for i, cells := range rows {
		lines[i] = strings.Join(cells, gap)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
