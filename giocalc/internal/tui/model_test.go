package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/fjl/giocalc/giocalc/internal/calc"
)

func newModel() Model {
	return New(calc.NewSession(calc.Options{ErrorDelay: time.Millisecond}), nil)
}

func send(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestTypeAndEvaluate(t *testing.T) {
	m, cmd := send(t, newModel(), runes("1"), runes("+"), runes("2"), enter)
	require.Nil(t, cmd)
	require.Equal(t, "3", m.session.Text())
	require.Equal(t, 1, m.session.History().Len())
	require.Contains(t, m.View(), "1+2 = 3")
}

func TestMultipleRunes(t *testing.T) {
	m, _ := send(t, newModel(), runes("12*3"), runes("="))
	require.Equal(t, "36", m.session.Text())
}

func TestPaste(t *testing.T) {
	msg := runes(" 6 × 7 ")
	msg.Paste = true
	m, _ := send(t, newModel(), msg, enter)
	require.Equal(t, "42", m.session.Text())
}

func TestErrorReset(t *testing.T) {
	m, cmd := send(t, newModel(), runes("1/0"), enter)
	require.True(t, m.session.ShowingError())
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, resetMsg{}, msg)
	next, _ := m.Update(msg)
	m = next.(Model)
	require.False(t, m.session.ShowingError())
	require.Equal(t, "", m.session.Text())
}

func TestBackspaceAndClear(t *testing.T) {
	m, _ := send(t, newModel(), runes("123"), tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "12", m.session.Text())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "", m.session.Text())
}

func TestHistoryReplay(t *testing.T) {
	m, _ := send(t, newModel(), runes("2*3"), enter, runes("1+1"), enter)
	require.Equal(t, "2", m.session.Text())

	up := tea.KeyMsg{Type: tea.KeyUp}
	m, _ = send(t, m, up, up)
	require.Equal(t, 0, m.cursor)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "2*3", m.session.Text())
	require.Equal(t, -1, m.cursor)
	require.Equal(t, 2, m.session.History().Len())

	m, _ = send(t, m, enter)
	require.Equal(t, "6", m.session.Text())
	require.Equal(t, 3, m.session.History().Len())
}

func TestHistoryCursorBounds(t *testing.T) {
	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ := send(t, newModel(), up)
	require.Equal(t, -1, m.cursor, "no history")

	m, _ = send(t, m, runes("1"), enter, up, up)
	require.Equal(t, 0, m.cursor)
	m, _ = send(t, m, down)
	require.Equal(t, -1, m.cursor)
}

func TestQuit(t *testing.T) {
	_, cmd := send(t, newModel(), runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestKeypadView(t *testing.T) {
	view := newModel().View()
	for _, b := range calc.Buttons {
		require.Contains(t, view, b.Label)
	}
	require.True(t, strings.Contains(view, "no history"))
}
