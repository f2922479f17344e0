package history

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pkt.systems/pslog"
)

func TestAppendSelect(t *testing.T) {
	l := NewLog()
	l.Append("2+2", "4")

	expr, err := l.Select(0)
	require.NoError(t, err)
	require.Equal(t, "2+2", expr)
	require.Equal(t, 1, l.Len(), "selection must not remove the entry")
}

func TestOrderPreserved(t *testing.T) {
	l := NewLog()
	l.Append("1+1", "2")
	_, err := l.Select(0)
	require.NoError(t, err)
	l.Append("3+3", "6")
	_, err = l.Select(1)
	require.NoError(t, err)
	_, err = l.Select(0)
	require.NoError(t, err)

	entries := l.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "1+1", entries[0].Expression)
	require.Equal(t, "2", entries[0].Result)
	require.Equal(t, "3+3", entries[1].Expression)
	require.Equal(t, "6", entries[1].Result)
}

func TestDuplicatesKept(t *testing.T) {
	l := NewLog()
	a := l.Append("1+1", "2")
	b := l.Append("1+1", "2")
	require.Equal(t, 2, l.Len())
	require.NotEqual(t, a.ID, b.ID)
}

func TestSelectOutOfRange(t *testing.T) {
	l := NewLog()
	_, err := l.Select(0)
	require.True(t, errors.Is(err, ErrNoEntry))
	l.Append("1", "1")
	_, err = l.Select(-1)
	require.True(t, errors.Is(err, ErrNoEntry))
	_, err = l.Select(1)
	require.True(t, errors.Is(err, ErrNoEntry))
}

func TestEntriesIsCopy(t *testing.T) {
	l := NewLog()
	l.Append("1+2", "3")
	entries := l.Entries()
	entries[0].Expression = "changed"

	e, ok := l.Entry(0)
	require.True(t, ok)
	require.Equal(t, "1+2", e.Expression)
}

func TestSubscribe(t *testing.T) {
	var got []Event
	l := NewLog()
	l.Subscribe(SinkFunc(func(ev Event) { got = append(got, ev) }))
	l.Append("1+1", "2")
	l.Select(0)

	require.Len(t, got, 2)
	added, ok := got[0].(*EntryAdded)
	require.True(t, ok)
	require.Equal(t, 0, added.Index)
	require.Equal(t, "1+1", added.Entry.Expression)
	sel, ok := got[1].(*EntrySelected)
	require.True(t, ok)
	require.Equal(t, added.Entry.ID, sel.ID)
}

func TestTranscriptRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranscript(&buf)
	l := NewLog()
	l.Subscribe(tr)
	l.Append("1/4", "0.25")
	l.Append("6*7", "42")
	l.Select(1)
	require.NoError(t, tr.Err())
	require.Equal(t, 3, strings.Count(buf.String(), "\n"))

	events, err := ReadTranscript(&buf)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "42", events[1].(*EntryAdded).Entry.Result)
	require.Equal(t, 1, events[2].(*EntrySelected).Index)
}

func TestReadTranscriptErrors(t *testing.T) {
	tests := []string{
		`[1]`,
		`{"event":{}}`,
		`{"type":"remove","event":{}}`,
		`{"type":"add","bogus":1}`,
		`{"type":"add"}`,
	}
	for _, input := range tests {
		_, err := ReadTranscript(strings.NewReader(input))
		require.Error(t, err, "input %s", input)
	}
}

func TestReadTranscriptKeyOrder(t *testing.T) {
	input := `{"event":{"index":2,"id":"abc"},"type":"select"}`
	events, err := ReadTranscript(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, &EntrySelected{Index: 2, ID: "abc"}, events[0])
}

func TestOpenTranscriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "transcript.jsonl")
	logger := pslog.NewWithOptions(&bytes.Buffer{}, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	tr := OpenTranscript(path, logger)
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "file must not exist before the first event")

	l := NewLog()
	l.Subscribe(tr)
	l.Append("9-1", "8")
	require.NoError(t, tr.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	events, err := ReadTranscript(f)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "9-1", events[0].(*EntryAdded).Entry.Expression)
}
