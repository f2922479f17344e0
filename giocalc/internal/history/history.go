// Package history records successful computations of a calculator session.
//
// The log is append-only and lives for the session only. Entries are never
// reordered, deduplicated or removed.
package history

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoEntry is returned when selecting an index that isn't in the log.
var ErrNoEntry = errors.New("no such history entry")

type ID string

func newID() ID {
	return ID(uuid.NewString())
}

// Entry is a recorded computation.
type Entry struct {
	ID         ID     `json:"id"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// Sink receives log events synchronously, in append order.
type Sink interface {
	HandleEvent(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) HandleEvent(ev Event) { f(ev) }

// Log is the ordered history of a session.
// It is owned by the UI goroutine and not safe for concurrent use.
type Log struct {
	entries []Entry
	sinks   []Sink
}

func NewLog() *Log {
	return new(Log)
}

// Subscribe registers s for all future events.
func (l *Log) Subscribe(s Sink) {
	l.sinks = append(l.sinks, s)
}

// Append adds an entry at the end of the log.
func (l *Log) Append(expression, result string) Entry {
	e := Entry{ID: newID(), Expression: expression, Result: result}
	l.entries = append(l.entries, e)
	l.publish(&EntryAdded{Index: len(l.entries) - 1, Entry: e})
	return e
}

// Select returns the expression of entry i. The log is not modified.
func (l *Log) Select(i int) (string, error) {
	if i < 0 || i >= len(l.entries) {
		return "", fmt.Errorf("%w: index %d of %d", ErrNoEntry, i, len(l.entries))
	}
	e := l.entries[i]
	l.publish(&EntrySelected{Index: i, ID: e.ID})
	return e.Expression, nil
}

// Entry returns entry i.
func (l *Log) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Entries returns a copy of all entries, oldest first.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *Log) Len() int {
	return len(l.entries)
}

func (l *Log) publish(ev Event) {
	for _, s := range l.sinks {
		s.HandleEvent(ev)
	}
}
