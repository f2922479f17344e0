// Package calc implements the input side of the calculator: the expression
// buffer, the keypad and key bindings, and the session that ties them to
// evaluation and history.
//
// A Session is driven by one UI event loop. It is not safe for concurrent
// use; all of its state belongs to the goroutine delivering input.
package calc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fjl/giocalc/giocalc/internal/eval"
	"github.com/fjl/giocalc/giocalc/internal/history"
	"pkt.systems/pslog"
)

const (
	// ResetDelayed keeps the error text visible until the UI calls
	// ExpireError after the reset delay.
	ResetDelayed ResetMode = iota
	// ResetImmediate clears the buffer right after the error text is set.
	// The scheduled reset then has nothing left to do.
	ResetImmediate
)

// ResetMode controls what happens to the display after a failed evaluation.
type ResetMode int

func (m ResetMode) String() string {
	switch m {
	case ResetDelayed:
		return "delayed"
	case ResetImmediate:
		return "immediate"
	default:
		panic("unknown reset mode")
	}
}

// ParseResetMode parses the textual form returned by String.
func ParseResetMode(s string) (ResetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delayed":
		return ResetDelayed, nil
	case "immediate":
		return ResetImmediate, nil
	default:
		return 0, fmt.Errorf("unknown error reset mode %q", s)
	}
}

const (
	DefaultErrorText  = "Expression error"
	DefaultErrorDelay = time.Second
)

// Options configure a session. Zero fields get defaults.
type Options struct {
	Evaluator  eval.Evaluator
	History    *history.Log
	Logger     pslog.Logger
	ResetMode  ResetMode
	ErrorText  string
	ErrorDelay time.Duration
}

// Result reports what an input did.
//
// When ResetAfter is non-zero, the UI must call ExpireError(ResetToken) once
// that much time has passed. The call may be skipped if the UI goes away.
type Result struct {
	Evaluated  bool
	Outcome    eval.Outcome
	ResetAfter time.Duration
	ResetToken uint64
}

// Session is the state of one calculator: the expression buffer, the
// history, and whether an error message is on display.
type Session struct {
	acc  Accumulator
	ev   eval.Evaluator
	hist *history.Log
	log  pslog.Logger

	mode       ResetMode
	errText    string
	errDelay   time.Duration
	errShown   bool
	errCounter uint64
}

func NewSession(opts Options) *Session {
	s := &Session{
		ev:       opts.Evaluator,
		hist:     opts.History,
		log:      opts.Logger,
		mode:     opts.ResetMode,
		errText:  opts.ErrorText,
		errDelay: opts.ErrorDelay,
	}
	if s.ev == nil {
		s.ev = eval.NewGovaluate()
	}
	if s.hist == nil {
		s.hist = history.NewLog()
	}
	if s.log == nil {
		s.log = pslog.NewWithOptions(io.Discard, pslog.Options{})
	}
	if s.errText == "" {
		s.errText = DefaultErrorText
	}
	if s.errDelay <= 0 {
		s.errDelay = DefaultErrorDelay
	}
	return s
}

// Text is what the display shows.
func (s *Session) Text() string {
	return s.acc.Text()
}

// ShowingError reports whether the display holds the error message.
func (s *Session) ShowingError() bool {
	return s.errShown
}

// PendingClear reports whether the next input replaces the display.
func (s *Session) PendingClear() bool {
	return s.acc.PendingClear()
}

func (s *Session) History() *history.Log {
	return s.hist
}

// Press handles a keypad button.
func (s *Session) Press(b Button) Result {
	return s.Do(b.Action())
}

// Key handles a key by name. It returns false if the key isn't bound.
func (s *Session) Key(name string) (Result, bool) {
	a, ok := KeyAction(name)
	if !ok {
		return Result{}, false
	}
	return s.Do(a), true
}

// Do applies an action.
func (s *Session) Do(a Action) Result {
	switch a.Op {
	case OpAppend:
		s.AppendToken(a.Token)
	case OpDeleteLast:
		s.DeleteLast()
	case OpClear:
		s.Clear()
	case OpEvaluate:
		return s.Evaluate()
	default:
		panic(fmt.Errorf("invalid op %d", a.Op))
	}
	return Result{}
}

// AppendToken adds tok to the expression, replacing a displayed result or
// error first.
func (s *Session) AppendToken(tok string) {
	s.dismissError()
	s.acc.AppendToken(tok)
}

// DeleteLast removes the last character. A displayed error is removed
// entirely.
func (s *Session) DeleteLast() {
	if s.dismissError() {
		return
	}
	s.acc.DeleteLast()
}

// Clear empties the display.
func (s *Session) Clear() {
	s.errShown = false
	s.acc.Clear()
}

// Paste appends text from the clipboard. Display glyphs are translated to
// operators and surrounding space is dropped.
func (s *Session) Paste(text string) {
	text = strings.TrimSpace(normalizeGlyphs(text))
	if text == "" {
		return
	}
	s.AppendToken(text)
}

// SelectHistory puts the expression of history entry i into the display,
// replacing whatever was there.
func (s *Session) SelectHistory(i int) error {
	expr, err := s.hist.Select(i)
	if err != nil {
		return err
	}
	s.dismissError()
	s.acc.consumePendingClear()
	s.acc.Replace(expr)
	s.log.Debug("history replay", "index", i, "expr", expr)
	return nil
}

// Evaluate computes the current expression.
//
// On success the display shows the result, the computation is recorded in
// history, and the next input starts a new expression. On failure the error
// text is shown according to the reset mode, and the result asks the UI to
// schedule ExpireError.
func (s *Session) Evaluate() Result {
	expr := s.acc.Text()
	if s.dismissError() {
		expr = ""
	}

	out := eval.Evaluate(s.ev, expr)
	if out.OK() {
		s.acc.Replace(out.Text())
		s.hist.Append(expr, out.Text())
		s.acc.markPendingClear()
		s.log.Debug("evaluated", "expr", expr, "result", out.Text())
		return Result{Evaluated: true, Outcome: out}
	}

	s.log.Warn("evaluation failed", "expr", expr, "err", out.Err())
	s.errCounter++
	s.acc.resetPendingClear()
	s.acc.Replace(s.errText)
	switch s.mode {
	case ResetImmediate:
		s.acc.Clear()
	default:
		s.errShown = true
	}
	return Result{
		Evaluated:  true,
		Outcome:    out,
		ResetAfter: s.errDelay,
		ResetToken: s.errCounter,
	}
}

// ExpireError is the delayed reset after a failed evaluation. It clears the
// display if it still shows the error identified by token.
func (s *Session) ExpireError(token uint64) {
	if s.errShown && token == s.errCounter {
		s.errShown = false
		s.acc.Clear()
	}
}

// dismissError removes a displayed error message.
func (s *Session) dismissError() bool {
	if !s.errShown {
		return false
	}
	s.errShown = false
	s.acc.Clear()
	return true
}
