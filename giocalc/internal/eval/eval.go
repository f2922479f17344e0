// Package eval computes arithmetic expressions and formats their results for
// display.
//
// Parsing is delegated to an Evaluator. Everything that can go wrong during
// evaluation is reported as a Failure outcome wrapping ErrEvaluation; nothing
// in this package panics on user input.
package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrEvaluation is the cause of every failed outcome.
	ErrEvaluation = errors.New("expression error")

	ErrEmptyExpression = errors.New("empty expression")
	ErrNonFinite       = errors.New("result is not a finite number")
)

// Evaluator computes the numeric value of an expression.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// Error is an evaluation failure for a particular expression.
type Error struct {
	Expr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrEvaluation, e.Expr, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrEvaluation, e.Err}
}

// Outcome is the result of evaluating an expression: either the formatted
// value or the reason evaluation failed.
type Outcome struct {
	ok   bool
	text string
	err  error
}

func Success(text string) Outcome {
	return Outcome{ok: true, text: text}
}

func Failure(err error) Outcome {
	return Outcome{err: err}
}

func (o Outcome) OK() bool { return o.ok }

// Text is the display text of a successful outcome.
func (o Outcome) Text() string { return o.text }

// Err is the failure reason, nil on success.
func (o Outcome) Err() error { return o.err }

func (o Outcome) String() string {
	if o.ok {
		return "Success(" + strconv.Quote(o.text) + ")"
	}
	return "Failure(" + fmt.Sprint(o.err) + ")"
}

// Evaluate runs expr through ev and formats the value.
// An empty expression has no value and fails.
func Evaluate(ev Evaluator, expr string) Outcome {
	if strings.TrimSpace(expr) == "" {
		return Failure(&Error{Expr: expr, Err: ErrEmptyExpression})
	}
	v, err := ev.Evaluate(expr)
	if err != nil {
		return Failure(&Error{Expr: expr, Err: err})
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Failure(&Error{Expr: expr, Err: errors.Wrapf(ErrNonFinite, "got %v", v)})
	}
	return Success(Format(v))
}

// Bounds of int64 as exactly representable floats. The upper bound is
// exclusive: 2^63 itself does not fit.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// Format renders v for display. Whole numbers within the int64 range have no
// fractional part; anything else gets six significant digits.
func Format(v float64) string {
	if v == math.Trunc(v) && v >= minInt64Float && v < maxInt64Float {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
