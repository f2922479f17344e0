package eval

import (
	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

// Govaluate evaluates expressions with the govaluate library. Expressions
// must be purely numeric: variables are never bound, and boolean or string
// results are rejected.
type Govaluate struct{}

func NewGovaluate() Govaluate {
	return Govaluate{}
}

func (Govaluate) Evaluate(expr string) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("evaluator panic: %v", r)
		}
	}()

	norm, err := normalize(expr)
	if err != nil {
		return 0, errors.Wrap(err, "parse")
	}
	e, err := govaluate.NewEvaluableExpression(norm)
	if err != nil {
		return 0, errors.Wrap(err, "parse")
	}
	result, err := e.Evaluate(nil)
	if err != nil {
		return 0, errors.Wrap(err, "evaluate")
	}
	num, ok := result.(float64)
	if !ok {
		return 0, errors.Errorf("result %v (%T) is not a number", result, result)
	}
	return num, nil
}
