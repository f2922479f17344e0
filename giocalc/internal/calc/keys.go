package calc

import "strings"

const (
	OpAppend Op = iota
	OpEvaluate
	OpDeleteLast
	OpClear
)

// Op is an operation on the session.
type Op int

func (op Op) String() string {
	switch op {
	case OpAppend:
		return "append"
	case OpEvaluate:
		return "evaluate"
	case OpDeleteLast:
		return "delete"
	case OpClear:
		return "clear"
	default:
		panic("unknown op")
	}
}

// Action is one user input. Token is only used by OpAppend.
type Action struct {
	Op    Op
	Token string
}

// Toolkit-neutral names of the non-printing keys. UIs translate their own
// key names to these before calling KeyAction.
const (
	KeyEnter     = "Enter"
	KeyReturn    = "Return"
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
)

// KeyAction maps a key name to an action. It returns false for keys the
// calculator doesn't handle; such events should be left to the toolkit.
func KeyAction(name string) (Action, bool) {
	switch name {
	case KeyEnter, KeyReturn, "=":
		return Action{Op: OpEvaluate}, true
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return Action{Op: OpAppend, Token: name}, true
	case "+", "-", "*", "/", ".", "(", ")":
		return Action{Op: OpAppend, Token: name}, true
	case KeyBackspace:
		return Action{Op: OpDeleteLast}, true
	case KeyEscape:
		return Action{Op: OpClear}, true
	default:
		return Action{}, false
	}
}

// normalizeGlyphs replaces display glyphs with evaluator operators.
func normalizeGlyphs(s string) string {
	return strings.Map(func(r rune) rune {
		if tok, ok := glyphTokens[r]; ok {
			return rune(tok[0])
		}
		return r
	}, s)
}
