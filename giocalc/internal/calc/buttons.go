package calc

const (
	Digit Kind = iota
	Operator
	Decimal
	Evaluate
	Clear
)

// Kind is the category of a keypad button. It decides what a press does and
// how the button is styled.
type Kind int

func (k Kind) String() string {
	switch k {
	case Digit:
		return "digit"
	case Operator:
		return "operator"
	case Decimal:
		return "decimal"
	case Evaluate:
		return "evaluate"
	case Clear:
		return "clear"
	default:
		panic("unknown kind")
	}
}

// Button is a keypad key. Label is what the user sees, Token is what gets
// appended to the expression; they differ for × and ÷.
type Button struct {
	Label string
	Token string
	Row   int
	Col   int
	Span  int
	Kind  Kind
}

// Action returns what pressing b does.
func (b Button) Action() Action {
	switch b.Kind {
	case Digit, Operator, Decimal:
		return Action{Op: OpAppend, Token: b.Token}
	case Evaluate:
		return Action{Op: OpEvaluate}
	case Clear:
		return Action{Op: OpClear}
	default:
		panic("unknown kind")
	}
}

// Keypad dimensions.
const (
	Rows = 5
	Cols = 4
)

// Buttons is the keypad layout, in row-major order.
var Buttons = []Button{
	{Label: "C", Row: 0, Col: 0, Span: 3, Kind: Clear},
	{Label: "÷", Token: "/", Row: 0, Col: 3, Span: 1, Kind: Operator},

	{Label: "7", Token: "7", Row: 1, Col: 0, Span: 1, Kind: Digit},
	{Label: "8", Token: "8", Row: 1, Col: 1, Span: 1, Kind: Digit},
	{Label: "9", Token: "9", Row: 1, Col: 2, Span: 1, Kind: Digit},
	{Label: "×", Token: "*", Row: 1, Col: 3, Span: 1, Kind: Operator},

	{Label: "4", Token: "4", Row: 2, Col: 0, Span: 1, Kind: Digit},
	{Label: "5", Token: "5", Row: 2, Col: 1, Span: 1, Kind: Digit},
	{Label: "6", Token: "6", Row: 2, Col: 2, Span: 1, Kind: Digit},
	{Label: "-", Token: "-", Row: 2, Col: 3, Span: 1, Kind: Operator},

	{Label: "1", Token: "1", Row: 3, Col: 0, Span: 1, Kind: Digit},
	{Label: "2", Token: "2", Row: 3, Col: 1, Span: 1, Kind: Digit},
	{Label: "3", Token: "3", Row: 3, Col: 2, Span: 1, Kind: Digit},
	{Label: "+", Token: "+", Row: 3, Col: 3, Span: 1, Kind: Operator},

	{Label: "0", Token: "0", Row: 4, Col: 0, Span: 2, Kind: Digit},
	{Label: ".", Token: ".", Row: 4, Col: 2, Span: 1, Kind: Decimal},
	{Label: "=", Row: 4, Col: 3, Span: 1, Kind: Evaluate},
}

// glyphTokens maps display glyphs to the operators the evaluator accepts.
var glyphTokens = map[rune]string{
	'×': "*",
	'÷': "/",
}
