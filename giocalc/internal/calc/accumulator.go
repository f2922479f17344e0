package calc

import "unicode/utf8"

// Accumulator holds the expression being typed.
//
// After a result is displayed, pendingClear is set, and the next input wipes
// the buffer before it is applied. Clear and DeleteLast never touch the flag.
type Accumulator struct {
	text         string
	pendingClear bool
}

// AppendToken appends tok verbatim. Tokens are not validated; malformed
// expressions are reported by evaluation.
func (a *Accumulator) AppendToken(tok string) {
	a.consumePendingClear()
	a.text += tok
}

// DeleteLast removes the final character, if any.
func (a *Accumulator) DeleteLast() {
	if len(a.text) > 0 {
		_, size := utf8.DecodeLastRuneInString(a.text)
		a.text = a.text[:len(a.text)-size]
	}
}

// Clear empties the buffer.
func (a *Accumulator) Clear() {
	a.text = ""
}

// Text returns the buffer contents.
func (a *Accumulator) Text() string {
	return a.text
}

// PendingClear reports whether the next input will wipe the buffer.
func (a *Accumulator) PendingClear() bool {
	return a.pendingClear
}

// Replace overwrites the buffer. The flag is left as is.
func (a *Accumulator) Replace(text string) {
	a.text = text
}

func (a *Accumulator) markPendingClear() {
	a.pendingClear = true
}

func (a *Accumulator) resetPendingClear() {
	a.pendingClear = false
}

// consumePendingClear wipes the buffer if a result is being displayed.
func (a *Accumulator) consumePendingClear() {
	if a.pendingClear {
		a.text = ""
		a.pendingClear = false
	}
}
