package eval

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// normalize rewrites expr into a form govaluate reads the same way a
// calculator user does. govaluate's lexer joins adjacent operator characters
// into one token ("*-", "+."), so every token is separated by a space. Number
// literals are reduced to plain decimal notation, which also makes exponent
// forms like 6.17284e+07 readable. A unary plus is dropped.
func normalize(expr string) (string, error) {
	var (
		out  []string
		prev string // last emitted token, "" at start
		rs   = []rune(expr)
	)
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case unicode.IsSpace(c):
			i++

		case isDigit(c) || c == '.':
			lit, n, err := scanNumber(rs[i:])
			if err != nil {
				return "", err
			}
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return "", errors.Wrapf(err, "number %q", lit)
			}
			prev = strconv.FormatFloat(v, 'f', -1, 64)
			out = append(out, prev)
			i += n

		case c == '+' && operandExpected(prev):
			// unary plus is a no-op
			i++

		case strings.ContainsRune("+-*/()", c):
			prev = string(c)
			out = append(out, prev)
			i++

		case unicode.IsLetter(c) || c == '_':
			j := i + 1
			for j < len(rs) && (unicode.IsLetter(rs[j]) || isDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			prev = string(rs[i:j])
			out = append(out, prev)
			i = j

		default:
			// anything else is left for govaluate to accept or reject
			j := i + 1
			for j < len(rs) && isOtherSymbol(rs[j]) {
				j++
			}
			prev = string(rs[i:j])
			out = append(out, prev)
			i = j
		}
	}
	if len(out) == 0 && strings.TrimSpace(expr) != "" {
		return "", errors.New("operator without operand")
	}
	return strings.Join(out, " "), nil
}

// scanNumber reads a decimal literal with optional fraction and exponent
// from the start of rs. It returns the literal and its length in runes.
func scanNumber(rs []rune) (string, int, error) {
	i, digits := 0, 0
	for i < len(rs) && isDigit(rs[i]) {
		i++
		digits++
	}
	if i < len(rs) && rs[i] == '.' {
		i++
		for i < len(rs) && isDigit(rs[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return "", 0, errors.Errorf("malformed number %q", string(rs[:i]))
	}
	// exponent, only if complete
	if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
		j := i + 1
		if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
			j++
		}
		k := j
		for k < len(rs) && isDigit(rs[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	if i < len(rs) && (rs[i] == '.' || isDigit(rs[i])) {
		return "", 0, errors.Errorf("malformed number %q", string(rs[:i+1]))
	}
	return string(rs[:i]), i, nil
}

// operandExpected reports whether a + or - after prev is a sign rather than
// a binary operator.
func operandExpected(prev string) bool {
	switch prev {
	case "", "+", "-", "*", "/", "(":
		return true
	}
	r := []rune(prev)[0]
	return !(isDigit(r) || unicode.IsLetter(r) || r == '_' || prev == ")")
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isOtherSymbol(c rune) bool {
	return !unicode.IsSpace(c) && !isDigit(c) && !unicode.IsLetter(c) && c != '_' &&
		c != '.' && !strings.ContainsRune("+-*/()", c)
}
