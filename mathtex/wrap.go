package mathtex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MathDelimiter opens and closes inline math
const MathDelimiter = '$'

// punctuation that belongs to the surrounding sentence when it sits at the
// edge of a formula; a leading hyphen stays with the formula as a sign, and
// so does a trailing apostrophe, which is a prime
const (
	leadingPunct  = ",.;:!?–—«»“”„\""
	trailingPunct = ",.;:!?-–—«»“”„\""
)

// WrapFormulas encloses every formula in s in $...$. A formula starts at
// the first character that is not prose, whitespace, a parenthesis or an
// existing math span, and runs until the next prose letter, unmatched
// bracket, math delimiter or line break. Bracketed spans inside
// a formula are taken whole, so prose inside braces does not end it.
func WrapFormulas(s string) string {
	var out strings.Builder
	out.Grow(len(s) + len(s)/8)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == MathDelimiter:
			end := closingDollar(s, i)
			if end < 0 {
				out.WriteRune(r)
				i += size
				continue
			}
			out.WriteString(s[i : end+1])
			i = end + 1
		case IsProseLetter(r) || unicode.IsSpace(r) || r == '(' || r == ')':
			out.WriteRune(r)
			i += size
		default:
			end := scanFormula(s, i)
			if end == i {
				out.WriteRune(r)
				i += size
				continue
			}
			writeFormula(&out, s[i:end])
			i = end
		}
	}
	return out.String()
}

// scanFormula returns the end of the formula that begins at position start
func scanFormula(s string, start int) int {
	i := start
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\':
			// the escaped character is part of the formula whatever it is
			i++
			if i < len(s) {
				_, size := utf8.DecodeRuneInString(s[i:])
				i += size
			}
			continue
		case c == MathDelimiter, c == ')', c == '\n', c == '\r':
			return i
		case closerFor(c) != 0:
			end, err := FindMatching(s, i, rune(c), closerFor(c))
			if err != nil {
				// an unmatched opener is left outside the formula
				return i
			}
			i = end + 1
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if IsProseLetter(r) {
			return i
		}
		i += size
	}
	return i
}

// writeFormula writes the formula with its edges trimmed, keeping the
// trimmed parts outside the delimiters
func writeFormula(out *strings.Builder, f string) {
	// the trailing edge goes first so that a lone "-" is trimmed as
	// punctuation rather than kept as a sign; control symbols such as "\,"
	// are never split
	end := len(f)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(f[:end])
		if !unicode.IsSpace(r) && !strings.ContainsRune(trailingPunct, r) {
			break
		}
		if isEscaped(f, end-size) {
			break
		}
		end -= size
	}
	trail := f[end:]

	body := strings.TrimLeftFunc(f[:end], func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(leadingPunct, r)
	})
	lead := f[:end-len(body)]

	out.WriteString(lead)
	if body != "" {
		out.WriteRune(MathDelimiter)
		out.WriteString(body)
		out.WriteRune(MathDelimiter)
	}
	out.WriteString(trail)
}
