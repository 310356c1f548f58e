package mathtex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	escapedBackslash = `\textbackslash{}`
	escapedDollar    = `\$`
	escapedCaret     = `\textasciicircum{}`
	escapedUnderline = `\_`
)

// controlSymbols are the special characters that a backslash escapes
const controlSymbols = "$%&#_{}^~"

// EscapeSpecial escapes the characters that LaTeX would otherwise interpret:
// literal backslashes, literal dollar signs, and any ^ or _ that does not
// introduce a bracketed superscript or subscript. Backslashes that already
// begin a control sequence, and $...$ spans that are already in place, are
// kept as they are. If keepBareScripts is set then ^ and _ are never escaped.
func EscapeSpecial(s string, keepBareScripts bool) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			n := controlSequenceLen(s, i)
			if n == 0 {
				out.WriteString(escapedBackslash)
				continue
			}
			out.WriteString(s[i : i+n])
			i += n - 1
		case '$':
			end := closingDollar(s, i)
			if end < 0 {
				out.WriteString(escapedDollar)
				continue
			}
			out.WriteString(s[i : end+1])
			i = end
		case '^', '_':
			if keepBareScripts || introducesGroup(s, i) {
				out.WriteByte(c)
			} else if c == '^' {
				out.WriteString(escapedCaret)
			} else {
				out.WriteString(escapedUnderline)
			}
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// controlSequenceLen returns the length in bytes of the control word or
// control symbol that begins with the backslash at position i, or zero if
// the backslash is a literal one
func controlSequenceLen(s string, i int) int {
	if i+1 >= len(s) {
		return 0
	}
	next := s[i+1]
	if isASCIILetter(next) {
		j := i + 1
		for j < len(s) && isASCIILetter(s[j]) {
			j++
		}
		return j - i
	}
	if strings.IndexByte(controlSymbols, next) >= 0 {
		return 2
	}
	return 0
}

// closingDollar returns the position of the $ that closes a math span
// opened at position i, or -1 if the $ at i does not open one. A span must
// not begin right after a digit or end right before one, must not have
// whitespace just inside either delimiter, must stay on one line, and must
// have no prose letters outside its brackets. Currency amounts such as
// "5$ и 10$" fail these checks and are escaped.
func closingDollar(s string, i int) int {
	if i > 0 && isDigit(s[i-1]) {
		return -1
	}
	if r, _ := utf8.DecodeRuneInString(s[i+1:]); i+1 >= len(s) || unicode.IsSpace(r) {
		return -1
	}

	for j := i + 1; j < len(s); j++ {
		switch {
		case s[j] == '\n':
			return -1
		case s[j] == '$' && !isEscaped(s, j):
			if j == i+1 {
				// "$$" is not an inline span
				return -1
			}
			if r, _ := utf8.DecodeLastRuneInString(s[:j]); unicode.IsSpace(r) {
				return -1
			}
			if j+1 < len(s) && isDigit(s[j+1]) {
				return -1
			}
			if hasBareProse(s[i+1 : j]) {
				return -1
			}
			return j
		}
	}
	return -1
}

// hasBareProse reports whether s has a prose letter outside any matched
// pair of parentheses or braces
func hasBareProse(s string) bool {
	for i := 0; i < len(s); {
		c := s[i]
		if c == '\\' {
			// skip the backslash and the character it escapes
			i++
			if i < len(s) {
				_, size := utf8.DecodeRuneInString(s[i:])
				i += size
			}
			continue
		}
		if closerFor(c) != 0 {
			if end, err := FindMatching(s, i, rune(c), closerFor(c)); err == nil {
				i = end + 1
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if IsProseLetter(r) {
			return true
		}
		i += size
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// introducesGroup reports whether the ^ or _ at position i is immediately
// followed by an opening parenthesis or brace
func introducesGroup(s string, i int) bool {
	return i+1 < len(s) && (s[i+1] == '(' || s[i+1] == '{')
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
