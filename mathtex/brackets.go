package mathtex

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrNotOpening is returned by FindMatching when the character at the
	// start position is not the opening character
	ErrNotOpening = errors.New("character at start position is not the opening bracket")
	// ErrUnmatched is returned by FindMatching when the text ends before the
	// opening bracket is closed
	ErrUnmatched = errors.New("no matching closing bracket")
)

// FindMatching returns the byte index of the close rune that matches the
// open rune at byte index start. Depth goes up on every open and down on
// every close, and the match is where it returns to zero.
func FindMatching(s string, start int, open, close rune) (int, error) {
	if start < 0 || start >= len(s) {
		return -1, ErrNotOpening
	}
	if r, _ := utf8.DecodeRuneInString(s[start:]); r != open {
		return -1, ErrNotOpening
	}

	var depth int
	for i, r := range s[start:] {
		switch r {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return start + i, nil
			}
		}
	}
	return -1, ErrUnmatched
}

// closerFor returns the closing bracket for the brackets that group a
// formula, or zero for anything else
func closerFor(b byte) rune {
	switch b {
	case '(':
		return ')'
	case '{':
		return '}'
	}
	return 0
}

// isEscaped reports whether the byte at position i is preceded by an odd
// number of backslashes
func isEscaped(s string, i int) bool {
	var n int
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
