package mathtex

import (
	"strings"
)

// CombiningTilde is the mark a word processor attaches after a closing
// parenthesis to put a wide tilde over the parenthesized expression
const CombiningTilde = '\u0303'

const combiningTildeLen = len(string(CombiningTilde))

const wideTilde = `\widetilde`

// NormalizeAccents rewrites "(expr)" followed by a combining tilde into
// \widetilde{expr}. Tildes that do not directly follow a matched closing
// parenthesis are left in place and reported in a warning diagnostic.
func NormalizeAccents(s string) (string, []Diagnostic) {
	out := normalizeAccents(s)

	var leftover []int
	for i, r := range out {
		if r == CombiningTilde {
			leftover = append(leftover, i)
		}
	}
	if len(leftover) == 0 {
		return out, nil
	}

	return out, []Diagnostic{{
		Severity:  Warning,
		Stage:     "accents",
		Message:   "unresolved accent mark",
		Positions: runeOffsets(out, leftover),
	}}
}

func normalizeAccents(s string) string {
	if !strings.ContainsRune(s, CombiningTilde) {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '(' {
			out.WriteByte(s[i])
			continue
		}

		end, err := FindMatching(s, i, '(', ')')
		if err != nil || !strings.HasPrefix(s[end+1:], string(CombiningTilde)) {
			// not an accent construct, so keep scanning inside the parentheses
			out.WriteByte('(')
			continue
		}

		out.WriteString(wideTilde)
		out.WriteByte('{')
		out.WriteString(normalizeAccents(s[i+1 : end]))
		out.WriteByte('}')
		i = end + combiningTildeLen
	}
	return out.String()
}
