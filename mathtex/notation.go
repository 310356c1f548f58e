package mathtex

import (
	"strings"
)

// NormalizeScripts rewrites the word-processor notation ^(...) and _(...)
// into ^{...} and _{...}. Nested occurrences inside the parentheses are
// rewritten too. Occurrences with no closing parenthesis are left in place
// and reported in a warning diagnostic.
func NormalizeScripts(s string) (string, []Diagnostic) {
	var unmatched bool
	out := normalizeScripts(s, &unmatched)
	if !unmatched {
		return out, nil
	}

	// unmatched openers are copied through unchanged, but the text around
	// them may have been rewritten, so locate them again in the output
	positions := unmatchedScripts(out)
	return out, []Diagnostic{{
		Severity:  Warning,
		Stage:     "scripts",
		Message:   "superscript or subscript with no closing parenthesis",
		Positions: runeOffsets(out, positions),
	}}
}

func normalizeScripts(s string, unmatched *bool) string {
	if !strings.Contains(s, "^(") && !strings.Contains(s, "_(") {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isScriptOpener(s, i) {
			out.WriteByte(c)
			continue
		}

		end, err := FindMatching(s, i+1, '(', ')')
		if err != nil {
			*unmatched = true
			out.WriteByte(c)
			continue
		}

		out.WriteByte(c)
		out.WriteByte('{')
		out.WriteString(normalizeScripts(s[i+2:end], unmatched))
		out.WriteByte('}')
		i = end
	}
	return out.String()
}

// isScriptOpener reports whether position i holds an unescaped ^ or _ that
// is immediately followed by an opening parenthesis
func isScriptOpener(s string, i int) bool {
	return (s[i] == '^' || s[i] == '_') &&
		i+1 < len(s) && s[i+1] == '(' &&
		!isEscaped(s, i)
}

// unmatchedScripts returns the byte offsets of every ^( or _( in s that has
// no closing parenthesis
func unmatchedScripts(s string) []int {
	var out []int
	for i := 0; i < len(s); i++ {
		if isScriptOpener(s, i) {
			if _, err := FindMatching(s, i+1, '(', ')'); err != nil {
				out = append(out, i)
			}
		}
	}
	return out
}
