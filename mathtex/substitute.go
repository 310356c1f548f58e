package mathtex

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Substitution replaces one glyph or string with a LaTeX command
type Substitution struct {
	Key   string
	Value string
}

// SubstitutionMap is an ordered list of substitutions with unique keys. It
// is never modified during a conversion, so one map can be shared between
// concurrent conversions.
type SubstitutionMap []Substitution

// Lookup returns the value for key
func (m SubstitutionMap) Lookup(key string) (string, bool) {
	for _, s := range m {
		if s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}

// keysLongestFirst returns the substitutions ordered so that a key that
// contains another key is applied before it. Ties keep dictionary order.
func (m SubstitutionMap) keysLongestFirst() []Substitution {
	out := make([]Substitution, len(m))
	copy(out, m)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Key) > len(out[j].Key)
	})
	return out
}

// valuesLongestFirst returns the distinct non-empty values, longest first
func (m SubstitutionMap) valuesLongestFirst() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range m {
		if s.Value != "" && !seen[s.Value] {
			seen[s.Value] = true
			out = append(out, s.Value)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

// Substitute replaces every key of m in s with its value, then separates
// each inserted value from the character after it with a space so that a
// command such as \varphi cannot run into a following letter. No space is
// added before a digit, a backslash, whitespace, or the end of the text.
func Substitute(s string, m SubstitutionMap) string {
	if len(m) == 0 {
		return s
	}

	for _, sub := range m.keysLongestFirst() {
		if sub.Key == "" {
			continue
		}
		s = strings.ReplaceAll(s, sub.Key, sub.Value)
	}

	values := m.valuesLongestFirst()
	var out strings.Builder
	out.Grow(len(s) + len(s)/8)
	for i := 0; i < len(s); {
		value := valueAt(s, i, values)
		if value == "" {
			_, size := utf8.DecodeRuneInString(s[i:])
			out.WriteString(s[i : i+size])
			i += size
			continue
		}

		out.WriteString(value)
		i += len(value)
		if needsSpace(s[i:]) {
			out.WriteByte(' ')
		}
	}
	return out.String()
}

// valueAt returns the longest value that occurs at position i, or ""
func valueAt(s string, i int, values []string) string {
	for _, v := range values {
		if strings.HasPrefix(s[i:], v) {
			return v
		}
	}
	return ""
}

// needsSpace reports whether a space must separate an inserted command from
// the text that follows it
func needsSpace(rest string) bool {
	if rest == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !unicode.IsDigit(r) && r != '\\' && !unicode.IsSpace(r)
}
