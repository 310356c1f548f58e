package mathtex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Script classifies a run of text
type Script int

const (
	// Prose is natural-language text: prose letters, parentheses, whitespace
	Prose Script = iota
	// Formula is everything else
	Formula
)

func (s Script) String() string {
	if s == Prose {
		return "prose"
	}
	return "formula"
}

// Segment is a maximal run of text in a single script
type Segment struct {
	Script Script
	Text   string
	Start  int // byte offset of the run in the segmented text
}

// IsProseLetter reports whether r is a letter of the prose alphabet
func IsProseLetter(r rune) bool {
	return unicode.Is(unicode.Cyrillic, r)
}

func classify(r rune) Script {
	if IsProseLetter(r) || unicode.IsSpace(r) || r == '(' || r == ')' {
		return Prose
	}
	return Formula
}

// SplitScripts partitions s into alternating prose and formula segments.
// Whitespace between two formula runs belongs to the formula.
func SplitScripts(s string) []Segment {
	var runs []Segment
	var start int
	var cur Script
	for i, r := range s {
		sc := classify(r)
		if i == 0 {
			cur = sc
			continue
		}
		if sc != cur {
			runs = append(runs, Segment{Script: cur, Text: s[start:i], Start: start})
			start, cur = i, sc
		}
	}
	if len(s) > 0 {
		runs = append(runs, Segment{Script: cur, Text: s[start:], Start: start})
	}

	// fold blank prose runs that sit between two formula runs
	var segs []Segment
	for i := 0; i < len(runs); i++ {
		run := runs[i]
		if run.Script == Prose && isBlank(run.Text) &&
			len(segs) > 0 && segs[len(segs)-1].Script == Formula &&
			i+1 < len(runs) && runs[i+1].Script == Formula {

			last := &segs[len(segs)-1]
			next := runs[i+1]
			last.Text = s[last.Start : next.Start+len(next.Text)]
			i++
			continue
		}
		segs = append(segs, run)
	}
	return segs
}

// Join concatenates the text of the segments
func Join(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

const textCommand = `\text`

// Rewrite reassembles the segments, wrapping prose in \text{...} where it
// meets a formula:
//
//	A: the prose word directly before a ^ or _ that opens a formula segment
//	B: the prose word directly after a ^ or _ that closes a formula segment
//	C: any prose inside a brace group opened in a formula segment
//
// Inside a brace group C is used, since wrapping the whole run also wraps
// the word that A or B would pick. Outside a group a run between a closing
// and an opening script gets both of its edge words wrapped. Overlapping
// rules are reported in an info diagnostic.
func Rewrite(segs []Segment) (string, []Diagnostic) {
	text := Join(segs)

	var out strings.Builder
	out.Grow(len(text))

	var ambiguous []int
	group, quoted := -1, -1 // closing brace of the active group and of the active \text group
	for i, seg := range segs {
		if seg.Script == Formula {
			out.WriteString(seg.Text)
			group, quoted = scanBraces(text, seg, group, quoted)
			continue
		}

		if seg.Start < quoted {
			// already inside \text{...}
			out.WriteString(seg.Text)
			continue
		}

		ruleA := i+1 < len(segs) && opensWithScript(segs[i+1].Text)
		ruleB := i > 0 && closesWithScript(segs[i-1].Text)
		ruleC := seg.Start < group
		if count(ruleA, ruleB, ruleC) > 1 {
			ambiguous = append(ambiguous, out.Len())
		}

		switch {
		case ruleC:
			out.WriteString(wrapProse(seg.Text))
		case ruleA && ruleB:
			out.WriteString(wrapFirstWord(wrapLastWord(seg.Text)))
		case ruleA:
			out.WriteString(wrapLastWord(seg.Text))
		case ruleB:
			out.WriteString(wrapFirstWord(seg.Text))
		default:
			out.WriteString(seg.Text)
		}
	}

	result := out.String()
	if len(ambiguous) == 0 {
		return result, nil
	}
	return result, []Diagnostic{{
		Severity:  Info,
		Stage:     "rewrite",
		Message:   "prose matched more than one rewrite rule",
		Positions: runeOffsets(result, ambiguous),
	}}
}

// scanBraces looks for brace groups opened inside a formula segment and
// returns the updated closing positions of the active brace group and of
// the active \text group
func scanBraces(text string, seg Segment, group, quoted int) (int, int) {
	end := seg.Start + len(seg.Text)
	for p := seg.Start; p < end; p++ {
		if text[p] != '{' || isEscaped(text, p) {
			continue
		}

		if strings.HasSuffix(text[:p], textCommand) {
			if m, err := FindMatching(text, p, '{', '}'); err == nil && m > quoted {
				quoted = m
			}
			continue
		}

		if p > group {
			if m, err := FindMatching(text, p, '{', '}'); err == nil {
				group = m
			}
		}
	}
	return group, quoted
}

// opensWithScript reports whether a formula segment begins with ^ or _
func opensWithScript(s string) bool {
	return len(s) > 0 && (s[0] == '^' || s[0] == '_')
}

// closesWithScript reports whether a formula segment ends with an unescaped
// ^ or _
func closesWithScript(s string) bool {
	n := len(s) - 1
	return n >= 0 && (s[n] == '^' || s[n] == '_') && !isEscaped(s, n)
}

// wrapLastWord wraps the word at the end of s, ignoring trailing whitespace
func wrapLastWord(s string) string {
	body := strings.TrimRightFunc(s, unicode.IsSpace)
	word := strings.LastIndexFunc(body, func(r rune) bool { return !IsProseLetter(r) })
	if word < 0 {
		word = 0
	} else {
		_, size := utf8.DecodeRuneInString(body[word:])
		word += size
	}
	if word == len(body) {
		return s
	}
	return body[:word] + quote(body[word:]) + s[len(body):]
}

// wrapFirstWord wraps the word at the start of s, ignoring leading whitespace
func wrapFirstWord(s string) string {
	body := strings.TrimLeftFunc(s, unicode.IsSpace)
	lead := len(s) - len(body)
	word := strings.IndexFunc(body, func(r rune) bool { return !IsProseLetter(r) })
	if word < 0 {
		word = len(body)
	}
	if word == 0 {
		return s
	}
	return s[:lead] + quote(body[:word]) + body[word:]
}

// wrapProse wraps s with its surrounding whitespace kept outside the wrap,
// or returns s unchanged if it contains no prose letters
func wrapProse(s string) string {
	if strings.IndexFunc(s, IsProseLetter) < 0 {
		return s
	}
	body := strings.TrimSpace(s)
	lead := strings.Index(s, body)
	return s[:lead] + quote(body) + s[lead+len(body):]
}

func quote(s string) string {
	return textCommand + "{" + s + "}"
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func count(flags ...bool) int {
	var n int
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
