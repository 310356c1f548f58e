package texdoc

import (
	"sort"
	"strings"
	"unicode"

	"github.com/alexflint/go-restructure"
)

// a regular expression for latex \newcommand lines, which get moved automatically to the preamble
type newcommand struct {
	_     string `^\s*\\(?:re)?newcommand\{`
	Name  string `\\[A-Za-z0-9]+`
	_     string `\}`
	Args  string `(?:\[\d\])?`
	_     string `\{`
	Value string `.*`
	_     string `\}\s*$`
}

var newcommandPattern = restructure.MustCompile(&newcommand{}, restructure.Options{})

// Definitions collects \newcommand lines for the preamble. Latex does not
// permit digits in command names, so a command such as \T1 is defined as
// \Tone and every use of it is renamed to match.
type Definitions struct {
	lines  []string
	rename map[string]string
}

// Add records line if it is a \newcommand definition and reports whether
// it was one
func (d *Definitions) Add(line string) bool {
	var cmd newcommand
	if !newcommandPattern.Find(&cmd, line) {
		return false
	}

	fixed := fixLatexSymbol(cmd.Name)
	if fixed != cmd.Name {
		if d.rename == nil {
			d.rename = make(map[string]string)
		}
		d.rename[cmd.Name] = fixed
	}
	d.lines = append(d.lines, `\newcommand{`+fixed+`}`+cmd.Args+`{`+cmd.Value+`}`)
	return true
}

// Lines returns the definitions in the order they were added
func (d *Definitions) Lines() []string {
	return d.lines
}

// Len returns the number of definitions
func (d *Definitions) Len() int {
	return len(d.lines)
}

// Rename rewrites uses of commands whose names were changed. Longer names
// are rewritten first so that \T12 is not mistaken for \T1 followed by 2.
func (d *Definitions) Rename(s string) string {
	if len(d.rename) == 0 {
		return s
	}
	names := make([]string, 0, len(d.rename))
	for name := range d.rename {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		s = strings.ReplaceAll(s, name, d.rename[name])
	}
	return s
}

// Hoist removes \newcommand lines from text and returns the remaining text
// together with the definitions that were found
func Hoist(text string) (string, *Definitions) {
	var defs Definitions
	var body strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if defs.Add(strings.TrimRight(line, "\r\n")) {
			continue
		}
		body.WriteString(line)
	}
	return body.String(), &defs
}

// splitSpace splits a string into leading whitespace, trailing
// whitespace, and everything in between
func splitSpace(s string) (left, middle, right string) {
	trimmedLeft := strings.TrimLeftFunc(s, unicode.IsSpace)
	middle = strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	left = s[:len(s)-len(trimmedLeft)]
	right = trimmedLeft[len(middle):]
	return
}

var digitNames = strings.NewReplacer(
	"0", "zero",
	"1", "one",
	"2", "two",
	"3", "three",
	"4", "four",
	"5", "five",
	"6", "six",
	"7", "seven",
	"8", "eight",
	"9", "nine",
)

// fixLatexSymbol changes \T1 to \Tone and so forth, because latex does not permit numbers in symbols
func fixLatexSymbol(s string) string {
	return digitNames.Replace(s)
}
