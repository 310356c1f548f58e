// Package texdoc assembles LaTeX documents: it renders converted text into
// a document template, lifts \newcommand definitions into the preamble,
// and converts Google Docs into LaTeX.
package texdoc

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed template.tex
var defaultTemplate string

// Document holds the inputs to a document template
type Document struct {
	Title       string
	Author      string
	Definitions []string // \newcommand lines for the preamble
	Content     string
}

// ParseTemplate parses the template at path, or the built-in template if
// path is empty
func ParseTemplate(path string) (*template.Template, error) {
	if path == "" {
		return template.New("template.tex").Parse(defaultTemplate)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading latex template: %w", err)
	}
	tpl, err := template.New(path).Parse(string(buf))
	if err != nil {
		return nil, fmt.Errorf("error parsing latex template: %w", err)
	}
	return tpl, nil
}

// Render executes a document template
func Render(tpl *template.Template, doc Document) (string, error) {
	var out bytes.Buffer
	err := tpl.Execute(&out, doc)
	if err != nil {
		return "", fmt.Errorf("error executing latex template: %w", err)
	}
	return out.String(), nil
}

// Fragment renders a document without a template: the definitions
// followed by the content
func Fragment(doc Document) string {
	var out bytes.Buffer
	for _, line := range doc.Definitions {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if len(doc.Definitions) > 0 {
		out.WriteByte('\n')
	}
	out.WriteString(doc.Content)
	return out.String()
}
