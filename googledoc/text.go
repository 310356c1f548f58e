package googledoc

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// Style is the part of a text run's style that survives conversion
type Style struct {
	Bold      bool
	Italic    bool
	Monospace bool
	Link      string
}

// StyleOf returns the style of a text run
func StyleOf(t *docs.TextRun) Style {
	if t.TextStyle == nil {
		return Style{}
	}
	s := Style{
		Bold:      t.TextStyle.Bold,
		Italic:    t.TextStyle.Italic,
		Monospace: IsMonospace(t.TextStyle.WeightedFontFamily),
	}
	if t.TextStyle.Link != nil {
		s.Link = t.TextStyle.Link.Url
	}
	return s
}

// Span is either a run of text with a single style or a paragraph element
// that is not text, such as a footnote reference or an image
type Span struct {
	Style   Style
	Text    string
	Element *docs.ParagraphElement // nil for text spans
}

// Spans merges the elements of a paragraph into spans. Text runs that are
// subscripts or superscripts are written in the linear notation x_(i) and
// x^(2) and joined to the span before them, so that a formula split across
// runs by the word processor comes out as one piece of text.
func Spans(p *docs.Paragraph) []Span {
	var spans []Span
	for _, el := range p.Elements {
		if el.TextRun == nil {
			spans = append(spans, Span{Element: el})
			continue
		}

		text, script := scriptText(el.TextRun)
		last := len(spans) - 1
		if last >= 0 && spans[last].Element == nil && (script || spans[last].Style == StyleOf(el.TextRun)) {
			spans[last].Text += text
			continue
		}
		spans = append(spans, Span{Style: StyleOf(el.TextRun), Text: text})
	}
	return spans
}

// scriptText returns the content of a text run, rewriting subscripts and
// superscripts into linear notation
func scriptText(t *docs.TextRun) (string, bool) {
	if t.TextStyle == nil {
		return t.Content, false
	}
	switch t.TextStyle.BaselineOffset {
	case "SUBSCRIPT":
		return "_(" + t.Content + ")", true
	case "SUPERSCRIPT":
		return "^(" + t.Content + ")", true
	}
	return t.Content, false
}

// IsCode determines whether a paragraph is a line of code: ordinary text
// with every run in a monospace font
func IsCode(p *docs.Paragraph) bool {
	if p.ParagraphStyle != nil && p.ParagraphStyle.NamedStyleType != "NORMAL_TEXT" {
		return false
	}
	if p.Bullet != nil || len(p.Elements) == 0 {
		return false
	}
	for _, el := range p.Elements {
		if el.TextRun == nil || el.TextRun.TextStyle == nil {
			return false
		}
		if !IsMonospace(el.TextRun.TextStyle.WeightedFontFamily) {
			return false
		}
	}
	return true
}

// ParagraphText returns the text of a paragraph without styling
func ParagraphText(p *docs.Paragraph) string {
	var sb strings.Builder
	for _, span := range Spans(p) {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Text returns the text of every paragraph in the body of a document,
// including paragraphs inside tables, one paragraph per line
func Text(doc *docs.Document) string {
	if doc.Body == nil {
		return ""
	}
	var sb strings.Builder
	writeText(&sb, doc.Body.Content)
	return sb.String()
}

func writeText(sb *strings.Builder, content []*docs.StructuralElement) {
	for _, elem := range content {
		switch {
		case elem.Paragraph != nil:
			text := ParagraphText(elem.Paragraph)
			sb.WriteString(text)
			if !strings.HasSuffix(text, "\n") {
				sb.WriteByte('\n')
			}
		case elem.Table != nil:
			for _, row := range elem.Table.TableRows {
				for _, cell := range row.TableCells {
					writeText(sb, cell.Content)
				}
			}
		}
	}
}
