package texdoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/alexflint/word2tex/googledoc"
	"github.com/alexflint/word2tex/mathtex"
	"github.com/rs/zerolog"
	"google.golang.org/api/docs/v1"
)

var ErrNoBody = errors.New("document has no body")

// Diagnostic is a conversion diagnostic together with the paragraph it
// came from
type Diagnostic struct {
	Paragraph int // index among the paragraphs of the document body
	mathtex.Diagnostic
}

// Options control the conversion of a google doc
type Options struct {
	Converter *mathtex.Converter // converts the text of each paragraph
	Images    map[string]string  // image paths by inline object ID
	Log       *zerolog.Logger
}

// Result is a google doc converted to latex
type Result struct {
	Document    Document
	Diagnostics []Diagnostic
}

// FromGoogleDoc converts a google doc to latex. Headings become sectioning
// commands, bulleted paragraphs become itemize or enumerate environments,
// paragraphs in a monospace font become verbatim blocks, and all other text
// goes through the converter.
func FromGoogleDoc(doc *docs.Document, opts Options) (*Result, error) {
	if doc == nil || doc.Body == nil {
		return nil, ErrNoBody
	}

	c := latexConverter{
		doc:    doc,
		conv:   opts.Converter,
		images: opts.Images,
		log:    zerolog.Nop(),
	}
	if c.conv == nil {
		c.conv = &mathtex.Converter{}
	}
	if opts.Log != nil {
		c.log = *opts.Log
	}

	var body bytes.Buffer
	c.process(&body, doc.Body.Content)

	return &Result{
		Document: Document{
			Title:       c.defs.Rename(c.title),
			Definitions: c.defs.Lines(),
			Content:     postprocess(body.String(), &c.defs),
		},
		Diagnostics: c.diagnostics,
	}, nil
}

// postprocess trims trailing whitespace, drops runs of empty lines, and
// renames commands defined with digits in their names
func postprocess(s string, defs *Definitions) string {
	var out strings.Builder
	out.Grow(len(s))

	var emptylines int
	for _, line := range strings.Split(s, "\n") {
		// whitespace on the left is kept for verbatim blocks
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if len(line) == 0 {
			emptylines++
			if emptylines < 2 && out.Len() > 0 {
				out.WriteRune('\n')
			}
			continue
		}
		emptylines = 0
		out.WriteString(defs.Rename(line) + "\n")
	}
	return strings.TrimRight(out.String(), "\n") + "\n"
}

var sectionCommands = map[string]string{
	"SUBTITLE":  `\section*`,
	"HEADING_1": `\section`,
	"HEADING_2": `\subsection`,
	"HEADING_3": `\subsubsection`,
	"HEADING_4": `\paragraph`,
	"HEADING_5": `\subparagraph`,
	"HEADING_6": `\subparagraph`,
}

type latexConverter struct {
	doc         *docs.Document
	conv        *mathtex.Converter
	images      map[string]string
	log         zerolog.Logger
	defs        Definitions
	title       string
	code        bytes.Buffer // lines of a verbatim block not yet written
	lists       []string     // open list environments, innermost last
	paragraph   int          // index of the current paragraph
	diagnostics []Diagnostic
}

func (c *latexConverter) process(out *bytes.Buffer, content []*docs.StructuralElement) {
	for _, elem := range content {
		if elem.Paragraph == nil {
			c.flushCode(out)
			c.closeLists(out, 0)
		}

		switch {
		case elem.Table != nil:
			c.processTable(out, elem.Table)
		case elem.TableOfContents != nil:
			out.WriteString("\\tableofcontents\n\n")
		case elem.SectionBreak != nil:
			// every document body begins with one
			c.log.Debug().Msg("ignoring section break")
		case elem.Paragraph != nil:
			c.processParagraph(out, elem.Paragraph)
			c.paragraph++
		default:
			c.log.Warn().Msg("encountered a body element of unknown type")
		}
	}

	c.flushCode(out)
	c.closeLists(out, 0)
}

// flushCode writes any lines stored in c.code to a verbatim block
func (c *latexConverter) flushCode(out *bytes.Buffer) {
	if c.code.Len() == 0 {
		return
	}

	out.WriteString("\\begin{verbatim}\n")
	c.code.WriteTo(out)
	if !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
		out.WriteByte('\n')
	}
	out.WriteString("\\end{verbatim}\n\n")
	c.code.Reset()
}

func (c *latexConverter) processParagraph(out *bytes.Buffer, p *docs.Paragraph) {
	if googledoc.IsCode(p) {
		c.closeLists(out, 0)
		for _, el := range p.Elements {
			c.code.WriteString(el.TextRun.Content)
		}
		return
	}

	// if not a code block then flush any buffered code block
	c.flushCode(out)

	var style string
	if p.ParagraphStyle != nil {
		style = p.ParagraphStyle.NamedStyleType
	}

	if style == "TITLE" && c.title == "" {
		c.closeLists(out, 0)
		var title bytes.Buffer
		c.writeSpans(&title, p)
		c.title = strings.TrimSpace(title.String())
		return
	}

	command, isHeading := sectionCommands[style]
	if style == "TITLE" {
		command, isHeading = `\section*`, true
	}
	if isHeading {
		if p.Bullet != nil {
			c.log.Warn().Msg("found a heading that is part of a bulleted list, ignoring the bullet")
		}
		c.closeLists(out, 0)

		var heading bytes.Buffer
		c.writeSpans(&heading, p)
		fmt.Fprintf(out, "%s{%s}\n\n", command, strings.TrimSpace(heading.String()))
		return
	}

	if p.Bullet == nil {
		c.closeLists(out, 0)
		c.writeSpans(out, p)
		out.WriteString("\n\n")
		return
	}

	c.openList(out, p.Bullet)
	var item bytes.Buffer
	c.writeSpans(&item, p)
	fmt.Fprintf(out, "\\item %s\n", strings.TrimSpace(item.String()))
}

// openList opens or closes list environments so that the next item is at
// the nesting level of the bullet
func (c *latexConverter) openList(out *bytes.Buffer, b *docs.Bullet) {
	level := int(b.NestingLevel)

	// if there is no fixed glyph symbol then this is an ordered list
	kind := "itemize"
	if list, ok := c.doc.Lists[b.ListId]; ok && list.ListProperties != nil {
		levels := list.ListProperties.NestingLevels
		if level < len(levels) && levels[level] != nil && levels[level].GlyphSymbol == "" {
			kind = "enumerate"
		}
	}

	c.closeLists(out, level+1)
	if len(c.lists) == level+1 && c.lists[level] != kind {
		c.closeLists(out, level)
	}
	for len(c.lists) < level+1 {
		fmt.Fprintf(out, "\\begin{%s}\n", kind)
		c.lists = append(c.lists, kind)
	}
}

// closeLists closes list environments until depth remain open
func (c *latexConverter) closeLists(out *bytes.Buffer, depth int) {
	if len(c.lists) <= depth {
		return
	}
	for len(c.lists) > depth {
		fmt.Fprintf(out, "\\end{%s}\n", c.lists[len(c.lists)-1])
		c.lists = c.lists[:len(c.lists)-1]
	}
	if depth == 0 {
		out.WriteString("\n")
	}
}

func (c *latexConverter) writeSpans(out *bytes.Buffer, p *docs.Paragraph) {
	for _, span := range googledoc.Spans(p) {
		if span.Element != nil {
			c.processElement(out, span.Element)
			continue
		}
		c.writeText(out, span)
	}
}

var quotes = strings.NewReplacer(`“`, "``", `”`, "''")

func (c *latexConverter) writeText(out *bytes.Buffer, span googledoc.Span) {
	lines := strings.Split(quotes.Replace(span.Text), "\n")
	for i, line := range lines {
		// lines that begin \newcommand are moved to the preamble
		if c.defs.Add(line) {
			continue
		}

		left, middle, right := splitSpace(line)
		out.WriteString(left)
		if len(middle) > 0 {
			c.writeStyled(out, span.Style, middle)
		}
		out.WriteString(right)

		if i+1 < len(lines) {
			out.WriteString("\n")
		}
	}
}

var texttt = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`^`, `\^{}`,
	`_`, `\_`,
	`~`, `\~{}`,
)

var urlEscapes = strings.NewReplacer(`%`, `\%`, `#`, `\#`)

func (c *latexConverter) writeStyled(out *bytes.Buffer, style googledoc.Style, text string) {
	var s string
	if style.Monospace {
		s = `\texttt{` + texttt.Replace(text) + `}`
	} else {
		s = c.convert(text)
	}
	if style.Bold {
		s = `\textbf{` + s + `}`
	}
	if style.Italic {
		s = `\emph{` + s + `}`
	}
	if style.Link != "" {
		s = `\href{` + urlEscapes.Replace(style.Link) + `}{` + s + `}`
	}
	out.WriteString(s)
}

// convert runs text through the converter, recording its diagnostics
// against the current paragraph
func (c *latexConverter) convert(text string) string {
	out, diags := c.conv.Convert(text)
	for _, d := range diags {
		c.diagnostics = append(c.diagnostics, Diagnostic{Paragraph: c.paragraph, Diagnostic: d})
	}
	return out
}

func (c *latexConverter) processElement(out *bytes.Buffer, el *docs.ParagraphElement) {
	switch {
	case el.FootnoteReference != nil:
		c.processFootnote(out, el.FootnoteReference.FootnoteId)
	case el.InlineObjectElement != nil:
		c.processInlineObject(out, el.InlineObjectElement)
	case el.HorizontalRule != nil:
		out.WriteString("\n\\noindent\\rule{\\linewidth}{0.4pt}\n")
	case el.PageBreak != nil:
		out.WriteString("\\newpage\n")
	case el.Equation != nil:
		c.log.Warn().Int("paragraph", c.paragraph).Msg("ignoring equation")
	case el.ColumnBreak != nil:
		c.log.Warn().Int("paragraph", c.paragraph).Msg("ignoring column break")
	case el.AutoText != nil:
		c.log.Warn().Int("paragraph", c.paragraph).Msg("ignoring auto text")
	default:
		c.log.Warn().Int("paragraph", c.paragraph).Msg("encountered a paragraph element of unknown type")
	}
}

// processFootnote writes the content of a footnote inline, which is where
// latex expects it
func (c *latexConverter) processFootnote(out *bytes.Buffer, id string) {
	footnote, ok := c.doc.Footnotes[id]
	if !ok {
		c.log.Warn().Str("footnote", id).Msg("no content found for footnote referenced in document")
		return
	}

	var paragraphs []string
	for _, elem := range footnote.Content {
		if elem.Paragraph == nil {
			continue
		}
		var buf bytes.Buffer
		c.writeSpans(&buf, elem.Paragraph)
		if text := strings.TrimSpace(buf.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	fmt.Fprintf(out, "\\footnote{%s}", strings.Join(paragraphs, "\n\n"))
}

func (c *latexConverter) processInlineObject(out *bytes.Buffer, ref *docs.InlineObjectElement) {
	id := ref.InlineObjectId
	obj, ok := c.doc.InlineObjects[id]
	if !ok || obj.InlineObjectProperties == nil || obj.InlineObjectProperties.EmbeddedObject == nil {
		c.log.Warn().Str("object", id).Msg("could not find inline object")
		return
	}

	emb := obj.InlineObjectProperties.EmbeddedObject
	switch {
	case emb.ImageProperties != nil || emb.EmbeddedDrawingProperties != nil:
		path, ok := c.images[id]
		if !ok {
			c.log.Warn().Str("object", id).Msg("no image file for inline object, ignoring")
			return
		}
		fmt.Fprintf(out, "\\includegraphics[width=\\linewidth]{%s}", path)
	case emb.LinkedContentReference != nil:
		c.log.Warn().Str("object", id).Msg("ignoring linked spreadsheet / chart")
	}
}

// processTable writes a table as a tabular environment. Each cell holds a
// single line of text.
func (c *latexConverter) processTable(out *bytes.Buffer, t *docs.Table) {
	cols := int(t.Columns)
	if cols == 0 && len(t.TableRows) > 0 {
		cols = len(t.TableRows[0].TableCells)
	}

	fmt.Fprintf(out, "\\begin{tabular}{|%s}\n\\hline\n", strings.Repeat("l|", cols))
	for _, row := range t.TableRows {
		for j, cell := range row.TableCells {
			if j > 0 {
				out.WriteString(" & ")
			}

			var buf bytes.Buffer
			for _, e := range cell.Content {
				if e.Paragraph == nil {
					c.log.Warn().Msg("table cell contained a non-paragraph structural element, ignoring")
					continue
				}
				buf.WriteByte(' ')
				c.writeSpans(&buf, e.Paragraph)
				c.paragraph++
			}
			out.WriteString(strings.Join(strings.Fields(buf.String()), " "))
		}
		out.WriteString(" \\\\\n\\hline\n")
	}
	out.WriteString("\\end{tabular}\n\n")
}
