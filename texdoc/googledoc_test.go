package texdoc

import (
	"testing"

	"github.com/alexflint/word2tex/mathtex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/docs/v1"
)

func textRun(content string, style *docs.TextStyle) *docs.ParagraphElement {
	if style == nil {
		style = &docs.TextStyle{}
	}
	return &docs.ParagraphElement{TextRun: &docs.TextRun{Content: content, TextStyle: style}}
}

func styled(style string, elements ...*docs.ParagraphElement) *docs.StructuralElement {
	return &docs.StructuralElement{Paragraph: &docs.Paragraph{
		ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: style},
		Elements:       elements,
	}}
}

func para(elements ...*docs.ParagraphElement) *docs.StructuralElement {
	return styled("NORMAL_TEXT", elements...)
}

func bullet(list string, level int64, elements ...*docs.ParagraphElement) *docs.StructuralElement {
	elem := para(elements...)
	elem.Paragraph.Bullet = &docs.Bullet{ListId: list, NestingLevel: level}
	return elem
}

func document(content ...*docs.StructuralElement) *docs.Document {
	return &docs.Document{
		Body: &docs.Body{Content: append([]*docs.StructuralElement{{SectionBreak: &docs.SectionBreak{}}}, content...)},
		Lists: map[string]docs.List{
			"bullets": {ListProperties: &docs.ListProperties{NestingLevels: []*docs.NestingLevel{
				{GlyphSymbol: "●"}, {GlyphSymbol: "○"},
			}}},
			"numbers": {ListProperties: &docs.ListProperties{NestingLevels: []*docs.NestingLevel{
				{GlyphType: "DECIMAL"}, {GlyphType: "ALPHA"},
			}}},
		},
	}
}

var converter = &mathtex.Converter{Substitutions: mathtex.SubstitutionMap{{Key: "∪", Value: `\cup`}}}

func convertDoc(t *testing.T, doc *docs.Document, opts Options) *Result {
	if opts.Converter == nil {
		opts.Converter = converter
	}
	r, err := FromGoogleDoc(doc, opts)
	require.NoError(t, err)
	return r
}

func TestFromGoogleDoc(t *testing.T) {
	mono := &docs.TextStyle{WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: "Courier New"}}
	doc := document(
		styled("TITLE", textRun("Лекция\n", nil)),
		styled("HEADING_1", textRun("Множества\n", nil)),
		para(textRun("Множество A_1 ∪ B_2 - замкнуто\n", nil)),
		bullet("bullets", 0, textRun("первый\n", nil)),
		bullet("bullets", 0, textRun("второй\n", nil)),
		para(textRun("x := 1\n", mono)),
		para(textRun("y := 2\n", mono)),
		para(
			textRun("Текст", nil),
			&docs.ParagraphElement{FootnoteReference: &docs.FootnoteReference{FootnoteId: "f1"}},
			textRun(".\n", nil),
		),
	)
	doc.Footnotes = map[string]docs.Footnote{
		"f1": {Content: []*docs.StructuralElement{para(textRun("Сноска\n", nil))}},
	}

	r := convertDoc(t, doc, Options{})
	assert.Equal(t, "Лекция", r.Document.Title)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, `\section{Множества}

Множество $A\_1 \cup B\_2$ - замкнуто

\begin{itemize}
\item первый
\item второй
\end{itemize}

\begin{verbatim}
x := 1
y := 2
\end{verbatim}

Текст\footnote{Сноска}.
`, r.Document.Content)
}

func TestFromGoogleDocNestedLists(t *testing.T) {
	doc := document(
		bullet("numbers", 0, textRun("один\n", nil)),
		bullet("numbers", 1, textRun("вложенный\n", nil)),
		bullet("numbers", 0, textRun("два\n", nil)),
		bullet("bullets", 0, textRun("точка\n", nil)),
		para(textRun("конец\n", nil)),
	)

	r := convertDoc(t, doc, Options{})
	assert.Equal(t, `\begin{enumerate}
\item один
\begin{enumerate}
\item вложенный
\end{enumerate}
\item два
\end{enumerate}

\begin{itemize}
\item точка
\end{itemize}

конец
`, r.Document.Content)
}

func TestFromGoogleDocStyles(t *testing.T) {
	mono := &docs.TextStyle{WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: "Consolas"}}
	doc := document(para(
		textRun("это ", nil),
		textRun("важно", &docs.TextStyle{Bold: true}),
		textRun(", ", nil),
		textRun("см. ", &docs.TextStyle{Italic: true}),
		textRun("ссылка", &docs.TextStyle{Link: &docs.Link{Url: "https://example.com/a%20b#c"}}),
		textRun(" и ", nil),
		textRun("a_b", mono),
		textRun("\n", nil),
	))

	r := convertDoc(t, doc, Options{})
	assert.Equal(t, `это \textbf{важно}, \emph{см.} \href{https://example.com/a\%20b\#c}{ссылка} и \texttt{a\_b}
`, r.Document.Content)
}

func TestFromGoogleDocSubscriptRuns(t *testing.T) {
	doc := document(para(
		textRun("значение x", nil),
		textRun("макс", &docs.TextStyle{BaselineOffset: "SUBSCRIPT"}),
		textRun(" больше\n", nil),
	))

	r := convertDoc(t, doc, Options{})
	assert.Equal(t, "значение $x_{\\text{макс}}$ больше\n", r.Document.Content)
}

func TestFromGoogleDocDefinitions(t *testing.T) {
	doc := document(
		para(textRun("\\newcommand{\\T1}{T_1}\n", nil)),
		para(textRun("\\T1 + x\n", nil)),
	)

	r := convertDoc(t, doc, Options{})
	assert.Equal(t, []string{`\newcommand{\Tone}{T_1}`}, r.Document.Definitions)
	assert.Equal(t, "$\\Tone + x$\n", r.Document.Content)
}

func TestFromGoogleDocImagesAndTables(t *testing.T) {
	doc := document(
		para(&docs.ParagraphElement{InlineObjectElement: &docs.InlineObjectElement{InlineObjectId: "kix.1"}}, textRun("\n", nil)),
		&docs.StructuralElement{Table: &docs.Table{Columns: 2, TableRows: []*docs.TableRow{{
			TableCells: []*docs.TableCell{
				{Content: []*docs.StructuralElement{para(textRun("a\n", nil))}},
				{Content: []*docs.StructuralElement{para(textRun("б\n", nil))}},
			},
		}}}},
	)
	doc.InlineObjects = map[string]docs.InlineObject{
		"kix.1": {InlineObjectProperties: &docs.InlineObjectProperties{
			EmbeddedObject: &docs.EmbeddedObject{ImageProperties: &docs.ImageProperties{}},
		}},
	}

	r := convertDoc(t, doc, Options{Images: map[string]string{"kix.1": "images/image1.png"}})
	assert.Equal(t, `\includegraphics[width=\linewidth]{images/image1.png}

\begin{tabular}{|l|l|}
\hline
$a$ & б \\
\hline
\end{tabular}
`, r.Document.Content)
}

func TestFromGoogleDocDiagnostics(t *testing.T) {
	doc := document(
		para(textRun("текст\n", nil)),
		para(textRun("до ^(конца\n", nil)),
	)

	r := convertDoc(t, doc, Options{})
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, 1, r.Diagnostics[0].Paragraph)
	assert.Equal(t, "scripts", r.Diagnostics[0].Stage)
}

func TestFromGoogleDocNoBody(t *testing.T) {
	_, err := FromGoogleDoc(&docs.Document{}, Options{})
	assert.ErrorIs(t, err, ErrNoBody)

	_, err = FromGoogleDoc(nil, Options{})
	assert.ErrorIs(t, err, ErrNoBody)
}
