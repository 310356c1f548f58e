package texdoc

import (
	"github.com/alexflint/word2tex/mathtex"
)

// FromText converts plain text. Lines that define commands with
// \newcommand are lifted out before conversion and returned as the
// definitions of the document.
func FromText(text string, conv *mathtex.Converter) (Document, []mathtex.Diagnostic) {
	if conv == nil {
		conv = &mathtex.Converter{}
	}

	body, defs := Hoist(text)
	content, diags := conv.Convert(body)
	return Document{
		Definitions: defs.Lines(),
		Content:     defs.Rename(content),
	}, diags
}
