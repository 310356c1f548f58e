// Package mathtex converts word-processor text with embedded mathematics
// into LaTeX.
//
// The input is prose (Cyrillic) interleaved with formulas written with
// Unicode math glyphs, parenthesized superscripts such as x^(2) and combining
// accents over parenthesized expressions. The output is LaTeX source in
// which every formula is in inline math mode, prose inside formulas is in
// \text{...}, and glyphs are replaced with commands from a SubstitutionMap.
//
// Conversion never fails. Constructs that cannot be converted are left in
// place and reported as diagnostics.
package mathtex

// Converter converts text using a fixed substitution map. A Converter is
// safe for concurrent use.
type Converter struct {
	// Substitutions maps glyphs to LaTeX commands
	Substitutions SubstitutionMap
	// KeepBareScripts leaves ^ and _ unescaped even when they are not
	// followed by a bracket, for text in word-processor linear notation
	// such as A_1
	KeepBareScripts bool
}

// Convert converts text using substitutions, with default options
func Convert(text string, substitutions SubstitutionMap) (string, []Diagnostic) {
	c := Converter{Substitutions: substitutions}
	return c.Convert(text)
}

// Convert runs the passes in order, returning the converted text and the
// diagnostics from every pass
func (c *Converter) Convert(text string) (string, []Diagnostic) {
	var diagnostics []Diagnostic

	// escaping comes first so that commands inserted by later passes are
	// never escaped
	text = EscapeSpecial(text, c.KeepBareScripts)

	text, diags := NormalizeAccents(text)
	diagnostics = append(diagnostics, diags...)

	text, diags = NormalizeScripts(text)
	diagnostics = append(diagnostics, diags...)

	// prose is wrapped in \text before formulas are delimited, since the
	// delimiters would otherwise separate a ^ or _ from the prose it touches
	text, diags = Rewrite(SplitScripts(text))
	diagnostics = append(diagnostics, diags...)

	text = WrapFormulas(text)

	text = Substitute(text, c.Substitutions)

	return text, diagnostics
}
