package texdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexflint/word2tex/mathtex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultTemplate(t *testing.T) {
	tpl, err := ParseTemplate("")
	require.NoError(t, err)

	out, err := Render(tpl, Document{
		Title:       "Лекция",
		Author:      "А. Автор",
		Definitions: []string{`\newcommand{\R}{\mathbb{R}}`},
		Content:     "Пусть $x \\in \\R$.",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `\documentclass`)
	assert.Contains(t, out, `\usepackage[T2A]{fontenc}`)
	assert.Contains(t, out, "\n"+`\newcommand{\R}{\mathbb{R}}`+"\n")
	assert.Contains(t, out, `\title{Лекция}`)
	assert.Contains(t, out, `\author{А. Автор}`)
	assert.Contains(t, out, `\maketitle`)
	assert.Contains(t, out, "Пусть $x \\in \\R$.\n\\end{document}")
}

func TestRenderWithoutTitle(t *testing.T) {
	tpl, err := ParseTemplate("")
	require.NoError(t, err)

	out, err := Render(tpl, Document{Content: "x"})
	require.NoError(t, err)
	assert.NotContains(t, out, `\maketitle`)
	assert.NotContains(t, out, `\title`)
	assert.NotContains(t, out, `\author`)
}

func TestParseTemplateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte("{{.Title}}|{{.Content}}"), 0666))

	tpl, err := ParseTemplate(path)
	require.NoError(t, err)
	out, err := Render(tpl, Document{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, "T|C", out)

	_, err = ParseTemplate(filepath.Join(t.TempDir(), "missing.tex"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{{.Title"), 0666))
	_, err = ParseTemplate(path)
	assert.Error(t, err)
}

func TestFragment(t *testing.T) {
	assert.Equal(t, "x\n", Fragment(Document{Content: "x\n"}))
	assert.Equal(t, "\\newcommand{\\R}{\\mathbb{R}}\n\nx\n", Fragment(Document{
		Definitions: []string{`\newcommand{\R}{\mathbb{R}}`},
		Content:     "x\n",
	}))
}

func TestFromText(t *testing.T) {
	conv := &mathtex.Converter{Substitutions: mathtex.SubstitutionMap{{Key: "∈", Value: `\in`}}}
	doc, diags := FromText("\\newcommand{\\R}{\\mathbb{R}}\nx ∈ \\R\n", conv)
	assert.Empty(t, diags)
	assert.Equal(t, []string{`\newcommand{\R}{\mathbb{R}}`}, doc.Definitions)
	assert.Equal(t, "$x \\in \\R$\n", doc.Content)
}

func TestFromTextRenamesCommands(t *testing.T) {
	doc, _ := FromText("\\newcommand{\\T1}{T_1}\n\\T1 + x", nil)
	assert.Equal(t, []string{`\newcommand{\Tone}{T_1}`}, doc.Definitions)
	assert.Equal(t, `$\Tone + x$`, doc.Content)
}
