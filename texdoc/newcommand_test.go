package texdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandPattern(t *testing.T) {
	var cmd newcommand
	if assert.True(t, newcommandPattern.Find(&cmd, `\newcommand{\foo}{bar}`)) {
		assert.Equal(t, `\foo`, cmd.Name)
		assert.Equal(t, ``, cmd.Args)
		assert.Equal(t, `bar`, cmd.Value)
	}

	if assert.True(t, newcommandPattern.Find(&cmd, `  \newcommand{\pair}[2]{(#1, #2)}`)) {
		assert.Equal(t, `\pair`, cmd.Name)
		assert.Equal(t, `[2]`, cmd.Args)
		assert.Equal(t, `(#1, #2)`, cmd.Value)
	}

	assert.False(t, newcommandPattern.Find(&cmd, `text \newcommand{\foo}{bar}`))
	assert.False(t, newcommandPattern.Find(&cmd, `\newcommand{foo}{bar}`))
}

func TestDefinitions(t *testing.T) {
	var defs Definitions
	assert.True(t, defs.Add(`\newcommand{\T1}{T_1}`))
	assert.True(t, defs.Add(`\newcommand{\T12}{T_{12}}`))
	assert.True(t, defs.Add(`\newcommand{\R}{\mathbb{R}}`))
	assert.False(t, defs.Add(`x + y`))

	assert.Equal(t, 3, defs.Len())
	assert.Equal(t, []string{
		`\newcommand{\Tone}{T_1}`,
		`\newcommand{\Tonetwo}{T_{12}}`,
		`\newcommand{\R}{\mathbb{R}}`,
	}, defs.Lines())
	assert.Equal(t, `\Tonetwo + \Tone \in \R`, defs.Rename(`\T12 + \T1 \in \R`))
}

func TestHoist(t *testing.T) {
	body, defs := Hoist("\\newcommand{\\R}{\\mathbb{R}}\r\nx ∈ \\R\n\\newcommand{\\eps}{\\varepsilon}")
	assert.Equal(t, "x ∈ \\R\n", body)
	require.Equal(t, 2, defs.Len())
	assert.Equal(t, `\newcommand{\eps}{\varepsilon}`, defs.Lines()[1])

	body, defs = Hoist("без определений")
	assert.Equal(t, "без определений", body)
	assert.Zero(t, defs.Len())
}

func TestSplitSpace(t *testing.T) {
	left, middle, right := splitSpace("  a b \n")
	assert.Equal(t, "  ", left)
	assert.Equal(t, "a b", middle)
	assert.Equal(t, " \n", right)

	left, middle, right = splitSpace("   ")
	assert.Equal(t, "   ", left)
	assert.Equal(t, "", middle)
	assert.Equal(t, "", right)
}

func TestFixLatexSymbol(t *testing.T) {
	assert.Equal(t, `\Tone`, fixLatexSymbol(`\T1`))
	assert.Equal(t, `\Ezero`, fixLatexSymbol(`\E0`))
	assert.Equal(t, `\xninenine`, fixLatexSymbol(`\x99`))
	assert.Equal(t, `\alpha`, fixLatexSymbol(`\alpha`))
}
