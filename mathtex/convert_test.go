package mathtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cup = SubstitutionMap{{Key: "∪", Value: `\cup`}}

func TestConvert(t *testing.T) {
	cases := []struct {
		name string
		in   string
		subs SubstitutionMap
		want string
	}{
		{"power bracket", "i(D_1^((1)) )=2", nil, `$i(D\_1^{(1)} )=2$`},
		{"accent", "(x+y)" + tilde, nil, `$\widetilde{x+y}$`},
		{"formula in sentence", "Множество A_1 ∪ B_2 - замкнуто", cup, `Множество $A\_1 \cup B\_2$ - замкнуто`},
		{"prose in subscript", "значение макс_(1) больше", nil, `значение $\text{макс}_{1}$ больше`},
		{"prose in superscript", "x^(макс)", nil, `$x^{\text{макс}}$`},
		{"prose only", "просто текст", cup, "просто текст"},
		{"empty", "", cup, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, diags := Convert(c.in, c.subs)
			assert.Equal(t, c.want, out)
			assert.Empty(t, diags)
		})
	}
}

func TestConvertKeepBareScripts(t *testing.T) {
	c := Converter{Substitutions: cup, KeepBareScripts: true}
	out, diags := c.Convert("Множество A_1 ∪ B_2 - замкнуто")
	assert.Equal(t, `Множество $A_1 \cup B_2$ - замкнуто`, out)
	assert.Empty(t, diags)
}

func TestConvertIdempotent(t *testing.T) {
	for _, in := range []string{
		"i(D_1^((1)) )=2",
		"(x+y)" + tilde,
		"Множество A_1 ∪ B_2 - замкнуто",
		"значение макс_(1) больше",
		"x^(макс)",
	} {
		once, _ := Convert(in, cup)
		twice, diags := Convert(once, cup)
		assert.Equal(t, once, twice, "input %q", in)
		assert.Empty(t, diags, "input %q", in)
	}
}

func TestConvertProseInScriptGroup(t *testing.T) {
	out, diags := Convert("x^(при макс_(1))", nil)
	assert.Equal(t, `$x^{\text{при макс}_{1}}$`, out)
	require.Len(t, diags, 1)
	assert.Equal(t, Info, diags[0].Severity)

	again, _ := Convert(out, nil)
	assert.Equal(t, out, again)
}

func TestConvertCurrency(t *testing.T) {
	out, diags := Convert("Цена 5$ и 10$ за штуку", nil)
	assert.Equal(t, `Цена $5\$$ и $10\$$ за штуку`, out)
	assert.Empty(t, diags)

	again, _ := Convert(out, nil)
	assert.Equal(t, out, again)
}

func TestConvertQuotes(t *testing.T) {
	out, _ := Convert("Он сказал «да»", nil)
	assert.Equal(t, "Он сказал «да»", out)

	out, _ = Convert("«x + y» дано", nil)
	assert.Equal(t, "«$x + y$» дано", out)
}

func TestConvertDiagnostics(t *testing.T) {
	_, diags := Convert("до ^(конца", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, "scripts", diags[0].Stage)
	assert.Equal(t, []int{3}, diags[0].Positions)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity:  Warning,
		Stage:     "accents",
		Message:   "unresolved accent mark",
		Positions: []int{1, 7},
	}
	assert.Equal(t, "warning: accents: unresolved accent mark at positions [1 7]", d.String())

	d.Positions = nil
	assert.Equal(t, "warning: accents: unresolved accent mark", d.String())
}
