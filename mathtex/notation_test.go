package mathtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScripts(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"i(D_1^((1)) )=2", "i(D_1^{(1)} )=2"},
		{"x^(2)", "x^{2}"},
		{"a_(i+1)", "a_{i+1}"},
		{"e^(x_(1)+x_(2))", "e^{x_{1}+x_{2}}"},
		{"f(x)^(n)", "f(x)^{n}"},
		{"x^{2}", "x^{2}"},
		{`a\_(b)`, `a\_(b)`},
		{"(a)(b)", "(a)(b)"},
	}
	for _, c := range cases {
		out, diags := NormalizeScripts(c.in)
		assert.Equal(t, c.want, out, "input %q", c.in)
		assert.Empty(t, diags, "input %q", c.in)
	}
}

func TestNormalizeScriptsUnmatched(t *testing.T) {
	out, diags := NormalizeScripts("x^(2 + y_(1)")
	assert.Equal(t, "x^(2 + y_{1}", out)
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, []int{1}, diags[0].Positions)
}

func TestNormalizeScriptsUnmatchedIsIdentity(t *testing.T) {
	in := "до ^(конца"
	out, diags := NormalizeScripts(in)
	assert.Equal(t, in, out)
	require.Len(t, diags, 1)
	assert.Equal(t, []int{3}, diags[0].Positions)
}
