package mathtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeSpecial(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`A_1`, `A\_1`},
		{`x^2`, `x\textasciicircum{}2`},
		{`x^(2)`, `x^(2)`},
		{`x_{i}`, `x_{i}`},
		{`a \ b`, `a \textbackslash{} b`},
		{`trailing \`, `trailing \textbackslash{}`},
		{`\alpha + \beta`, `\alpha + \beta`},
		{`\_ and \$`, `\_ and \$`},
		{`цена 5$`, `цена 5\$`},
		{`$x_1$ и y_2`, `$x_1$ и y\_2`},
		{`$$`, `\$\$`},
		{`5$ и 10$`, `5\$ и 10\$`},
		{`$5 и 10$`, `\$5 и 10\$`},
		{`$ x$`, `\$ x\$`},
		{`$x$5`, `\$x\$5`},
		{"$x\ny$", "\\$x\ny\\$"},
		{`$f(при)$`, `$f(при)$`},
		{`$x^{\text{макс}}$`, `$x^{\text{макс}}$`},
		{`plain text`, `plain text`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EscapeSpecial(c.in, false), "input %q", c.in)
	}
}

func TestEscapeSpecialKeepBareScripts(t *testing.T) {
	assert.Equal(t, `A_1 + x^2`, EscapeSpecial(`A_1 + x^2`, true))
	assert.Equal(t, `\textbackslash{}1`, EscapeSpecial(`\1`, true))
}

func TestEscapeSpecialIdempotent(t *testing.T) {
	for _, s := range []string{`A_1 \ x^2 $5`, `a\\b`, `x^(1)_y`} {
		once := EscapeSpecial(s, false)
		assert.Equal(t, once, EscapeSpecial(once, false), "input %q", s)
	}
}
