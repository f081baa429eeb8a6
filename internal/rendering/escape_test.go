package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Led a team of five", "Led a team of five"},
		{"backslash", `C:\tmp`, `C:\textbackslash{}tmp`},
		{"braces", "map{k}", `map\{k\}`},
		{"dollar", "cut $2M", `cut \$2M`},
		{"ampersand", "R&D", `R\&D`},
		{"percent", "99.9%", `99.9\%`},
		{"hash", "C#", `C\#`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"underscore", "snake_case", `snake\_case`},
		{"tilde", "~5 years", `\textasciitilde{}5 years`},
		{"newline", "line one\nline two", `line one\newline{}line two`},
		{"crlf", "a\r\nb", `a\newline{}b`},
		{"unicode", "résumé α β", "résumé α β"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEscapeLaTeX_MixedContent(t *testing.T) {
	result := EscapeLaTeX("Built system handling $1M+ requests/day with 99.9% uptime")
	assert.Contains(t, result, `\$1M`)
	assert.Contains(t, result, `99.9\%`)
	assert.Contains(t, result, "requests/day")
}
