package levenshtein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "", b: "json", want: 4},
		{a: "yaml", b: "", want: 4},
		{a: "json", b: "json", want: 0},
		{a: "jsn", b: "json", want: 1},
		{a: "kitten", b: "sitting", want: 3},
		{a: "typescriptreac", b: "typescriptreact", want: 1},
		{a: "héllo", b: "hello", want: 1},
	}

	var ctx Context

	for _, tc := range tests {
		assert.Equal(t, tc.want, ctx.Distance(tc.a, tc.b), "%q -> %q", tc.a, tc.b)
		assert.Equal(t, tc.want, ctx.Distance(tc.b, tc.a), "%q -> %q", tc.b, tc.a)
	}
}

func TestClosest(t *testing.T) {
	t.Parallel()

	formats := []string{"text", "diff", "json", "yaml"}

	match, ok := Closest("jsn", formats, DefaultMaxDistance)
	assert.True(t, ok)
	assert.Equal(t, "json", match)

	match, ok = Closest("YAML", formats, DefaultMaxDistance)
	assert.True(t, ok)
	assert.Equal(t, "yaml", match)

	_, ok = Closest("markdown", formats, DefaultMaxDistance)
	assert.False(t, ok)

	_, ok = Closest("json", nil, DefaultMaxDistance)
	assert.False(t, ok)
}

func TestSuggestion(t *testing.T) {
	t.Parallel()

	langs := []string{"typescriptreact", "javascriptreact"}

	assert.Equal(t, ` (did you mean "typescriptreact"?)`, Suggestion("typescriptreac", langs))
	assert.Empty(t, Suggestion("typescriptreact", langs))
	assert.Empty(t, Suggestion("css", langs))
}
