package yamltest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.yamlctor.dev/yamlctor/yamltest"
)

func TestJoinLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input []string
		want  string
	}{
		"empty input": {nil, ""},
		"single":      {[]string{"hello"}, "hello"},
		"three lines": {[]string{"a", "b", "c"}, "a\nb\nc"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, yamltest.JoinLF(tc.input...))
		})
	}
}

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty string": {"", ""},
		"single line no indent": {"hello", "hello"},
		"multi-line common indent": {
			"\n    line1\n    line2\n    line3",
			"line1\nline2\nline3",
		},
		"already dedented": {
			"key: value\nnested:\n  child: data",
			"key: value\nnested:\n  child: data",
		},
		"whitespace-only line collapses": {
			"\n    line1\n    \n    line3",
			"line1\n\nline3",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, yamltest.Input(tc.input))
		})
	}
}
