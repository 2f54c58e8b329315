package yamlctor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
)

func TestParseAnnotationNone(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"empty":          "",
		"plain prose":    "the number of widgets",
		"whitespace only": "   \n\t  ",
	}

	for name, comment := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ann, err := yamlctor.ParseAnnotation(comment)
			require.NoError(t, err)
			assert.Equal(t, yamlctor.KeywordNone, ann.Keyword)
		})
	}
}

func TestParseAnnotationKeywords(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		comment string
		want    yamlctor.Keyword
	}{
		"string":          {"!string", yamlctor.KeywordString},
		"list":            {"!list", yamlctor.KeywordList},
		"tagged":          {"!tagged", yamlctor.KeywordTagged},
		"optional":        {"!optional", yamlctor.KeywordOptional},
		"optional_string": {"!optional_string", yamlctor.KeywordOptionalString},
		"ignored":         {"!ignored", yamlctor.KeywordIgnored},
		"custom":          {"!custom", yamlctor.KeywordCustom},
		"default":         {"!default", yamlctor.KeywordDefault},
		"with trailing prose": {"!optional the field is nullable", yamlctor.KeywordOptional},
		"leading whitespace":  {"  !list\n", yamlctor.KeywordList},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ann, err := yamlctor.ParseAnnotation(tc.comment)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ann.Keyword)
		})
	}
}

func TestParseAnnotationOptionalDoesNotSwallowOptionalString(t *testing.T) {
	t.Parallel()

	ann, err := yamlctor.ParseAnnotation("!optional_string")
	require.NoError(t, err)
	assert.Equal(t, yamlctor.KeywordOptionalString, ann.Keyword)
}

func TestParseAnnotationReprRequiresParam(t *testing.T) {
	t.Parallel()

	_, err := yamlctor.ParseAnnotation("!repr")
	require.ErrorIs(t, err, yamlctor.ErrAnnotationMissingParam)
}

func TestParseAnnotationReprParam(t *testing.T) {
	t.Parallel()

	ann, err := yamlctor.ParseAnnotation("!repr on-disk-name")
	require.NoError(t, err)
	assert.Equal(t, yamlctor.KeywordRepr, ann.Keyword)
	assert.Equal(t, "on-disk-name", ann.Param)
}

func TestParseAnnotationUnknownKeyword(t *testing.T) {
	t.Parallel()

	_, err := yamlctor.ParseAnnotation("!listing extra words")
	require.ErrorIs(t, err, yamlctor.ErrUnknownAnnotation)
}

func TestParseAnnotationBoundaryNotPrefix(t *testing.T) {
	t.Parallel()

	// "!listing" must not be treated as "!list" with a trailing "ing".
	_, err := yamlctor.ParseAnnotation("!listing")
	require.ErrorIs(t, err, yamlctor.ErrUnknownAnnotation)
}
