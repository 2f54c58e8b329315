package cparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor/cast"
	"go.yamlctor.dev/yamlctor/cast/cparse"
)

func TestParseStruct(t *testing.T) {
	t.Parallel()

	src := `
struct point {
  int x;
  int y;
};
`

	tu, err := cparse.Parse("point.h", src)
	require.NoError(t, err)
	require.Len(t, tu.Children(), 1)

	s := tu.Children()[0]
	assert.Equal(t, cast.KindStructDecl, s.Kind())
	assert.Equal(t, "point", s.Spelling())
	require.Len(t, s.Children(), 2)
	assert.Equal(t, "x", s.Children()[0].Spelling())
	assert.Equal(t, cast.TypeInteger, s.Children()[0].Type().Kind())
}

func TestParseDocComment(t *testing.T) {
	t.Parallel()

	src := `
struct widget {
  /// !optional_string
  char *label;
};
`

	tu, err := cparse.Parse("widget.h", src)
	require.NoError(t, err)

	field := tu.Children()[0].Children()[0]
	assert.Equal(t, "!optional_string", field.RawComment())
}

func TestParseOrdinaryCommentIsNotDoc(t *testing.T) {
	t.Parallel()

	src := `
struct widget {
  // plain comment, not a doc comment
  int count;
};
`

	tu, err := cparse.Parse("widget.h", src)
	require.NoError(t, err)

	field := tu.Children()[0].Children()[0]
	assert.Equal(t, "", field.RawComment())
}

func TestParsePointerField(t *testing.T) {
	t.Parallel()

	src := `
struct node {
  struct node *next;
};
`

	tu, err := cparse.Parse("node.h", src)
	require.NoError(t, err)

	field := tu.Children()[0].Children()[0]
	require.Equal(t, cast.TypePointer, field.Type().Kind())

	pointee, ok := field.Type().Pointee()
	require.True(t, ok)
	assert.Equal(t, "struct node", pointee.Spelling())
}

func TestParseEnum(t *testing.T) {
	t.Parallel()

	src := `
enum color {
  COLOR_RED,
  COLOR_GREEN,
  COLOR_BLUE = 2,
};
`

	tu, err := cparse.Parse("color.h", src)
	require.NoError(t, err)

	e := tu.Children()[0]
	assert.Equal(t, cast.KindEnumDecl, e.Kind())
	require.Len(t, e.Children(), 3)
	assert.Equal(t, "COLOR_BLUE", e.Children()[2].Spelling())
}

func TestParseTypedefStruct(t *testing.T) {
	t.Parallel()

	src := `
typedef struct {
  int value;
} counter_t;
`

	tu, err := cparse.Parse("counter.h", src)
	require.NoError(t, err)

	td := tu.Children()[0]
	assert.Equal(t, cast.KindTypedefDecl, td.Kind())
	assert.Equal(t, "counter_t", td.Spelling())
	require.Len(t, td.Children(), 1)
	assert.Equal(t, cast.KindStructDecl, td.Children()[0].Kind())
}

func TestParseAnonymousUnionField(t *testing.T) {
	t.Parallel()

	src := `
enum tag { TAG_A, TAG_B };

struct value {
  enum tag which;
  union {
    int as_int;
    float as_float;
  } payload;
};
`

	tu, err := cparse.Parse("value.h", src)
	require.NoError(t, err)
	require.Len(t, tu.Children(), 2)

	s := tu.Children()[1]
	require.Len(t, s.Children(), 2)

	payload := s.Children()[1]
	assert.Equal(t, "payload", payload.Spelling())
	require.Len(t, payload.Children(), 2)
	assert.Equal(t, "as_int", payload.Children()[0].Spelling())
}

func TestParseFunctionPrototype(t *testing.T) {
	t.Parallel()

	src := `bool yaml_construct_thing(yaml_loader_t *loader, yaml_event_t *cur, struct thing *out);`

	tu, err := cparse.Parse("proto.h", src)
	require.NoError(t, err)
	require.Len(t, tu.Children(), 1)

	fn := tu.Children()[0]
	assert.Equal(t, cast.KindFunctionDecl, fn.Kind())
	assert.Equal(t, "yaml_construct_thing", fn.Spelling())
}

func TestParseStdintFields(t *testing.T) {
	t.Parallel()

	src := `
struct sample {
  uint32_t id;
  int64_t offset;
};
`

	tu, err := cparse.Parse("sample.h", src)
	require.NoError(t, err)

	s := tu.Children()[0]
	assert.Equal(t, cast.TypeInteger, s.Children()[0].Type().Kind())
	assert.Equal(t, "uint32_t", s.Children()[0].Type().Spelling())
}

func TestParseUnterminatedCommentIsError(t *testing.T) {
	t.Parallel()

	_, err := cparse.Parse("bad.h", "struct s { /* unterminated\n int x; };")
	require.Error(t, err)
}
