package yamlctor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
)

const worked = `
enum value_tag {
  VALUE_INT,
  VALUE_TEXT,
  VALUE_NONE,
};

/// !tagged
struct value {
  enum value_tag which;
  union {
    int as_int;
    char *as_text;
  } payload;
};

/// !list
struct value_list {
  struct value *data;
  unsigned int count;
  unsigned int capacity;
};

struct root {
  /// !optional_string
  char *title;
  struct value_list items;
};
`

func TestGenerateWorkedExample(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator(
		yamlctor.WithRootName("struct root"),
		yamlctor.WithInputHeaderName("worked.h"),
	)

	header, impl, err := gen.Generate("worked.h", worked)
	require.NoError(t, err)

	assert.Contains(t, header, "yaml_load_struct_root")
	assert.Contains(t, header, "yaml_free_struct_root")
	assert.Contains(t, header, "#include \"worked.h\"")

	assert.Contains(t, impl, "yaml_construct_struct_value")
	assert.Contains(t, impl, "yaml_construct_struct_value_list")
	assert.Contains(t, impl, "convert_to_enum_value_tag")
	assert.Contains(t, impl, "YAML_SEQUENCE_START_EVENT")
	assert.Contains(t, impl, "YAML_LOADER_ERROR_DUPLICATE_KEY")
	assert.Contains(t, impl, "setlocale(LC_NUMERIC")
}

func TestGenerateUnknownRootFails(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator(yamlctor.WithRootName("struct nonexistent"))

	_, _, err := gen.Generate("worked.h", worked)
	require.ErrorIs(t, err, yamlctor.ErrUnknownRootType)
}

func TestGenerateRejectsStructuralViolation(t *testing.T) {
	t.Parallel()

	src := `
union bad {
  int as_int;
};
`

	gen := yamlctor.NewGenerator()

	_, _, err := gen.Generate("bad.h", src)
	require.ErrorIs(t, err, yamlctor.ErrStructuralViolation)
}

func TestGenerateRejectsSyntaxError(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator()

	_, _, err := gen.Generate("bad.h", "struct {")
	require.Error(t, err)
}
