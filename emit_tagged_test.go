package yamlctor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
	"go.yamlctor.dev/yamlctor/runtime"
)

const shapeSrc = `
enum shape_tag {
  SHAPE_CIRCLE,
  SHAPE_POINT,
};

/// !tagged
struct shape {
  enum shape_tag which;
  union {
    int radius;
  } payload;
};

struct root {
  struct shape only;
};
`

func TestGenerateTaggedUnionDiscriminant(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator()

	header, impl, err := gen.Generate("shape.h", shapeSrc)
	require.NoError(t, err)

	assert.Contains(t, header, "bool yaml_construct_struct_shape(yaml_loader_t *loader, yaml_event_t *cur, struct shape *out);")

	assert.Contains(t, impl, "const char *tag = yaml_loader_event_tag(cur);")
	assert.Contains(t, impl, "if (!tag || tag[0] != '!' || tag[1] == '\\0')")
	assert.Contains(t, impl, "if (!convert_to_enum_shape_tag(tag + 1, &out->which))")

	assert.Contains(t, impl, "case SHAPE_CIRCLE:")
	assert.Contains(t, impl, "if (!yaml_construct_int32(loader, cur, &out->payload.radius)) goto fail;")

	assert.Contains(t, impl, "case SHAPE_POINT:")
	assert.Contains(t, impl, fmt.Sprintf(
		"if (!check_event_type(loader, cur, %s) || cur->data.scalar.length != 0) {", runtime.EventScalar.Macro()))
}
