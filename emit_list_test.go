package yamlctor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
	"go.yamlctor.dev/yamlctor/runtime"
)

const tagListSrc = `
struct tag {
  int weight;
};

/// !list
struct tag_list {
  struct tag *data;
  unsigned int count;
  unsigned int capacity;
};

struct root {
  struct tag_list tags;
};
`

func TestGenerateListGrowthAndRollback(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator()

	header, impl, err := gen.Generate("tag_list.h", tagListSrc)
	require.NoError(t, err)

	assert.Contains(t, header, "bool yaml_construct_struct_tag_list(yaml_loader_t *loader, yaml_event_t *cur, struct tag_list *out);")
	assert.Contains(t, header, "void yaml_delete_struct_tag_list(struct tag_list *value);")

	assert.Contains(t, impl, fmt.Sprintf(
		"if (!check_event_type(loader, cur, %s)) return false;", runtime.EventSequenceStart.Macro()))
	assert.Contains(t, impl, fmt.Sprintf("if (cur->type == %s) break;", runtime.EventSequenceEnd.Macro()))

	assert.Contains(t, impl, "out->count = 0;")
	assert.Contains(t, impl, "out->capacity = 16;")
	assert.Contains(t, impl, "out->capacity *= 2;")
	assert.Contains(t, impl, "YAML_LOADER_ERROR_OUT_OF_MEMORY")

	assert.Contains(t, impl, "if (!yaml_construct_struct_tag(loader, cur, &out->data[out->count])) goto fail;")
	assert.Contains(t, impl, "out->count++;")

	assert.Contains(t, impl, "fail:")
	assert.Contains(t, impl, "yaml_delete_struct_tag_list(out);")
}

func TestGenerateListDestructorFreesElements(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator()

	_, impl, err := gen.Generate("tag_list.h", tagListSrc)
	require.NoError(t, err)

	assert.Contains(t, impl, "void yaml_delete_struct_tag_list(struct tag_list *value) {")
	assert.Contains(t, impl, "for (unsigned i = 0; i < value->count; i++) {")
	assert.Contains(t, impl, "free(value->data);")
}
