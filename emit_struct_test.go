package yamlctor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
	"go.yamlctor.dev/yamlctor/runtime"
)

const widgetSrc = `
struct widget {
  int id;

  /// !optional_string
  char *label;

  /// !default
  bool enabled;
};

struct root {
  struct widget only;
};
`

func TestGenerateStructFieldDispatch(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator()

	header, impl, err := gen.Generate("widget.h", widgetSrc)
	require.NoError(t, err)

	assert.Contains(t, header, "bool yaml_construct_struct_widget(yaml_loader_t *loader, yaml_event_t *cur, struct widget *out);")
	assert.Contains(t, header, "void yaml_delete_struct_widget(struct widget *value);")

	assert.Contains(t, impl, fmt.Sprintf("if (!check_event_type(loader, cur, %s)) return false;", runtime.EventMappingStart.Macro()))
	assert.Contains(t, impl, fmt.Sprintf("if (cur->type == %s) break;", runtime.EventMappingEnd.Macro()))
	assert.Contains(t, impl, fmt.Sprintf("if (!check_event_type(loader, cur, %s)) goto fail;", runtime.EventScalar.Macro()))

	assert.Contains(t, impl, "uint16_t node;")
	assert.Contains(t, impl, fmt.Sprintf(
		"%s(struct_widget_control, (const char *)cur->data.scalar.value,", runtime.WalkMacro))

	assert.Contains(t, impl, "out->label = NULL;")
	assert.Contains(t, impl, "out->enabled = false;")

	assert.Contains(t, impl, "YAML_LOADER_ERROR_DUPLICATE_KEY")
	assert.Contains(t, impl, "YAML_LOADER_ERROR_UNKNOWN_KEY")
	assert.Contains(t, impl, "yaml_loader_set_error(loader, YAML_LOADER_ERROR_MISSING_KEY, struct_widget_names[0]);")
}

func TestGenerateStructRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	gen := yamlctor.NewGenerator()

	_, impl, err := gen.Generate("widget.h", widgetSrc)
	require.NoError(t, err)

	assert.Contains(t, impl, "fail:")
	assert.Contains(t, impl, "if (found[1]) if (out->label) free(out->label);")
}
