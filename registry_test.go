package yamlctor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
)

func TestSymbolName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "struct_foo", yamlctor.SymbolName("struct foo"))
	assert.Equal(t, "enum_color", yamlctor.SymbolName("enum color"))
	assert.Equal(t, "widget_id", yamlctor.SymbolName("widget_id"))
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	t.Parallel()

	reg := yamlctor.NewRegistry()

	desc := &yamlctor.TypeDescriptor{Spelling: "struct thing", Kind: yamlctor.KindRecord}
	require.NoError(t, reg.Register(desc))

	got, ok := reg.Lookup("struct thing")
	require.True(t, ok)
	assert.Same(t, desc, got)
}

func TestRegistryRegisterDuplicateFails(t *testing.T) {
	t.Parallel()

	reg := yamlctor.NewRegistry()

	require.NoError(t, reg.Register(&yamlctor.TypeDescriptor{Spelling: "struct thing"}))

	err := reg.Register(&yamlctor.TypeDescriptor{Spelling: "struct thing"})
	require.ErrorIs(t, err, yamlctor.ErrRegistryDuplicate)
}

func TestRegistryAllPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	reg := yamlctor.NewRegistry()
	seeded := len(reg.All())

	require.NoError(t, reg.Register(&yamlctor.TypeDescriptor{Spelling: "struct a"}))
	require.NoError(t, reg.Register(&yamlctor.TypeDescriptor{Spelling: "struct b"}))

	all := reg.All()
	require.Len(t, all, seeded+2)
	assert.Equal(t, "struct a", all[seeded].Spelling)
	assert.Equal(t, "struct b", all[seeded+1].Spelling)
}

func TestRegistryConstructorDestructorNames(t *testing.T) {
	t.Parallel()

	reg := yamlctor.NewRegistry()

	assert.False(t, reg.HasConstructor("yaml_construct_struct_thing"))
	reg.RecordConstructorName("yaml_construct_struct_thing")
	assert.True(t, reg.HasConstructor("yaml_construct_struct_thing"))

	assert.False(t, reg.HasDestructor("yaml_delete_struct_thing"))
	reg.RecordDestructorName("yaml_delete_struct_thing")
	assert.True(t, reg.HasDestructor("yaml_delete_struct_thing"))
}

func TestNewRegistrySeedsPrimitives(t *testing.T) {
	t.Parallel()

	reg := yamlctor.NewRegistry()

	desc, ok := reg.Lookup("int")
	require.True(t, ok)
	assert.Equal(t, yamlctor.KindPrimitive, desc.Kind)
	assert.True(t, desc.IsPredefined)

	_, ok = reg.Lookup("long double")
	require.True(t, ok)
}
