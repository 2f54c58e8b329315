package yamlctor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
)

func TestDFAInsertFind(t *testing.T) {
	t.Parallel()

	d := yamlctor.New()

	require.NoError(t, d.Insert("foo", 1))
	require.NoError(t, d.Insert("bar", 2))
	require.NoError(t, d.Insert("foobar", 3))

	got, ok := d.Find("foo")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	got, ok = d.Find("bar")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	got, ok = d.Find("foobar")
	require.True(t, ok)
	assert.Equal(t, 3, got)

	_, ok = d.Find("fo")
	assert.False(t, ok)

	_, ok = d.Find("food")
	assert.False(t, ok)
}

func TestDFAInsertDuplicate(t *testing.T) {
	t.Parallel()

	d := yamlctor.New()

	require.NoError(t, d.Insert("key", 1))
	err := d.Insert("key", 2)
	require.ErrorIs(t, err, yamlctor.ErrDuplicateKey)
}

func TestDFANodeID(t *testing.T) {
	t.Parallel()

	d := yamlctor.New()

	require.NoError(t, d.Insert("a", 1))
	require.NoError(t, d.Insert("ab", 2))

	idA, ok := d.NodeID("a")
	require.True(t, ok)

	idAB, ok := d.NodeID("ab")
	require.True(t, ok)

	assert.NotEqual(t, idA, idAB)

	_, ok = d.NodeID("z")
	assert.False(t, ok)
}

func TestDFAEmitTablePadding(t *testing.T) {
	t.Parallel()

	d := yamlctor.New()

	require.NoError(t, d.Insert("b", 1))
	require.NoError(t, d.Insert("d", 2))

	table := d.EmitTable()

	assert.Equal(t, byte('b'), table.Min)
	assert.Equal(t, byte('d'), table.Max)
	assert.Equal(t, int('d')-int('b')+3, table.Width)

	for _, row := range table.Rows {
		assert.Len(t, row, table.Width)
	}
}

func TestDFAEmitTableEmpty(t *testing.T) {
	t.Parallel()

	d := yamlctor.New()

	table := d.EmitTable()
	assert.Equal(t, 0, table.Width)
}

func TestDFACapacity(t *testing.T) {
	t.Parallel()

	d := yamlctor.New()

	long := make([]byte, yamlctor.MaxNodes+1)
	for i := range long {
		long[i] = byte('a' + i%26)
	}

	err := d.Insert(string(long), 1)
	require.ErrorIs(t, err, yamlctor.ErrDFACapacity)

	// A failed insert must not leave partial nodes behind.
	assert.Equal(t, 1, d.NodeCount())
}
