package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor/fixture"
	"go.yamlctor.dev/yamlctor/yamltest"
)

func TestDocumentKeys(t *testing.T) {
	t.Parallel()

	doc, err := fixture.Parse([]byte(yamltest.Input(`
		name: widget
		count: 3
		active: true
	`)))
	require.NoError(t, err)

	keys, err := doc.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count", "active"}, keys)
}

func TestDocumentKeysNotMapping(t *testing.T) {
	t.Parallel()

	doc, err := fixture.Parse([]byte("- a\n- b\n"))
	require.NoError(t, err)

	_, err = doc.Keys()
	require.ErrorIs(t, err, fixture.ErrNotMapping)
}

func TestDocumentSequenceLength(t *testing.T) {
	t.Parallel()

	doc, err := fixture.Parse([]byte(yamltest.Input(`
		widgets:
		  - one
		  - two
		  - three
	`)))
	require.NoError(t, err)

	n, err := doc.SequenceLength("widgets")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDocumentSequenceLengthNested(t *testing.T) {
	t.Parallel()

	doc, err := fixture.Parse([]byte(yamltest.Input(`
		outer:
		  inner:
		    - x
		    - y
	`)))
	require.NoError(t, err)

	n, err := doc.SequenceLength("outer.inner")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDocumentSequenceLengthMissingKey(t *testing.T) {
	t.Parallel()

	doc, err := fixture.Parse([]byte(yamltest.Input(`
		name: widget
	`)))
	require.NoError(t, err)

	_, err = doc.SequenceLength("missing")
	require.ErrorIs(t, err, fixture.ErrKeyNotFound)
}

func TestDocumentDuplicateKeys(t *testing.T) {
	t.Parallel()

	doc, err := fixture.Parse([]byte(yamltest.Input(`
		name: widget
		name: again
	`)))
	require.NoError(t, err)

	dups := doc.DuplicateKeys()
	assert.Equal(t, []string{"name"}, dups)
}

func TestDocumentNoDuplicateKeysInNestedMappings(t *testing.T) {
	t.Parallel()

	doc, err := fixture.Parse([]byte(yamltest.Input(`
		outer:
		  name: one
		name: two
	`)))
	require.NoError(t, err)

	assert.Empty(t, doc.DuplicateKeys())
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	_, err := fixture.Parse([]byte(""))
	require.ErrorIs(t, err, fixture.ErrEmptyDocument)
}
