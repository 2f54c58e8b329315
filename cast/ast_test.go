package cast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.yamlctor.dev/yamlctor/cast"
)

func TestPositionString(t *testing.T) {
	t.Parallel()

	p := cast.Position{File: "widget.h", Line: 12, Column: 3}
	assert.Equal(t, "widget.h:12:3", p.String())
}

func TestPositionStringUnknown(t *testing.T) {
	t.Parallel()

	var p cast.Position
	assert.Equal(t, "<unknown>", p.String())
}

func TestCursorKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "struct declaration", cast.KindStructDecl.String())
	assert.Equal(t, "typedef", cast.KindTypedefDecl.String())
}
