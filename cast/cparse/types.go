package cparse

import "go.yamlctor.dev/yamlctor/cast"

// typ is the concrete cast.Type this parser produces.
type typ struct {
	kind     cast.TypeKind
	spelling string
	pointee  *typ
}

func (t *typ) Kind() cast.TypeKind { return t.kind }
func (t *typ) Spelling() string    { return t.spelling }

func (t *typ) Pointee() (cast.Type, bool) {
	if t.kind != cast.TypePointer || t.pointee == nil {
		return nil, false
	}

	return t.pointee, true
}

func pointerTo(pointee *typ) *typ {
	return &typ{kind: cast.TypePointer, spelling: pointee.spelling + " *", pointee: pointee}
}

// primitiveKind classifies a concatenated type-spec spelling (qualifiers
// and keywords joined by single spaces, e.g. "unsigned long long") into a
// cast.TypeKind, or reports ok=false when the spelling is a named
// reference that must be resolved by the registry instead.
func primitiveKind(spelling string) (cast.TypeKind, bool) {
	switch spelling {
	case "void":
		return cast.TypeVoid, true
	case "char", "signed char", "unsigned char":
		return cast.TypeChar, true
	case "bool", "_Bool":
		return cast.TypeBool, true
	case "float", "double", "long double":
		return cast.TypeFloating, true
	case "int", "unsigned int", "unsigned", "signed int", "signed",
		"short", "short int", "unsigned short", "unsigned short int",
		"long", "long int", "unsigned long", "unsigned long int",
		"long long", "long long int", "unsigned long long", "unsigned long long int",
		"int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t", "size_t":
		return cast.TypeInteger, true
	}

	return 0, false
}

// cursor is the concrete cast.Cursor this parser produces.
type cursor struct {
	kind     cast.CursorKind
	spelling string
	typ      cast.Type
	comment  string
	children []cast.Cursor
	pos      cast.Position
}

func (c *cursor) Kind() cast.CursorKind       { return c.kind }
func (c *cursor) Spelling() string            { return c.spelling }
func (c *cursor) Type() cast.Type             { return c.typ }
func (c *cursor) RawComment() string          { return c.comment }
func (c *cursor) Children() []cast.Cursor     { return c.children }
func (c *cursor) Position() cast.Position     { return c.pos }
