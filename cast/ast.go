// Package cast defines the abstract AST provider contract this generator
// consumes. A provider exposes a C translation unit as a tree of cursors
// without committing the rest of the generator to any particular C
// front-end.
package cast

// CursorKind enumerates the declaration shapes the discovery pass
// recognizes. Anything else reaching the discovery pass is a build error
// naming the cursor kind.
type CursorKind int

const (
	// KindTranslationUnit is the synthetic root cursor of a parsed header.
	KindTranslationUnit CursorKind = iota
	// KindStructDecl is a record (struct) declaration.
	KindStructDecl
	// KindUnionDecl is a union declaration.
	KindUnionDecl
	// KindEnumDecl is an enumeration declaration.
	KindEnumDecl
	// KindEnumConstantDecl is one enumerator inside an enum declaration.
	KindEnumConstantDecl
	// KindFieldDecl is a field inside a struct or union.
	KindFieldDecl
	// KindTypedefDecl is a type alias.
	KindTypedefDecl
	// KindFunctionDecl is a top-level function declaration (prototype).
	KindFunctionDecl
)

// String renders a CursorKind for error messages.
func (k CursorKind) String() string {
	switch k {
	case KindTranslationUnit:
		return "translation unit"
	case KindStructDecl:
		return "struct declaration"
	case KindUnionDecl:
		return "union declaration"
	case KindEnumDecl:
		return "enum declaration"
	case KindEnumConstantDecl:
		return "enum constant"
	case KindFieldDecl:
		return "field declaration"
	case KindTypedefDecl:
		return "typedef"
	case KindFunctionDecl:
		return "function declaration"
	}

	return "unknown cursor kind"
}

// TypeKind enumerates the shapes of a declared C type the field analyzer
// distinguishes between.
type TypeKind int

const (
	// TypeRecord names a struct or union type by spelling.
	TypeRecord TypeKind = iota
	// TypeEnum names an enum type by spelling.
	TypeEnum
	// TypePointer is a pointer to some other Type.
	TypePointer
	// TypeChar is the C `char` scalar.
	TypeChar
	// TypeBool is the C `bool` scalar (stdbool.h).
	TypeBool
	// TypeInteger covers every signed/unsigned integer width.
	TypeInteger
	// TypeFloating covers float/double/long double.
	TypeFloating
	// TypeVoid is the C `void` type, only meaningful as a pointee.
	TypeVoid
	// TypeNamed is a bare typedef'd identifier whose record/enum/list/
	// tagged/custom flavor is unknown until the registry resolves it by
	// spelling; record/union/enum types introduced with their keyword
	// use TypeRecord/TypeEnum directly instead.
	TypeNamed
)

// Position locates a cursor in the original source, for diagnostics.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders a Position the way generator diagnostics expect:
// "file:line:column".
func (p Position) String() string {
	if p.File == "" {
		return "<unknown>"
	}

	return p.File + ":" + itoa(p.Line) + ":" + itoa(p.Column)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	neg := n < 0
	if neg {
		n = -n
	}

	var buf [20]byte

	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	if neg {
		i--
		buf[i] = '-'
	}

	return string(buf[i:])
}

// Type is the abstract shape of a declared C type. Implementations are
// provided by a Cursor's Type method.
type Type interface {
	// Kind reports the broad shape of the type.
	Kind() TypeKind
	// Spelling is the type's source spelling (e.g. "struct person",
	// "gender_t", "int", "char *").
	Spelling() string
	// Pointee reports the type pointed to when Kind is TypePointer.
	Pointee() (Type, bool)
}

// Cursor is one node in the abstract AST. A provider builds a tree of
// cursors rooted at a KindTranslationUnit cursor; the discovery pass walks
// children top-down.
//
// This replaces the push-style CXChildVisitResult callback of a libclang
// binding with Go's natural pull iteration: a caller recurses into
// Children() itself rather than returning {Continue, Recurse, Break} to a
// driver loop.
type Cursor interface {
	// Kind reports the declaration shape of this cursor.
	Kind() CursorKind
	// Spelling is the declared name, or "" for an anonymous record/union.
	Spelling() string
	// Type is the cursor's own type (for FieldDecl and TypedefDecl the
	// underlying/aliased type; for StructDecl/UnionDecl/EnumDecl a
	// record/enum Type naming itself). The cparse provider returns nil
	// for EnumConstantDecl and FunctionDecl cursors.
	Type() Type
	// RawComment is the full text of the doc-comment immediately
	// preceding this declaration, or "" if none is attached.
	RawComment() string
	// Children lists this cursor's immediate children in source order.
	Children() []Cursor
	// Position locates the cursor for diagnostics.
	Position() Position
}
