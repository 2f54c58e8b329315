package yamlctor

import (
	"fmt"
	"strings"

	"go.yamlctor.dev/yamlctor/cast"
)

// Discover walks the translation unit's top-level cursors, classifies
// each by kind, enforces per-kind structural constraints, and populates
// reg. A single duplicate type name aborts the pass.
func Discover(tu cast.Cursor, reg *Registry) error {
	var customDescs []*TypeDescriptor

	for _, c := range tu.Children() {
		switch c.Kind() {
		case cast.KindStructDecl, cast.KindUnionDecl:
			desc, err := discoverRecord(c, reg)
			if err != nil {
				return err
			}

			if desc == nil {
				continue // !ignored
			}

			if desc.Kind == KindCustom {
				customDescs = append(customDescs, desc)
			}

		case cast.KindEnumDecl:
			if err := discoverEnum(c, reg); err != nil {
				return err
			}

		case cast.KindTypedefDecl:
			desc, err := discoverTypedef(c, reg)
			if err != nil {
				return err
			}

			if desc != nil && desc.Kind == KindCustom {
				customDescs = append(customDescs, desc)
			}

		case cast.KindFunctionDecl:
			if err := discoverFunction(c, reg); err != nil {
				return err
			}

		case cast.KindFieldDecl:
			return atCursor(c, fmt.Errorf("%w: field declaration outside a record", ErrStructuralViolation))

		default:
			return atCursor(c, fmt.Errorf("%w: %s", ErrUnexpectedCursorKind, c.Kind()))
		}
	}

	for _, desc := range customDescs {
		if !reg.HasConstructor(desc.CustomConstructor) {
			return fmt.Errorf("%w: %s", ErrMissingCustomSymbol, desc.CustomConstructor)
		}

		if !reg.HasDestructor(desc.CustomDestructor) {
			return fmt.Errorf("%w: %s", ErrMissingCustomSymbol, desc.CustomDestructor)
		}
	}

	return nil
}

// discoverRecord classifies a struct/union cursor reached directly at
// top level (not through a typedef). It returns a nil descriptor for
// !ignored declarations.
func discoverRecord(c cast.Cursor, reg *Registry) (*TypeDescriptor, error) {
	if c.Kind() == cast.KindUnionDecl {
		return nil, atCursor(c, fmt.Errorf("%w: union declared outside a tagged union payload", ErrStructuralViolation))
	}

	if c.Spelling() == "" {
		return nil, atCursor(c, fmt.Errorf("%w: anonymous record at outer scope", ErrStructuralViolation))
	}

	spelling := "struct " + c.Spelling()

	ann, err := ParseAnnotation(c.RawComment())
	if err != nil {
		return nil, atCursor(c, fmt.Errorf("%w: %w", ErrMalformedAnnotation, err))
	}

	desc, err := buildRecordDescriptor(c, spelling, ann, reg)
	if err != nil {
		return nil, err
	}

	if desc == nil {
		return nil, nil
	}

	if err := reg.Register(desc); err != nil {
		return nil, atCursor(c, err)
	}

	return desc, nil
}

// buildRecordDescriptor applies ann to the struct/union cursor c (already
// known non-anonymous) under the given registry spelling, producing the
// descriptor to register, or nil for !ignored.
func buildRecordDescriptor(c cast.Cursor, spelling string, ann Annotation, reg *Registry) (*TypeDescriptor, error) {
	sym := SymbolName(spelling)

	switch ann.Keyword {
	case KeywordIgnored:
		return nil, nil

	case KeywordCustom:
		return &TypeDescriptor{
			Cursor:            c,
			Spelling:          spelling,
			Kind:              KindCustom,
			CustomConstructor: ConstructorPrefix + sym,
			CustomDestructor:  DestructorPrefix + sym,
		}, nil

	case KeywordList:
		if err := validateListShape(c.Children()); err != nil {
			return nil, atCursor(c, err)
		}

		return &TypeDescriptor{
			Cursor:            c,
			Spelling:          spelling,
			Kind:              KindList,
			ConstructorSymbol: ConstructorPrefix + sym,
			DestructorSymbol:  DestructorPrefix + sym,
		}, nil

	case KeywordTagged:
		if _, _, err := validateTaggedShape(c.Children(), reg); err != nil {
			return nil, atCursor(c, err)
		}

		return &TypeDescriptor{
			Cursor:            c,
			Spelling:          spelling,
			Kind:              KindTagged,
			ConstructorSymbol: ConstructorPrefix + sym,
			DestructorSymbol:  DestructorPrefix + sym,
		}, nil

	case KeywordNone:
		return &TypeDescriptor{
			Cursor:            c,
			Spelling:          spelling,
			Kind:              KindRecord,
			ConstructorSymbol: ConstructorPrefix + sym,
			DestructorSymbol:  DestructorPrefix + sym,
		}, nil
	}

	return nil, atCursor(c, fmt.Errorf("%w: !%s on a record declaration", ErrAnnotationNotApplicable, ann.Keyword))
}

// discoverEnum registers an enum cursor reached directly at top level.
func discoverEnum(c cast.Cursor, reg *Registry) error {
	if c.Spelling() == "" {
		return atCursor(c, fmt.Errorf("%w: anonymous enum at outer scope", ErrStructuralViolation))
	}

	ann, err := ParseAnnotation(c.RawComment())
	if err != nil {
		return atCursor(c, fmt.Errorf("%w: %w", ErrMalformedAnnotation, err))
	}

	if ann.Keyword == KeywordIgnored {
		return nil
	}

	if ann.Keyword != KeywordNone {
		return atCursor(c, fmt.Errorf("%w: !%s on an enum declaration", ErrAnnotationNotApplicable, ann.Keyword))
	}

	spelling := "enum " + c.Spelling()
	sym := SymbolName(spelling)

	desc := &TypeDescriptor{
		Cursor:            c,
		Spelling:          spelling,
		Kind:              KindEnum,
		ConstructorSymbol: ConstructorPrefix + sym,
		ConverterSymbol:   ConverterPrefix + sym,
	}

	if err := reg.Register(desc); err != nil {
		return atCursor(c, err)
	}

	return nil
}

// discoverTypedef classifies a typedef cursor, whether it wraps an inline
// struct/union/enum definition or simply aliases an existing/primitive
// type.
func discoverTypedef(c cast.Cursor, reg *Registry) (*TypeDescriptor, error) {
	alias := c.Spelling()

	ann, err := ParseAnnotation(c.RawComment())
	if err != nil {
		return nil, atCursor(c, fmt.Errorf("%w: %w", ErrMalformedAnnotation, err))
	}

	if children := c.Children(); len(children) == 1 {
		inner := children[0]

		switch inner.Kind() {
		case cast.KindUnionDecl:
			return nil, atCursor(c, fmt.Errorf("%w: union aliased directly at top level", ErrStructuralViolation))

		case cast.KindStructDecl:
			desc, err := buildRecordDescriptor(inner, alias, ann, reg)
			if err != nil {
				return nil, err
			}

			if desc == nil {
				return nil, nil
			}

			if err := reg.Register(desc); err != nil {
				return nil, atCursor(c, err)
			}

			return desc, nil

		case cast.KindEnumDecl:
			if ann.Keyword == KeywordIgnored {
				return nil, nil
			}

			if ann.Keyword != KeywordNone {
				return nil, atCursor(c, fmt.Errorf("%w: !%s on an enum typedef", ErrAnnotationNotApplicable, ann.Keyword))
			}

			sym := SymbolName(alias)
			desc := &TypeDescriptor{
				Cursor:            inner,
				Spelling:          alias,
				Kind:              KindEnum,
				ConstructorSymbol: ConstructorPrefix + sym,
				ConverterSymbol:   ConverterPrefix + sym,
			}

			if err := reg.Register(desc); err != nil {
				return nil, atCursor(c, err)
			}

			return desc, nil
		}
	}

	// Simple alias of an existing or primitive type.
	target, ok := reg.Resolve(c.Type())
	if !ok {
		return nil, atCursor(c, fmt.Errorf("%w: %q", ErrUnknownType, c.Type().Spelling()))
	}

	switch ann.Keyword {
	case KeywordIgnored:
		return nil, nil

	case KeywordNone:
		copyDesc := *target
		copyDesc.Spelling = alias

		if err := reg.Register(&copyDesc); err != nil {
			return nil, atCursor(c, err)
		}

		return &copyDesc, nil

	case KeywordCustom:
		sym := SymbolName(alias)
		desc := &TypeDescriptor{
			Spelling:          alias,
			Kind:              KindCustom,
			CustomConstructor: ConstructorPrefix + sym,
			CustomDestructor:  DestructorPrefix + sym,
		}

		if err := reg.Register(desc); err != nil {
			return nil, atCursor(c, err)
		}

		return desc, nil

	case KeywordList:
		if target.Cursor == nil {
			return nil, atCursor(c, fmt.Errorf("%w: !list target has no field layout", ErrStructuralViolation))
		}

		if err := validateListShape(target.Cursor.Children()); err != nil {
			return nil, atCursor(c, err)
		}

		sym := SymbolName(alias)
		desc := &TypeDescriptor{
			Cursor:            target.Cursor,
			Spelling:          alias,
			Kind:              KindList,
			ConstructorSymbol: ConstructorPrefix + sym,
			DestructorSymbol:  DestructorPrefix + sym,
		}

		if err := reg.Register(desc); err != nil {
			return nil, atCursor(c, err)
		}

		return desc, nil

	case KeywordTagged:
		if target.Cursor == nil {
			return nil, atCursor(c, fmt.Errorf("%w: !tagged target has no field layout", ErrStructuralViolation))
		}

		if _, _, err := validateTaggedShape(target.Cursor.Children(), reg); err != nil {
			return nil, atCursor(c, err)
		}

		sym := SymbolName(alias)
		desc := &TypeDescriptor{
			Cursor:            target.Cursor,
			Spelling:          alias,
			Kind:              KindTagged,
			ConstructorSymbol: ConstructorPrefix + sym,
			DestructorSymbol:  DestructorPrefix + sym,
		}

		if err := reg.Register(desc); err != nil {
			return nil, atCursor(c, err)
		}

		return desc, nil
	}

	return nil, atCursor(c, fmt.Errorf("%w: !%s on a type alias", ErrAnnotationNotApplicable, ann.Keyword))
}

// discoverFunction records a top-level function prototype under its
// constructor/destructor name list, or rejects it.
func discoverFunction(c cast.Cursor, reg *Registry) error {
	name := c.Spelling()

	switch {
	case strings.HasPrefix(name, ConstructorPrefix):
		reg.RecordConstructorName(name)
		return nil
	case strings.HasPrefix(name, DestructorPrefix):
		reg.RecordDestructorName(name)
		return nil
	}

	return atCursor(c, fmt.Errorf(
		"%w: function %q does not match the constructor or destructor prefix", ErrStructuralViolation, name))
}

// validateListShape enforces the list invariant: exactly the fields
// data (pointer), count (unsigned integer), capacity (unsigned
// integer), no others.
func validateListShape(fields []cast.Cursor) error {
	want := map[string]bool{"data": false, "count": false, "capacity": false}

	if len(fields) != 3 {
		return fmt.Errorf("%w: list type must have exactly fields data, count, capacity", ErrStructuralViolation)
	}

	for _, f := range fields {
		name := f.Spelling()

		seen, known := want[name]
		if !known {
			return fmt.Errorf("%w: unexpected list field %q", ErrStructuralViolation, name)
		}

		if seen {
			return fmt.Errorf("%w: duplicate list field %q", ErrStructuralViolation, name)
		}

		want[name] = true

		switch name {
		case "data":
			if f.Type().Kind() != cast.TypePointer {
				return fmt.Errorf("%w: list field data must be a pointer", ErrStructuralViolation)
			}
		case "count", "capacity":
			sp := f.Type().Spelling()
			unsigned := strings.HasPrefix(sp, "unsigned") || strings.HasPrefix(sp, "uint") || sp == "size_t"

			if f.Type().Kind() != cast.TypeInteger || !unsigned {
				return fmt.Errorf("%w: list field %s must be an unsigned integer", ErrStructuralViolation, name)
			}
		}
	}

	return nil
}

// validateTaggedShape enforces the tagged-union invariant: exactly two
// fields, first an enumeration previously registered, second
// an anonymous union whose field count does not exceed the enumeration's
// cardinality. It returns the enum descriptor and the union's payload
// fields.
func validateTaggedShape(fields []cast.Cursor, reg *Registry) (*TypeDescriptor, []cast.Cursor, error) {
	if len(fields) != 2 {
		return nil, nil, fmt.Errorf("%w: tagged union must have exactly 2 fields", ErrStructuralViolation)
	}

	discriminant, payload := fields[0], fields[1]

	enumDesc, ok := reg.Resolve(discriminant.Type())
	if !ok || enumDesc.Kind != KindEnum {
		return nil, nil, fmt.Errorf("%w: tagged union's first field must be a previously registered enum", ErrStructuralViolation)
	}

	if payload.Type().Kind() != cast.TypeRecord || payload.Type().Spelling() != "union" {
		return nil, nil, fmt.Errorf("%w: tagged union's second field must be an anonymous union", ErrStructuralViolation)
	}

	unionFields := payload.Children()

	cardinality := 0
	if enumDesc.Cursor != nil {
		cardinality = len(enumDesc.Cursor.Children())
	}

	if len(unionFields) > cardinality {
		return nil, nil, fmt.Errorf(
			"%w: tagged union payload has more variants than the enum has constants", ErrStructuralViolation)
	}

	return enumDesc, unionFields, nil
}
