package yamlctor

import (
	"fmt"

	"go.yamlctor.dev/yamlctor/cast"
)

// FieldOutcome reports whether the field analyzer added or ignored one
// field or tagged-variant slot; its third outcome, an error, is
// AnalyzeField's error return.
type FieldOutcome int

const (
	FieldAdded FieldOutcome = iota
	FieldIgnored
)

// FieldDescriptor is the transient per-field result of the field
// analyzer: a resolved type, pointer kind, and default kind. Loader and
// destructor snippets are rendered from it by the record and tagged
// emitters, not computed here.
type FieldDescriptor struct {
	Name    string
	Type    *TypeDescriptor // nil for PtrString/PtrOptionalString
	Pointer PointerKind
	Default DefaultKind
}

// AnalyzeField classifies one field cursor against the annotation
// keyword table, applied in the documented order.
func AnalyzeField(field cast.Cursor, reg *Registry) (*FieldDescriptor, FieldOutcome, error) {
	ann, err := ParseAnnotation(field.RawComment())
	if err != nil {
		return nil, FieldAdded, atCursor(field, fmt.Errorf("%w: %w", ErrMalformedAnnotation, err))
	}

	switch ann.Keyword {
	case KeywordIgnored:
		return nil, FieldIgnored, nil

	case KeywordOptionalString:
		if !isPointerToChar(field.Type()) {
			return nil, FieldAdded, atCursor(field, fmt.Errorf(
				"%w: !optional_string requires a pointer to char", ErrStructuralViolation))
		}

		return &FieldDescriptor{Name: field.Spelling(), Pointer: PtrOptionalString}, FieldAdded, nil

	case KeywordString:
		if !isPointerToChar(field.Type()) {
			return nil, FieldAdded, atCursor(field, fmt.Errorf(
				"%w: !string requires a pointer to char", ErrStructuralViolation))
		}

		return &FieldDescriptor{Name: field.Spelling(), Pointer: PtrString}, FieldAdded, nil

	case KeywordOptional:
		pointee, ok := field.Type().Pointee()
		if !ok {
			return nil, FieldAdded, atCursor(field, fmt.Errorf(
				"%w: !optional requires a pointer field", ErrStructuralViolation))
		}

		if pointee.Kind() == cast.TypePointer {
			return nil, FieldAdded, atCursor(field, fmt.Errorf(
				"%w: !optional forbids pointer-to-pointer", ErrStructuralViolation))
		}

		desc, ok := reg.Resolve(pointee)
		if !ok {
			return nil, FieldAdded, atCursor(field, fmt.Errorf("%w: %q", ErrUnknownType, pointee.Spelling()))
		}

		return &FieldDescriptor{Name: field.Spelling(), Type: desc, Pointer: PtrOptionalValue}, FieldAdded, nil

	case KeywordDefault:
		if field.Type().Kind() == cast.TypePointer {
			return nil, FieldAdded, atCursor(field, fmt.Errorf(
				"%w: !default forbids a pointer field", ErrStructuralViolation))
		}

		desc, ok := reg.Resolve(field.Type())
		if !ok {
			return nil, FieldAdded, atCursor(field, fmt.Errorf("%w: %q", ErrUnknownType, field.Type().Spelling()))
		}

		if desc.Kind == KindRecord {
			return nil, FieldAdded, atCursor(field, fmt.Errorf(
				"%w: !default forbids a plain record field", ErrStructuralViolation))
		}

		return &FieldDescriptor{
			Name:    field.Spelling(),
			Type:    desc,
			Pointer: PtrNone,
			Default: inferDefaultKind(desc),
		}, FieldAdded, nil

	case KeywordNone:
		if field.Type().Kind() == cast.TypePointer {
			pointee, _ := field.Type().Pointee()

			if pointee.Kind() == cast.TypePointer {
				return nil, FieldAdded, atCursor(field, fmt.Errorf(
					"%w: pointer-to-pointer fields are not supported", ErrStructuralViolation))
			}

			desc, ok := reg.Resolve(pointee)
			if !ok {
				return nil, FieldAdded, atCursor(field, fmt.Errorf("%w: %q", ErrUnknownType, pointee.Spelling()))
			}

			return &FieldDescriptor{Name: field.Spelling(), Type: desc, Pointer: PtrNonNullObject}, FieldAdded, nil
		}

		desc, ok := reg.Resolve(field.Type())
		if !ok {
			return nil, FieldAdded, atCursor(field, fmt.Errorf("%w: %q", ErrUnknownType, field.Type().Spelling()))
		}

		return &FieldDescriptor{Name: field.Spelling(), Type: desc, Pointer: PtrNone}, FieldAdded, nil
	}

	// KeywordList, KeywordTagged, KeywordRepr, KeywordCustom: recognized
	// keywords, but none are grammatically valid on a field.
	return nil, FieldAdded, atCursor(field, fmt.Errorf("%w: !%s", ErrAnnotationNotApplicable, ann.Keyword))
}

func isPointerToChar(t cast.Type) bool {
	pointee, ok := t.Pointee()
	if !ok {
		return false
	}

	return pointee.Kind() == cast.TypeChar
}

func inferDefaultKind(desc *TypeDescriptor) DefaultKind {
	switch desc.Kind {
	case KindEnum:
		return DefaultEnum
	case KindList:
		return DefaultList
	case KindPrimitive:
		switch desc.Spelling {
		case "float", "double", "long double":
			return DefaultFloat
		case "bool", "_Bool":
			return DefaultBool
		default:
			return DefaultInt
		}
	}

	return DefaultInt
}
