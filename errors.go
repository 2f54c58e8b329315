package yamlctor

import (
	"errors"
	"fmt"

	"go.yamlctor.dev/yamlctor/cast"
)

// Generator-time error taxonomy leaves. Each wraps a more specific cause
// via fmt.Errorf("%w: %w", bucket, cause) so errors.Is reaches both.
var (
	ErrMalformedAnnotation  = errors.New("malformed annotation")
	ErrStructuralViolation  = errors.New("structural violation")
	ErrRegistryDuplicate    = errors.New("duplicate type name")
	ErrMissingCustomSymbol  = errors.New("missing custom constructor or destructor")
	ErrUnknownType          = errors.New("unknown type")
	ErrUnknownRootType      = errors.New("unknown root type")
	ErrUnexpectedCursorKind = errors.New("unexpected declaration")
	// ErrAnnotationNotApplicable is returned when a recognized annotation
	// keyword is used somewhere its grammar forbids (e.g. !list on a
	// field, or !repr outside an enum constant). Always a hard error,
	// never silently tolerated.
	ErrAnnotationNotApplicable = errors.New("annotation not applicable here")
)

// sourceError wraps a sentinel error with the source position that
// produced it, the shape every generator-time diagnostic takes.
type sourceError struct {
	pos cast.Position
	err error
}

func (e *sourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.err)
}

func (e *sourceError) Unwrap() error { return e.err }

// atPosition wraps err with pos, the constructor every discovery/emit
// diagnostic funnels through.
func atPosition(pos cast.Position, err error) error {
	return &sourceError{pos: pos, err: err}
}

// atCursor is a convenience wrapper reading the position off a cursor.
func atCursor(c cast.Cursor, err error) error {
	return atPosition(c.Position(), err)
}
