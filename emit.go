package yamlctor

import (
	"fmt"
	"strings"
)

// Emitter produces C source text for a populated Registry. One Emitter
// instance handles exactly one generator run:
// it owns the header and implementation buffers for their lifetime and
// is discarded once EmitAll returns.
type Emitter struct {
	reg             *Registry
	rootSpelling    string
	inputHeaderName string
	guardName       string

	header strings.Builder
	impl   strings.Builder
}

// NewEmitter creates an Emitter that will resolve rootSpelling against
// reg and #include inputHeaderName (the input header's basename) from
// the generated header.
func NewEmitter(reg *Registry, rootSpelling, inputHeaderName, guardName string) *Emitter {
	return &Emitter{
		reg:             reg,
		rootSpelling:    rootSpelling,
		inputHeaderName: inputHeaderName,
		guardName:       guardName,
	}
}

// EmitAll renders the full header and implementation file text. It
// iterates the registry in insertion order, dispatching per-kind, then
// emits the root entry point last.
func (e *Emitter) EmitAll() (headerText, implText string, err error) {
	fmt.Fprintf(&e.header, "#ifndef %s\n#define %s\n\n", e.guardName, e.guardName)
	fmt.Fprintf(&e.header, "#include \"yaml_loader.h\"\n#include \"yaml_constructor.h\"\n#include \"%s\"\n\n", e.inputHeaderName)

	fmt.Fprintf(&e.impl, "#include \"%s.h\"\n\n", strings.TrimSuffix(e.inputHeaderName, ".h"))

	for _, desc := range e.reg.All() {
		if desc.IsPredefined || desc.Kind == KindCustom || desc.Kind == KindPrimitive {
			continue
		}

		switch desc.Kind {
		case KindRecord:
			if err := e.emitStruct(desc); err != nil {
				return "", "", err
			}
		case KindList:
			if err := e.emitList(desc); err != nil {
				return "", "", err
			}
		case KindTagged:
			if err := e.emitTagged(desc); err != nil {
				return "", "", err
			}
		case KindEnum:
			if err := e.emitEnum(desc); err != nil {
				return "", "", err
			}
		}
	}

	root, ok := e.reg.Lookup(e.rootSpelling)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownRootType, e.rootSpelling)
	}

	if err := e.emitRoot(root); err != nil {
		return "", "", err
	}

	fmt.Fprintf(&e.header, "#endif /* %s */\n", e.guardName)

	return e.header.String(), e.impl.String(), nil
}

// cType renders the declared-C-type spelling for desc: its own spelling
// for records/enums/primitives, or the user-supplied type name for a
// custom type.
func cType(desc *TypeDescriptor) string {
	return desc.Spelling
}

// declareConstructor/declareDestructor write a function prototype to w.
func declareConstructor(w *strings.Builder, desc *TypeDescriptor) {
	fmt.Fprintf(w, "bool %s(yaml_loader_t *loader, yaml_event_t *cur, %s *out);\n", desc.ConstructorSymbol, cType(desc))
}

func declareDestructor(w *strings.Builder, desc *TypeDescriptor) {
	fmt.Fprintf(w, "void %s(%s *value);\n", desc.DestructorSymbol, cType(desc))
}
