package yamlctor

import (
	"fmt"

	"go.yamlctor.dev/yamlctor/cast"
	"go.yamlctor.dev/yamlctor/runtime"
)

// emitList emits the constructor and destructor for a list-flavored
// record: a sequence-start event, an initial 16-element allocation,
// append-with-geometric-growth, and element rollback on failure.
func (e *Emitter) emitList(desc *TypeDescriptor) error {
	var dataField cast.Cursor

	for _, f := range desc.Cursor.Children() {
		if f.Spelling() == "data" {
			dataField = f
		}
	}

	pointee, _ := dataField.Type().Pointee()

	elemDesc, ok := e.reg.Resolve(pointee)
	if !ok {
		return atCursor(dataField, fmt.Errorf("%w: %q", ErrUnknownType, pointee.Spelling()))
	}

	ctype := cType(desc)

	declareConstructor(&e.header, desc)
	declareDestructor(&e.header, desc)

	b := &e.impl

	fmt.Fprintf(b, "void %s(%s *value) {\n", desc.DestructorSymbol, ctype)
	b.WriteString("  for (unsigned i = 0; i < value->count; i++) {\n")

	if elemDesc.DestructorSymbol != "" {
		fmt.Fprintf(b, "    %s(&value->data[i]);\n", elemDesc.DestructorSymbol)
	}

	b.WriteString("  }\n")
	b.WriteString("  free(value->data);\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "bool %s(yaml_loader_t *loader, yaml_event_t *cur, %s *out) {\n", desc.ConstructorSymbol, ctype)
	fmt.Fprintf(b, "  if (!check_event_type(loader, cur, %s)) return false;\n", runtime.EventSequenceStart.Macro())
	b.WriteString("  out->count = 0;\n")
	b.WriteString("  out->capacity = 16;\n")
	fmt.Fprintf(b, "  out->data = malloc(sizeof(*out->data) * out->capacity);\n")
	b.WriteString("  if (!out->data) { yaml_loader_set_error(loader, YAML_LOADER_ERROR_OUT_OF_MEMORY, \"\"); return false; }\n")
	b.WriteString("  for (;;) {\n")
	b.WriteString("    if (!yaml_loader_next(loader, cur)) goto fail;\n")
	fmt.Fprintf(b, "    if (cur->type == %s) break;\n", runtime.EventSequenceEnd.Macro())
	fmt.Fprintf(b, "    if (out->count == out->capacity) { out->capacity *= 2; out->data = realloc(out->data, sizeof(*out->data) * out->capacity); if (!out->data) { yaml_loader_set_error(loader, YAML_LOADER_ERROR_OUT_OF_MEMORY, \"\"); goto fail; } }\n")
	fmt.Fprintf(b, "    if (!%s(loader, cur, &out->data[out->count])) goto fail;\n", elemDesc.ConstructorSymbol)
	b.WriteString("    out->count++;\n")
	b.WriteString("  }\n")
	b.WriteString("  return true;\n\n")
	b.WriteString("fail:\n")
	fmt.Fprintf(b, "  %s(out);\n", desc.DestructorSymbol)
	b.WriteString("  return false;\n")
	b.WriteString("}\n\n")

	return nil
}
