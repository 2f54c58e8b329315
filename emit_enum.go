package yamlctor

import (
	"fmt"
	"strings"

	"go.yamlctor.dev/yamlctor/runtime"
)

// emitEnum emits the converter and public constructor for an enum type:
// a string->enum DFA built from each constant's !repr parameter (or its
// bare identifier when unannotated), and a constructor that requires a
// scalar event and delegates to the converter.
func (e *Emitter) emitEnum(desc *TypeDescriptor) error {
	dfa := New()

	type slot struct {
		constant string
		nodeID   int
	}

	var slots []slot

	for _, c := range desc.Cursor.Children() {
		ann, err := ParseAnnotation(c.RawComment())
		if err != nil {
			return atCursor(c, fmt.Errorf("%w: %w", ErrMalformedAnnotation, err))
		}

		if ann.Keyword != KeywordNone && ann.Keyword != KeywordRepr {
			return atCursor(c, fmt.Errorf("%w: !%s on an enum constant", ErrAnnotationNotApplicable, ann.Keyword))
		}

		repr := c.Spelling()
		if ann.Keyword == KeywordRepr {
			repr = ann.Param
		}

		if err := dfa.Insert(repr, c.Spelling()); err != nil {
			return atCursor(c, fmt.Errorf("%w: representation %q", err, repr))
		}

		id, _ := dfa.NodeID(repr)
		slots = append(slots, slot{constant: c.Spelling(), nodeID: id})
	}

	table := dfa.EmitTable()
	sym := SymbolName(desc.Spelling)
	ctype := cType(desc)

	fmt.Fprintf(&e.header, "bool %s(yaml_loader_t *loader, yaml_event_t *cur, %s *out);\n", desc.ConstructorSymbol, ctype)

	b := &e.impl

	fmt.Fprintf(b, "static const uint16_t %s_control[][%d] = {\n", sym, table.Width)

	for _, row := range table.Rows {
		cells := make([]string, len(row))

		for i, v := range row {
			cells[i] = fmt.Sprintf("%d", v)
		}

		fmt.Fprintf(b, "  {%s},\n", strings.Join(cells, ", "))
	}

	b.WriteString("};\n\n")

	fmt.Fprintf(b, "static bool %s(const char *repr, %s *out) {\n", desc.ConverterSymbol, ctype)
	b.WriteString("  uint16_t node;\n")
	fmt.Fprintf(b, "  %s(%s_control, repr, %d, %d, node);\n", runtime.WalkMacro, sym, table.Min, table.Max)
	b.WriteString("  switch (node) {\n")

	for _, s := range slots {
		fmt.Fprintf(b, "  case %d: *out = %s; return true;\n", s.nodeID, s.constant)
	}

	b.WriteString("  default: return false;\n")
	b.WriteString("  }\n}\n\n")

	fmt.Fprintf(b, "bool %s(yaml_loader_t *loader, yaml_event_t *cur, %s *out) {\n", desc.ConstructorSymbol, ctype)
	fmt.Fprintf(b, "  if (!check_event_type(loader, cur, %s)) return false;\n", runtime.EventScalar.Macro())
	fmt.Fprintf(b, "  if (!%s((const char *)cur->data.scalar.value, out)) {\n", desc.ConverterSymbol)
	fmt.Fprintf(b, "    yaml_loader_set_error(loader, YAML_LOADER_ERROR_VALUE, \"%s\"); return false;\n", desc.Spelling)
	b.WriteString("  }\n")
	b.WriteString("  return true;\n")
	b.WriteString("}\n\n")

	return nil
}
