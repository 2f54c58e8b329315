package yamlctor

import (
	"fmt"
	"strings"

	"go.yamlctor.dev/yamlctor/runtime"
)

// isOptionalOrDefault reports whether fd's slot is allowed to be absent
// from the mapping: pointer is optional-* or a default is set.
func isOptionalOrDefault(fd *FieldDescriptor) bool {
	return fd.Pointer == PtrOptionalValue || fd.Pointer == PtrOptionalString || fd.Default != DefaultNone
}

// renderDefaultAssignment renders the up-front statement that gives destExpr
// its resting value before the mapping loop runs: NULL for optional
// pointer-kind fields, or the literal default for `!default` fields.
func renderDefaultAssignment(fd *FieldDescriptor, destExpr string) string {
	switch fd.Pointer {
	case PtrOptionalValue, PtrOptionalString:
		return fmt.Sprintf("%s = NULL;", destExpr)
	}

	switch fd.Default {
	case DefaultInt:
		return fmt.Sprintf("%s = 0;", destExpr)
	case DefaultFloat:
		return fmt.Sprintf("%s = 0;", destExpr)
	case DefaultBool:
		return fmt.Sprintf("%s = false;", destExpr)
	case DefaultEnum:
		return fmt.Sprintf("%s = (%s)0;", destExpr, fd.Type.Spelling)
	case DefaultList:
		return fmt.Sprintf("%s.data = NULL; %s.count = 0; %s.capacity = 0;", destExpr, destExpr, destExpr)
	}

	return ""
}

// renderFieldLoader renders the statement(s) that parse one mapping
// value into destExpr, once its key has already been dispatched.
func renderFieldLoader(fd *FieldDescriptor, destExpr string) string {
	switch fd.Pointer {
	case PtrString, PtrOptionalString:
		return fmt.Sprintf("if (!%s(loader, cur, &%s)) goto fail;", runtime.ConstructString, destExpr)
	case PtrOptionalValue, PtrNonNullObject:
		return fmt.Sprintf(
			"%s = malloc(sizeof(*%s)); if (!%s || !%s(loader, cur, %s)) goto fail;",
			destExpr, destExpr, destExpr, fd.Type.ConstructorSymbol, destExpr)
	}

	return fmt.Sprintf("if (!%s(loader, cur, &%s)) goto fail;", fd.Type.ConstructorSymbol, destExpr)
}

// renderDestructorCall renders the statement that releases destExpr, or
// "" when the field owns nothing that needs releasing (plain scalars,
// enums).
func renderDestructorCall(fd *FieldDescriptor, destExpr string) string {
	switch fd.Pointer {
	case PtrString, PtrOptionalString:
		return fmt.Sprintf("if (%s) free(%s);", destExpr, destExpr)
	case PtrOptionalValue, PtrNonNullObject:
		if fd.Type.DestructorSymbol == "" {
			return fmt.Sprintf("if (%s) free(%s);", destExpr, destExpr)
		}

		return fmt.Sprintf("if (%s) { %s(%s); free(%s); }", destExpr, fd.Type.DestructorSymbol, destExpr, destExpr)
	}

	if fd.Type != nil && fd.Type.DestructorSymbol != "" {
		return fmt.Sprintf("%s(&%s);", fd.Type.DestructorSymbol, destExpr)
	}

	return ""
}

// emitStruct emits the constructor and destructor for a plain record
// type: a field-name DFA, a control table, found[]/names[] tables, the
// mapping-driven dispatch loop, missing-key checks, and
// rollback-on-failure via field destructors.
func (e *Emitter) emitStruct(desc *TypeDescriptor) error {
	type slot struct {
		fd     *FieldDescriptor
		nodeID int
	}

	dfa := New()

	var slots []slot

	for _, f := range desc.Cursor.Children() {
		fd, outcome, err := AnalyzeField(f, e.reg)
		if err != nil {
			return err
		}

		if outcome == FieldIgnored {
			continue
		}

		idx := len(slots)
		if err := dfa.Insert(fd.Name, idx); err != nil {
			return atCursor(f, fmt.Errorf("%w: field %q", err, fd.Name))
		}

		id, _ := dfa.NodeID(fd.Name)
		slots = append(slots, slot{fd: fd, nodeID: id})
	}

	table := dfa.EmitTable()
	sym := SymbolName(desc.Spelling)
	ctype := cType(desc)

	declareConstructor(&e.header, desc)
	declareDestructor(&e.header, desc)

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

	fmt.Fprintf(b, "static const char *%s_names[] = {\n", sym)

	for _, s := range slots {
		fmt.Fprintf(b, "  \"%s\",\n", s.fd.Name)
	}

	b.WriteString("};\n\n")

	fmt.Fprintf(b, "void %s(%s *value) {\n", desc.DestructorSymbol, ctype)

	for _, s := range slots {
		if snippet := renderDestructorCall(s.fd, "value->"+s.fd.Name); snippet != "" {
			fmt.Fprintf(b, "  %s\n", snippet)
		}
	}

	b.WriteString("}\n\n")

	fmt.Fprintf(b, "bool %s(yaml_loader_t *loader, yaml_event_t *cur, %s *out) {\n", desc.ConstructorSymbol, ctype)
	fmt.Fprintf(b, "  bool found[%d] = {0};\n", len(slots))
	fmt.Fprintf(b, "  if (!check_event_type(loader, cur, %s)) return false;\n", runtime.EventMappingStart.Macro())

	for _, s := range slots {
		if isOptionalOrDefault(s.fd) {
			if stmt := renderDefaultAssignment(s.fd, "out->"+s.fd.Name); stmt != "" {
				fmt.Fprintf(b, "  %s\n", stmt)
			}
		}
	}

	b.WriteString("  for (;;) {\n")
	b.WriteString("    if (!yaml_loader_next(loader, cur)) goto fail;\n")
	fmt.Fprintf(b, "    if (cur->type == %s) break;\n", runtime.EventMappingEnd.Macro())
	fmt.Fprintf(b, "    if (!check_event_type(loader, cur, %s)) goto fail;\n", runtime.EventScalar.Macro())
	b.WriteString("    uint16_t node;\n")
	fmt.Fprintf(b, "    %s(%s_control, (const char *)cur->data.scalar.value, %d, %d, node);\n",
		runtime.WalkMacro, sym, table.Min, table.Max)
	b.WriteString("    if (!yaml_loader_next(loader, cur)) goto fail;\n")
	b.WriteString("    switch (node) {\n")

	for i, s := range slots {
		fmt.Fprintf(b, "    case %d:\n", s.nodeID)
		fmt.Fprintf(b, "      if (found[%d]) { yaml_loader_set_error(loader, YAML_LOADER_ERROR_DUPLICATE_KEY, \"%s\"); goto fail; }\n",
			i, s.fd.Name)
		fmt.Fprintf(b, "      found[%d] = true;\n", i)
		fmt.Fprintf(b, "      %s\n", renderFieldLoader(s.fd, "out->"+s.fd.Name))
		b.WriteString("      break;\n")
	}

	b.WriteString("    default:\n")
	b.WriteString("      yaml_loader_set_error(loader, YAML_LOADER_ERROR_UNKNOWN_KEY, (const char *)cur->data.scalar.value);\n")
	b.WriteString("      goto fail;\n")
	b.WriteString("    }\n")
	b.WriteString("  }\n\n")

	for i, s := range slots {
		if !isOptionalOrDefault(s.fd) {
			fmt.Fprintf(b, "  if (!found[%d]) { yaml_loader_set_error(loader, YAML_LOADER_ERROR_MISSING_KEY, %s_names[%d]); goto fail; }\n",
				i, sym, i)
		}
	}

	b.WriteString("  return true;\n\n")
	b.WriteString("fail:\n")

	for i, s := range slots {
		if snippet := renderDestructorCall(s.fd, "out->"+s.fd.Name); snippet != "" {
			fmt.Fprintf(b, "  if (found[%d]) %s\n", i, snippet)
		}
	}

	b.WriteString("  return false;\n")
	b.WriteString("}\n\n")

	return nil
}
