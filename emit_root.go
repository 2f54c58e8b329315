package yamlctor

import (
	"fmt"

	"go.yamlctor.dev/yamlctor/runtime"
)

// emitRoot emits the root loader and deallocator: a
// stream-start/document-start/construct/document-end sequence driven by
// the FSM {initial -> stream-opened -> document-opened -> body-complete
// -> document-closed}, with the numeric locale saved and restored around
// it so decimal parsing is locale-independent.
func (e *Emitter) emitRoot(root *TypeDescriptor) error {
	sym := SymbolName(root.Spelling)
	ctype := cType(root)

	loadSym := LoaderPrefix + sym
	freeSym := DeallocatorPrefix + sym

	fmt.Fprintf(&e.header, "bool %s(%s *out, yaml_loader_t *loader);\n", loadSym, ctype)
	fmt.Fprintf(&e.header, "void %s(%s *value);\n", freeSym, ctype)

	b := &e.impl

	fmt.Fprintf(b, "bool %s(%s *out, yaml_loader_t *loader) {\n", loadSym, ctype)
	b.WriteString("  char *saved_locale = strdup(setlocale(LC_NUMERIC, NULL));\n")
	b.WriteString("  setlocale(LC_NUMERIC, \"C\");\n")
	b.WriteString("  yaml_event_t cur;\n")
	b.WriteString("  bool ok = false;\n\n")
	b.WriteString("  if (!yaml_loader_next(loader, &cur)) goto done;\n")
	fmt.Fprintf(b, "  if (cur.type == %s) {\n", runtime.EventStreamStart.Macro())
	b.WriteString("    if (!yaml_loader_next(loader, &cur)) goto done;\n")
	b.WriteString("  }\n\n")
	fmt.Fprintf(b, "  if (!check_event_type(loader, &cur, %s)) goto done;\n", runtime.EventDocumentStart.Macro())
	b.WriteString("  if (!yaml_loader_next(loader, &cur)) goto done;\n\n")
	fmt.Fprintf(b, "  if (!%s(loader, &cur, out)) goto done;\n\n", root.ConstructorSymbol)
	b.WriteString("  if (!yaml_loader_next(loader, &cur)) goto done;\n")
	fmt.Fprintf(b, "  if (!check_event_type(loader, &cur, %s)) goto done;\n\n", runtime.EventDocumentEnd.Macro())
	b.WriteString("  ok = true;\n\n")
	b.WriteString("done:\n")
	b.WriteString("  setlocale(LC_NUMERIC, saved_locale);\n")
	b.WriteString("  free(saved_locale);\n")
	b.WriteString("  return ok;\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "void %s(%s *value) {\n", freeSym, ctype)
	fmt.Fprintf(b, "  %s(value);\n", root.DestructorSymbol)
	b.WriteString("}\n\n")

	return nil
}
