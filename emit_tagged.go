package yamlctor

import (
	"fmt"

	"go.yamlctor.dev/yamlctor/runtime"
)

// taggedVariant pairs one enum constant with the union field constructed
// when that constant is the active tag, or nil for a payload-less
// variant.
type taggedVariant struct {
	constant string
	field    *FieldDescriptor
}

// emitTagged emits the constructor and destructor for a tagged-union
// record. Enum constants and union fields correspond by declaration
// order: the first len(unionFields) constants each own one field, and
// any remaining trailing constants are payload-less.
func (e *Emitter) emitTagged(desc *TypeDescriptor) error {
	discriminant := desc.Cursor.Children()[0]
	payload := desc.Cursor.Children()[1]

	enumDesc, ok := e.reg.Resolve(discriminant.Type())
	if !ok {
		return atCursor(discriminant, fmt.Errorf("%w: %q", ErrUnknownType, discriminant.Type().Spelling()))
	}

	unionFields := payload.Children()

	var variants []taggedVariant

	constants := enumDesc.Cursor.Children()

	for i, c := range constants {
		if i < len(unionFields) {
			fd, outcome, err := AnalyzeField(unionFields[i], e.reg)
			if err != nil {
				return err
			}

			if outcome == FieldIgnored {
				variants = append(variants, taggedVariant{constant: c.Spelling()})
				continue
			}

			variants = append(variants, taggedVariant{constant: c.Spelling(), field: fd})

			continue
		}

		variants = append(variants, taggedVariant{constant: c.Spelling()})
	}

	discName := discriminant.Spelling()
	payloadName := payload.Spelling()
	ctype := cType(desc)

	declareConstructor(&e.header, desc)
	declareDestructor(&e.header, desc)

	b := &e.impl

	fmt.Fprintf(b, "void %s(%s *value) {\n", desc.DestructorSymbol, ctype)
	fmt.Fprintf(b, "  switch (value->%s) {\n", discName)

	for _, v := range variants {
		fmt.Fprintf(b, "  case %s:\n", v.constant)

		if v.field != nil {
			if snippet := renderDestructorCall(v.field, fmt.Sprintf("value->%s.%s", payloadName, v.field.Name)); snippet != "" {
				fmt.Fprintf(b, "    %s\n", snippet)
			}
		}

		b.WriteString("    break;\n")
	}

	b.WriteString("  }\n}\n\n")

	fmt.Fprintf(b, "bool %s(yaml_loader_t *loader, yaml_event_t *cur, %s *out) {\n", desc.ConstructorSymbol, ctype)
	b.WriteString("  const char *tag = yaml_loader_event_tag(cur);\n")
	fmt.Fprintf(b,
		"  if (!tag || tag[0] != '!' || tag[1] == '\\0') { yaml_loader_set_error(loader, YAML_LOADER_ERROR_TAG, \"%s\"); return false; }\n",
		enumDesc.Spelling)
	fmt.Fprintf(b, "  if (!%s(tag + 1, &out->%s)) { yaml_loader_set_error(loader, YAML_LOADER_ERROR_TAG, \"%s\"); return false; }\n",
		enumDesc.ConverterSymbol, discName, enumDesc.Spelling)
	fmt.Fprintf(b, "  switch (out->%s) {\n", discName)

	for _, v := range variants {
		fmt.Fprintf(b, "  case %s:\n", v.constant)

		if v.field == nil {
			fmt.Fprintf(b, "    if (!check_event_type(loader, cur, %s) || cur->data.scalar.length != 0) {\n", runtime.EventScalar.Macro())
			fmt.Fprintf(b, "      yaml_loader_set_error(loader, YAML_LOADER_ERROR_TAG, \"%s\"); return false;\n", enumDesc.Spelling)
			b.WriteString("    }\n")
			b.WriteString("    break;\n")

			continue
		}

		fmt.Fprintf(b, "    %s\n", renderFieldLoader(v.field, fmt.Sprintf("out->%s.%s", payloadName, v.field.Name)))
		b.WriteString("    break;\n")
	}

	b.WriteString("  }\n")
	b.WriteString("  return true;\n\n")
	b.WriteString("fail:\n")
	b.WriteString("  return false;\n")
	b.WriteString("}\n\n")

	return nil
}
