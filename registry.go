package yamlctor

import (
	"fmt"
	"strings"

	"go.yamlctor.dev/yamlctor/cast"
	"go.yamlctor.dev/yamlctor/runtime"
)

// LoaderPrefix, DeallocatorPrefix, ConstructorPrefix, ConverterPrefix,
// and DestructorPrefix name the emitted public/internal symbol
// prefixes.
const (
	LoaderPrefix      = "yaml_load_"
	DeallocatorPrefix = "yaml_free_"
	ConstructorPrefix = "yaml_construct_"
	ConverterPrefix   = "convert_to_"
	DestructorPrefix  = "yaml_delete_"
)

// SymbolName replaces whitespace in spelling with underscores, deriving
// a symbol from a spelling that contains a namespace token (e.g.
// "struct foo" -> "struct_foo").
func SymbolName(spelling string) string {
	return strings.Join(strings.Fields(spelling), "_")
}

// Registry is the run-wide catalog of known types, keyed by spelling.
// Entries are appended, never removed; iteration order is insertion
// order.
type Registry struct {
	order []*TypeDescriptor
	names *DFA

	constructorNames map[string]bool
	destructorNames  map[string]bool
}

// NewRegistry creates a registry seeded with the predefined scalar
// entries the runtime collaborator exports.
func NewRegistry() *Registry {
	r := &Registry{
		names:            New(),
		constructorNames: map[string]bool{},
		destructorNames:  map[string]bool{},
	}

	for spelling := range primitiveConstructors {
		r.mustRegister(&TypeDescriptor{
			IsPredefined:      true,
			Spelling:          spelling,
			Kind:              KindPrimitive,
			ConstructorSymbol: primitiveConstructors[spelling],
		})
	}

	return r
}

func (r *Registry) mustRegister(d *TypeDescriptor) {
	if err := r.Register(d); err != nil {
		panic(err) // only reachable for the fixed predefined seed set
	}
}

// Register inserts d, keyed by d.Spelling. Registering two types under
// the same spelling is a generator-time error: a single duplicate
// type-name aborts the pass.
func (r *Registry) Register(d *TypeDescriptor) error {
	idx := len(r.order)

	err := r.names.Insert(d.Spelling, idx)
	if err == ErrDuplicateKey {
		return fmt.Errorf("%w: %q", ErrRegistryDuplicate, d.Spelling)
	}

	if err != nil {
		return fmt.Errorf("%w: %q", err, d.Spelling)
	}

	r.order = append(r.order, d)

	return nil
}

// Lookup resolves a type by its registry spelling, including the
// predefined primitive entries seeded by NewRegistry.
func (r *Registry) Lookup(spelling string) (*TypeDescriptor, bool) {
	v, ok := r.names.Find(spelling)
	if !ok {
		return nil, false
	}

	return r.order[v.(int)], true
}

// All returns every registered descriptor in insertion order.
func (r *Registry) All() []*TypeDescriptor {
	return r.order
}

// RecordConstructorName records name as a user-declared
// constructor-prefixed function, for later custom-type verification.
func (r *Registry) RecordConstructorName(name string) { r.constructorNames[name] = true }

// RecordDestructorName records name as a user-declared
// destructor-prefixed function, for later custom-type verification.
func (r *Registry) RecordDestructorName(name string) { r.destructorNames[name] = true }

// HasConstructor reports whether name was recorded via
// RecordConstructorName.
func (r *Registry) HasConstructor(name string) bool { return r.constructorNames[name] }

// HasDestructor reports whether name was recorded via
// RecordDestructorName.
func (r *Registry) HasDestructor(name string) bool { return r.destructorNames[name] }

// Resolve looks up the TypeDescriptor for t: a fresh predefined
// descriptor for primitive scalar kinds, or a registry lookup by
// spelling for named/record/enum references.
func (r *Registry) Resolve(t cast.Type) (*TypeDescriptor, bool) {
	switch t.Kind() {
	case cast.TypeChar, cast.TypeBool, cast.TypeInteger, cast.TypeFloating:
		if sym, ok := primitiveConstructors[t.Spelling()]; ok {
			return &TypeDescriptor{
				IsPredefined:      true,
				Spelling:          t.Spelling(),
				Kind:              KindPrimitive,
				ConstructorSymbol: sym,
			}, true
		}

		return nil, false
	case cast.TypeRecord:
		return r.Lookup(t.Spelling())
	case cast.TypeEnum:
		return r.Lookup(t.Spelling())
	case cast.TypeNamed:
		return r.Lookup(t.Spelling())
	}

	return nil, false
}

// primitiveConstructors maps every recognized primitive C spelling (as
// produced by cast.Type.Spelling for TypeChar/TypeBool/TypeInteger/
// TypeFloating) to the runtime collaborator's predefined constructor
// symbol for that width/signedness.
var primitiveConstructors = map[string]string{
	"char":               runtime.ConstructChar,
	"signed char":        runtime.ConstructInt8,
	"unsigned char":      runtime.ConstructUInt8,
	"bool":               runtime.ConstructBool,
	"_Bool":              runtime.ConstructBool,
	"int8_t":             runtime.ConstructInt8,
	"uint8_t":            runtime.ConstructUInt8,
	"int16_t":            runtime.ConstructInt16,
	"uint16_t":           runtime.ConstructUInt16,
	"int32_t":            runtime.ConstructInt32,
	"uint32_t":           runtime.ConstructUInt32,
	"int64_t":            runtime.ConstructInt64,
	"uint64_t":           runtime.ConstructUInt64,
	"short":              runtime.ConstructInt16,
	"short int":          runtime.ConstructInt16,
	"unsigned short":     runtime.ConstructUInt16,
	"unsigned short int": runtime.ConstructUInt16,
	"int":                runtime.ConstructInt32,
	"signed int":         runtime.ConstructInt32,
	"signed":             runtime.ConstructInt32,
	"unsigned int":       runtime.ConstructUInt32,
	"unsigned":           runtime.ConstructUInt32,
	"long":               runtime.ConstructInt64,
	"long int":           runtime.ConstructInt64,
	"unsigned long":      runtime.ConstructUInt64,
	"unsigned long int":  runtime.ConstructUInt64,
	"long long":          runtime.ConstructInt64,
	"long long int":      runtime.ConstructInt64,
	"unsigned long long": runtime.ConstructUInt64,
	"unsigned long long int": runtime.ConstructUInt64,
	"size_t":                 runtime.ConstructUInt64,
	"float":                  runtime.ConstructFloat,
	"double":                 runtime.ConstructDouble,
	"long double":            runtime.ConstructLongDouble,
}
