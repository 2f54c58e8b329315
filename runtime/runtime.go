// Package runtime models the external YAML event parser and the helper
// library of predefined scalar constructors that generated C code calls
// into. Nothing here generates or executes runtime behavior; it is the
// contract the emitter renders calls against, kept in one place so the
// symbol names and error vocabulary stay consistent across every emitted
// file.
package runtime

// ErrorKind enumerates the runtime collaborator's error structure.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorParser
	ErrorStructural
	ErrorDuplicateKey
	ErrorMissingKey
	ErrorUnknownKey
	ErrorTag
	ErrorValue
	ErrorOutOfMemory
)

// String renders the C enumerator spelling this ErrorKind corresponds
// to in the runtime collaborator's header.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "YAML_LOADER_ERROR_NONE"
	case ErrorParser:
		return "YAML_LOADER_ERROR_PARSER"
	case ErrorStructural:
		return "YAML_LOADER_ERROR_STRUCTURAL"
	case ErrorDuplicateKey:
		return "YAML_LOADER_ERROR_DUPLICATE_KEY"
	case ErrorMissingKey:
		return "YAML_LOADER_ERROR_MISSING_KEY"
	case ErrorUnknownKey:
		return "YAML_LOADER_ERROR_UNKNOWN_KEY"
	case ErrorTag:
		return "YAML_LOADER_ERROR_TAG"
	case ErrorValue:
		return "YAML_LOADER_ERROR_VALUE"
	case ErrorOutOfMemory:
		return "YAML_LOADER_ERROR_OUT_OF_MEMORY"
	}

	return "YAML_LOADER_ERROR_NONE"
}

// EventKind enumerates the YAML event-stream kinds the emitted loaders
// branch on.
type EventKind int

const (
	EventStreamStart EventKind = iota
	EventStreamEnd
	EventDocumentStart
	EventDocumentEnd
	EventScalar
	EventSequenceStart
	EventSequenceEnd
	EventMappingStart
	EventMappingEnd
	EventAlias
)

// Macro renders the event kind as the C enumerator the runtime
// collaborator's header defines for it. The emitter selects every
// check_event_type expected-event argument through Macro rather than a
// hand-typed literal, so the two can't drift apart.
func (k EventKind) Macro() string {
	switch k {
	case EventStreamStart:
		return "YAML_STREAM_START_EVENT"
	case EventStreamEnd:
		return "YAML_STREAM_END_EVENT"
	case EventDocumentStart:
		return "YAML_DOCUMENT_START_EVENT"
	case EventDocumentEnd:
		return "YAML_DOCUMENT_END_EVENT"
	case EventScalar:
		return "YAML_SCALAR_EVENT"
	case EventSequenceStart:
		return "YAML_SEQUENCE_START_EVENT"
	case EventSequenceEnd:
		return "YAML_SEQUENCE_END_EVENT"
	case EventMappingStart:
		return "YAML_MAPPING_START_EVENT"
	case EventMappingEnd:
		return "YAML_MAPPING_END_EVENT"
	case EventAlias:
		return "YAML_ALIAS_EVENT"
	}

	return "YAML_STREAM_START_EVENT"
}

// Spelling renders the event kind the way
// yaml_constructor_event_spelling would. The runtime collaborator
// calls this itself when it populates an error structure's "expected"
// text; nothing on the Go side needs to reproduce that rendering, so
// Spelling exists only to document the contract the emitted calls rely
// on.
func (k EventKind) Spelling() string {
	switch k {
	case EventStreamStart:
		return "stream start"
	case EventStreamEnd:
		return "stream end"
	case EventDocumentStart:
		return "document start"
	case EventDocumentEnd:
		return "document end"
	case EventScalar:
		return "scalar"
	case EventSequenceStart:
		return "sequence start"
	case EventSequenceEnd:
		return "sequence end"
	case EventMappingStart:
		return "mapping start"
	case EventMappingEnd:
		return "mapping end"
	case EventAlias:
		return "alias"
	}

	return "unknown event"
}

// Escape renders s the way yaml_constructor_escape does: backslash,
// double-quote, tab, newline, and carriage return are
// backslash-escaped; everything else passes through unchanged. The
// runtime collaborator applies this itself when it copies a scalar's
// raw bytes into an error structure at runtime, so the emitter never
// calls this directly; it documents what that copy does to the text
// the emitted calls hand it.
func Escape(s string) string {
	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			out = append(out, '\\', '\\')
		case '"':
			out = append(out, '\\', '"')
		case '\t':
			out = append(out, '\\', 't')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, s[i])
		}
	}

	return string(out)
}

// Predefined scalar constructor symbols the runtime collaborator
// exports; the discovery pass seeds the registry's predefined entries
// with these names rather than ever emitting definitions for them.
const (
	ConstructInt8      = "yaml_construct_int8"
	ConstructInt16     = "yaml_construct_int16"
	ConstructInt32     = "yaml_construct_int32"
	ConstructInt64     = "yaml_construct_int64"
	ConstructUInt8     = "yaml_construct_uint8"
	ConstructUInt16    = "yaml_construct_uint16"
	ConstructUInt32    = "yaml_construct_uint32"
	ConstructUInt64    = "yaml_construct_uint64"
	ConstructFloat     = "yaml_construct_float"
	ConstructDouble    = "yaml_construct_double"
	ConstructLongDouble = "yaml_construct_long_double"
	ConstructChar      = "yaml_construct_char"
	ConstructBool      = "yaml_construct_bool"
	ConstructString    = "yaml_construct_string"
)

// CheckEventType is the spelling of the runtime collaborator's
// check_event_type(loader, event, expected) helper, called by every
// emitted constructor before consuming an event.
const CheckEventType = "check_event_type"

// WalkMacro is the spelling of the WALK(table, name, min, max, result)
// macro the runtime collaborator provides for advancing an octet through
// a control table.
const WalkMacro = "WALK"
