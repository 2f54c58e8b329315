package yamlctor

import (
	"fmt"
	"log/slog"

	"go.yamlctor.dev/yamlctor/cast/cparse"
)

// Generator ties the discovery pass and the loader emitter into one
// run: parse the input header through the abstract AST provider, walk
// it into a populated Registry, then render the header/implementation
// pair.
//
// Create instances with NewGenerator and configure them with Option
// values, the same functional-options shape used throughout this
// module's CLI-configurable components.
type Generator struct {
	rootName        string
	inputHeaderName string
	guardName       string
	logger          *slog.Logger
}

// Option configures a Generator constructed by NewGenerator.
type Option func(*Generator)

// WithRootName overrides the root type's spelling to resolve after
// discovery. Defaults to "struct root".
func WithRootName(name string) Option {
	return func(g *Generator) { g.rootName = name }
}

// WithInputHeaderName overrides the basename #include'd by the
// generated header.
func WithInputHeaderName(name string) Option {
	return func(g *Generator) { g.inputHeaderName = name }
}

// WithGuardName overrides the generated header's #ifndef guard token.
func WithGuardName(name string) Option {
	return func(g *Generator) { g.guardName = name }
}

// WithLogger attaches a logger used for generation-time progress
// tracing. Defaults to slog.Default() when unset.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a Generator with its defaults applied (root name
// "struct root"), then applies any Option overrides.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rootName: "struct root",
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate parses src (the contents of a C header named filename),
// discovers its types, and renders the header/implementation text pair.
func (g *Generator) Generate(filename, src string) (headerText, implText string, err error) {
	tu, err := cparse.Parse(filename, src)
	if err != nil {
		return "", "", fmt.Errorf("parsing %s: %w", filename, err)
	}

	reg := NewRegistry()

	if err := Discover(tu, reg); err != nil {
		return "", "", err
	}

	g.logger.Debug("discovery complete", "types", len(reg.All()))

	guard := g.guardName
	if guard == "" {
		guard = "YAMLCTOR_GENERATED_H"
	}

	inputName := g.inputHeaderName
	if inputName == "" {
		inputName = filename
	}

	emitter := NewEmitter(reg, g.rootName, inputName, guard)

	headerText, implText, err = emitter.EmitAll()
	if err != nil {
		return "", "", err
	}

	return headerText, implText, nil
}
