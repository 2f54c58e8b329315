package yamlctor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Sentinel errors surfaced by the CLI layer around a Generator run.
var (
	ErrInvalidOption = errors.New("invalid option")
	ErrReadInput     = errors.New("reading input")
	ErrWriteOutput   = errors.New("writing output")
	ErrDuplicateFlag = errors.New("duplicate flag")
)

// singleUseString is a pflag.Value wrapping a *string that errors if
// Set is called more than once, so a repeated -o/-r/-n on the command
// line is a parse error rather than a silent last-value-wins overwrite.
type singleUseString struct {
	name string
	dest *string
	set  bool
}

func (v *singleUseString) String() string { return *v.dest }
func (v *singleUseString) Type() string   { return "string" }

func (v *singleUseString) Set(s string) error {
	if v.set {
		return fmt.Errorf("%w: -%s", ErrDuplicateFlag, v.name)
	}

	v.set = true
	*v.dest = s

	return nil
}

// Flags holds CLI flag names for generator configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// NewConfig.
type Flags struct {
	OutputDir string
	RootName  string
	BaseName  string
}

// NewConfig creates a new Config embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values for a generator run.
//
// Create instances with NewConfig and register CLI flags with
// Config.RegisterFlags. Use Config.NewGenerator to build the Generator
// those values describe.
type Config struct {
	OutputDir string
	RootName  string
	BaseName  string

	Flags Flags
}

// NewConfig returns a new Config with default flag names and defaults
// for OutputDir (".") and RootName ("struct root"); BaseName defaults
// from the input filename at run time when left empty.
func NewConfig() *Config {
	f := Flags{
		OutputDir: "o",
		RootName:  "r",
		BaseName:  "n",
	}

	c := f.NewConfig()
	c.OutputDir = "."
	c.RootName = "struct root"

	return c
}

// RegisterFlags adds generator flags to the given *pflag.FlagSet. Each
// flag is backed by a singleUseString rather than pflag's built-in
// string Value, so that repeating a flag on the command line
// (`-o a -o b`) is a duplicate-flag error instead of pflag's default
// last-value-wins behavior.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	outDir := &singleUseString{name: c.Flags.OutputDir, dest: &c.OutputDir}
	flags.VarP(outDir, c.Flags.OutputDir, "o", "output directory")

	root := &singleUseString{name: c.Flags.RootName, dest: &c.RootName}
	flags.VarP(root, c.Flags.RootName, "r", "root type spelling")

	base := &singleUseString{name: c.Flags.BaseName, dest: &c.BaseName}
	flags.VarP(base, c.Flags.BaseName, "n", "output base name (default: input filename stem + \"_loading\")")
}

// RegisterCompletions registers shell completions for generator flags
// on cmd. The output directory gets default filesystem completion; the
// root name and base name flags have no fixed completion set.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.RootName, noComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.RootName, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.BaseName, noComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.BaseName, err)
	}

	return nil
}

// ResolveBaseName applies the "input filename stem + _loading" default
// when BaseName was left empty.
func (c *Config) ResolveBaseName(inputPath string) string {
	if c.BaseName != "" {
		return c.BaseName
	}

	base := inputPath

	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}

	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	return base + "_loading"
}

// NewGenerator builds a Generator from this Config's values.
func (c *Config) NewGenerator() *Generator {
	return NewGenerator(WithRootName(c.RootName))
}
