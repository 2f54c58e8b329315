// Command yamlctor reads a C header annotated with yamlctor directives
// and writes the generated YAML loader header/implementation pair.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go.yamlctor.dev/yamlctor"
	"go.yamlctor.dev/yamlctor/diag"
	"go.yamlctor.dev/yamlctor/profile"
	"go.yamlctor.dev/yamlctor/version"
	"go.yamlctor.dev/yamlctor/xlog"
)

// ErrTooManyArguments indicates the command was not given exactly one
// input header (none, or more than one).
var ErrTooManyArguments = errors.New("too many arguments")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		diag.NewReporter(os.Stderr).Report(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	genCfg := yamlctor.NewConfig()
	logCfg := xlog.NewConfig()
	profCfg := profile.NewConfig()

	cmd := &cobra.Command{
		Use:   "yamlctor <header> [-- parse-option...]",
		Short: "generate a YAML loader from an annotated C header",
		Long: "yamlctor reads a C header annotated with !optional, !default, !repr, !custom,\n" +
			"and !ignored directives and writes the generated loader header and\n" +
			"implementation that parse YAML documents directly into the header's types.\n\n" +
			"Arguments after a literal \"--\" are collected as extra parse options,\n" +
			"after a standard \"language dialect = C11\" option, and logged at debug\n" +
			"level; the built-in header parser takes no parse options, so they do\n" +
			"not change how the header is read.",
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputArgs, dialectOpts := splitAtDash(cmd, args)

			if len(inputArgs) == 0 {
				return fmt.Errorf("%w: missing input header", ErrTooManyArguments)
			}

			if len(inputArgs) > 1 {
				return fmt.Errorf("%w: %v", ErrTooManyArguments, inputArgs[1:])
			}

			return run(cmd, inputArgs[0], genCfg, logCfg, profCfg, dialectOpts)
		},
	}

	genCfg.RegisterFlags(cmd.Flags())
	logCfg.RegisterFlags(cmd.Flags())
	profCfg.RegisterFlags(cmd.Flags())

	if err := genCfg.RegisterCompletions(cmd); err != nil {
		panic(err)
	}

	if err := logCfg.RegisterCompletions(cmd); err != nil {
		panic(err)
	}

	if err := profCfg.RegisterCompletions(cmd); err != nil {
		panic(err)
	}

	return cmd
}

// splitAtDash separates the leading positional arguments from anything
// given after a literal "--", which cobra records via ArgsLenAtDash.
func splitAtDash(cmd *cobra.Command, args []string) (leading, trailing []string) {
	at := cmd.ArgsLenAtDash()
	if at < 0 {
		return args, nil
	}

	return args[:at], args[at:]
}

func run(cmd *cobra.Command, inputPath string, genCfg *yamlctor.Config, logCfg *xlog.Config, profCfg *profile.Config, dialectOpts []string) error {
	handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	prof := profCfg.NewProfiler()
	if err := prof.Start(); err != nil {
		return err
	}

	defer func() {
		if err := prof.Stop(); err != nil {
			logger.Error("stopping profiler", "error", err)
		}
	}()

	parseOpts := append([]string{"language dialect = C11"}, dialectOpts...)
	logger.Debug("parse options", "options", parseOpts)

	src, err := os.ReadFile(inputPath) //nolint:gosec
	if err != nil {
		return fmt.Errorf("%w: %w", yamlctor.ErrReadInput, err)
	}

	gen := yamlctor.NewGenerator(
		yamlctor.WithRootName(genCfg.RootName),
		yamlctor.WithInputHeaderName(filepath.Base(inputPath)),
		yamlctor.WithLogger(logger),
	)

	baseName := genCfg.ResolveBaseName(inputPath)

	header, impl, err := gen.Generate(inputPath, string(src))
	if err != nil {
		return err
	}

	if err := writeOutputs(genCfg.OutputDir, baseName, header, impl); err != nil {
		return err
	}

	logger.Info("generated loader", "base", baseName, "output", genCfg.OutputDir)

	return nil
}

func writeOutputs(dir, base, header, impl string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", yamlctor.ErrWriteOutput, err)
	}

	headerPath := filepath.Join(dir, base+".h")
	implPath := filepath.Join(dir, base+".c")

	if err := os.WriteFile(headerPath, []byte(header), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("%w: %w", yamlctor.ErrWriteOutput, err)
	}

	if err := os.WriteFile(implPath, []byte(impl), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("%w: %w", yamlctor.ErrWriteOutput, err)
	}

	return nil
}
