package yamlctor_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := yamlctor.NewConfig()
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, "struct root", c.RootName)
	assert.Equal(t, "", c.BaseName)
}

func TestRegisterFlagsAcceptsEachFlagOnce(t *testing.T) {
	t.Parallel()

	c := yamlctor.NewConfig()
	flags := pflag.NewFlagSet("yamlctor", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{"-o", "out", "-r", "struct widget", "-n", "widget"}))
	assert.Equal(t, "out", c.OutputDir)
	assert.Equal(t, "struct widget", c.RootName)
	assert.Equal(t, "widget", c.BaseName)
}

func TestRegisterFlagsRejectsRepeatedFlag(t *testing.T) {
	t.Parallel()

	c := yamlctor.NewConfig()
	flags := pflag.NewFlagSet("yamlctor", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	err := flags.Parse([]string{"-o", "first", "-o", "second"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "duplicate flag")
}

func TestSingleUseStringRejectsRepeatedSetDirectly(t *testing.T) {
	t.Parallel()

	c := yamlctor.NewConfig()
	flags := pflag.NewFlagSet("yamlctor", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	v := flags.Lookup(c.Flags.OutputDir).Value
	require.NoError(t, v.Set("first"))

	err := v.Set("second")
	require.ErrorIs(t, err, yamlctor.ErrDuplicateFlag)
}

func TestResolveBaseName(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		baseName string
		input    string
		want     string
	}{
		"defaults from stem":        {"", "config.h", "config_loading"},
		"defaults with dir prefix":  {"", "/src/headers/config.h", "config_loading"},
		"explicit override honored": {"custom_base", "config.h", "custom_base"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := yamlctor.NewConfig()
			c.BaseName = tc.baseName

			assert.Equal(t, tc.want, c.ResolveBaseName(tc.input))
		})
	}
}
