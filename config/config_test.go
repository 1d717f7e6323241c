package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andaru/xsdleaf/table"
	"github.com/andaru/xsdleaf/walk"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	check := assert.New(t)
	path := writeFile(t, t.TempDir(), FileName, `
root: Document
max_depth: 12
show_occurrence: true
types_sheet: Datatypes
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	check.Equal("Document", cfg.Root)
	check.Equal(12, cfg.MaxDepth)
	check.True(cfg.ShowOccurrence)
	check.Equal("Datatypes", cfg.TypesSheet)
	// unset keys keep their defaults
	check.Equal(table.HierarchyName, cfg.HierarchySheet)
	check.Equal(table.DefaultEnumSeparator, cfg.EnumSeparator)
	check.False(cfg.InheritConditional)
}

func TestLoadErrors(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	check.True(errors.Is(err, ErrConfigNotFound))

	_, err = Load(writeFile(t, dir, "bad.yaml", "max_depth: [1, 2"))
	check.Error(err)
	check.False(errors.Is(err, ErrConfigNotFound))
}

func TestApplyEnv(t *testing.T) {
	check := assert.New(t)
	env := map[string]string{
		"XSDLEAF_MAX_DEPTH":           "8",
		"XSDLEAF_INHERIT_CONDITIONAL": "true",
		"XSDLEAF_ENUM_SEPARATOR":      ", ",
		"XSDLEAF_OUTPUT":              "out.xlsx",
		"OTHER":                       "ignored",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	check.Equal(8, cfg.MaxDepth)
	check.True(cfg.InheritConditional)
	check.Equal(", ", cfg.EnumSeparator)
	check.Equal("out.xlsx", cfg.Output)

	err := cfg.ApplyEnv(func(k string) (string, bool) {
		return "lots", k == "XSDLEAF_CACHE_SIZE"
	})
	check.EqualError(err, `XSDLEAF_CACHE_SIZE: invalid integer "lots"`)
}

func TestEnvFile(t *testing.T) {
	check := assert.New(t)
	path := writeFile(t, t.TempDir(), ".env", "# settings\nXSDLEAF_ROOT=Message\nXSDLEAF_FORMULAS=1\n")
	lookup, err := EnvFile(path)
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	check.Equal("Message", cfg.Root)
	check.True(cfg.Formulas)

	_, err = EnvFile(filepath.Join(t.TempDir(), ".env"))
	check.Error(err)
}

func TestResolve(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XSDLEAF_TYPES_SHEET", "FromEnv")

	cfg, err := Resolve("")
	require.NoError(t, err)
	check.Equal(walk.DefaultMaxDepth, cfg.MaxDepth)
	check.Equal("FromEnv", cfg.TypesSheet)

	writeFile(t, dir, FileName, "max_depth: 5\ntypes_sheet: FromFile\n")
	cfg, err = Resolve("")
	require.NoError(t, err)
	check.Equal(5, cfg.MaxDepth)
	check.Equal("FromEnv", cfg.TypesSheet)

	_, err = Resolve(filepath.Join(dir, "other.yaml"))
	check.True(errors.Is(err, ErrConfigNotFound))
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"negative cache", func(c *Config) { c.CacheSize = -1 }},
		{"empty sheet", func(c *Config) { c.TypesSheet = "" }},
		{"same sheets", func(c *Config) { c.TypesSheet = c.HierarchySheet }},
		{"long sheet", func(c *Config) { c.HierarchySheet = "abcdefghijklmnopqrstuvwxyz0123456789" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestOptions(t *testing.T) {
	check := assert.New(t)
	cfg := Default()
	cfg.Root, cfg.ShowOccurrence, cfg.Formulas = "Doc", true, true
	opts := cfg.ConvertOptions()
	check.Equal("Doc", opts.Root)
	check.Equal(walk.DefaultMaxDepth, opts.MaxDepth)
	check.True(opts.Table.ShowOccurrence)

	so := cfg.SheetOptions("doc.xsd")
	check.Equal("doc.xsd", so.Source)
	check.True(so.Formulas)
	check.Equal(table.TypesName, so.TypesSheet)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
