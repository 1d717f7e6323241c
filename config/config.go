// Package config loads conversion settings from xsdleaf.yaml, a .env
// file and XSDLEAF_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/andaru/xsdleaf/convert"
	"github.com/andaru/xsdleaf/sheet"
	"github.com/andaru/xsdleaf/table"
	"github.com/andaru/xsdleaf/walk"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// FileName is the config file looked up in the working directory
const FileName = "xsdleaf.yaml"

// EnvPrefix prefixes the environment variable of every key
const EnvPrefix = "XSDLEAF_"

// Config holds every setting of a conversion
type Config struct {
	Root               string `yaml:"root,omitempty"`
	MaxDepth           int    `yaml:"max_depth"`
	CacheSize          int    `yaml:"cache_size"`
	InheritConditional bool   `yaml:"inherit_conditional"`
	ShowOccurrence     bool   `yaml:"show_occurrence"`
	EnumSeparator      string `yaml:"enum_separator"`
	Output             string `yaml:"output,omitempty"`
	HierarchySheet     string `yaml:"hierarchy_sheet"`
	TypesSheet         string `yaml:"types_sheet"`
	Formulas           bool   `yaml:"formulas"`
}

// Default returns the settings used when nothing overrides them
func Default() *Config {
	return &Config{
		MaxDepth:       walk.DefaultMaxDepth,
		EnumSeparator:  table.DefaultEnumSeparator,
		HierarchySheet: table.HierarchyName,
		TypesSheet:     table.TypesName,
	}
}

// Load reads the config file at path over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, errors.Wrap(err, "reading config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filepath.Base(path))
	}
	return cfg, nil
}

// Resolve builds the effective config: defaults, then the config file,
// then the environment. The .env file of the working directory is
// loaded into the environment first. With an empty path, FileName is
// used when present; an explicit path must exist.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	cfg, err := Load(path)
	switch {
	case errors.Is(err, ErrConfigNotFound) && !explicit:
		cfg = Default()
	case err != nil:
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LookupFunc finds the value of an environment variable
type LookupFunc func(key string) (string, bool)

// EnvFile returns a LookupFunc over the variables of a .env file,
// without touching the process environment
func EnvFile(path string) (LookupFunc, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading env file")
	}
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides c with the XSDLEAF_<KEY> variables lookup finds
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, f := range c.fields() {
		v, ok := lookup(EnvPrefix + strings.ToUpper(f.key))
		if !ok {
			continue
		}
		if err := f.set(v); err != nil {
			return errors.Wrapf(err, "%s%s", EnvPrefix, strings.ToUpper(f.key))
		}
	}
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch {
	case c.MaxDepth < 0:
		return errors.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	case c.CacheSize < 0:
		return errors.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	case c.HierarchySheet == "" || c.TypesSheet == "":
		return errors.New("sheet names must not be empty")
	case c.HierarchySheet == c.TypesSheet:
		return errors.Errorf("hierarchy_sheet and types_sheet are both %q", c.TypesSheet)
	}
	for _, n := range []string{c.HierarchySheet, c.TypesSheet} {
		if len([]rune(n)) > sheet.MaxSheetName {
			return errors.Errorf("sheet name %q longer than %d characters", n, sheet.MaxSheetName)
		}
	}
	return nil
}

// ConvertOptions returns the conversion settings of c
func (c *Config) ConvertOptions() convert.Options {
	return convert.Options{
		Root:               c.Root,
		MaxDepth:           c.MaxDepth,
		CacheSize:          c.CacheSize,
		InheritConditional: c.InheritConditional,
		Table: table.Options{
			ShowOccurrence: c.ShowOccurrence,
			EnumSeparator:  c.EnumSeparator,
		},
	}
}

// SheetOptions returns the workbook settings of c for a source file
func (c *Config) SheetOptions(source string) sheet.Options {
	return sheet.Options{
		HierarchySheet: c.HierarchySheet,
		TypesSheet:     c.TypesSheet,
		Source:         source,
		Formulas:       c.Formulas,
	}
}

type field struct {
	key string
	set func(string) error
}

func (c *Config) fields() []field {
	return []field{
		{"root", setString(&c.Root)},
		{"max_depth", setInt(&c.MaxDepth)},
		{"cache_size", setInt(&c.CacheSize)},
		{"inherit_conditional", setBool(&c.InheritConditional)},
		{"show_occurrence", setBool(&c.ShowOccurrence)},
		{"enum_separator", setString(&c.EnumSeparator)},
		{"output", setString(&c.Output)},
		{"hierarchy_sheet", setString(&c.HierarchySheet)},
		{"types_sheet", setString(&c.TypesSheet)},
		{"formulas", setBool(&c.Formulas)},
	}
}

func setString(p *string) func(string) error {
	return func(v string) error {
		*p = v
		return nil
	}
}

func setInt(p *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Errorf("invalid integer %q", v)
		}
		*p = n
		return nil
	}
}

func setBool(p *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.Errorf("invalid boolean %q", v)
		}
		*p = b
		return nil
	}
}
