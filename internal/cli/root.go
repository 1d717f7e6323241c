// Package cli implements the xsdleaf command line.
package cli

import (
	goflag "flag"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/andaru/xsdleaf/config"
)

// app holds the terminal collaborators of the commands
type app struct {
	interactive func() bool
	prompt      func() (string, error)
}

// options holds the flag values shared by the commands
type options struct {
	configPath         string
	envFile            string
	root               string
	maxDepth           int
	cacheSize          int
	inheritConditional bool
	showOccurrence     bool
	enumSeparator      string

	output         string
	hierarchySheet string
	typesSheet     string
	formulas       bool

	types bool
}

// Execute runs the command line with args
func Execute(args []string) error {
	cmd := newRootCmd(&app{interactive: isInteractive, prompt: promptSchemaFile})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "xsdleaf",
		Short: "List the leaf fields of an XML Schema",
		Long: `xsdleaf converts an XML Schema document into two tables: the
Hierarchy of every leaf element with its path, obligation code (M/O/C)
and format token, and the Types used by those leaves.

Settings come from xsdleaf.yaml, .env and XSDLEAF_* environment
variables, then the file given by --env-file; flags override them.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error
  10 - Invalid configuration
  20 - Malformed schema
  21 - Unresolved type reference`,
		SilenceUsage: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default ./"+config.FileName+" when present)")
	pf.StringVar(&o.envFile, "env-file", "", "read XSDLEAF_* settings from this file over the environment")
	pf.StringVar(&o.root, "root", "", "convert only the top-level element of this name")
	pf.IntVar(&o.maxDepth, "max-depth", 0, "longest element path descended")
	pf.IntVar(&o.cacheSize, "cache-size", 0, "resolved type cache size")
	pf.BoolVar(&o.inheritConditional, "inherit-conditional", false, "mark mandatory descendants of optional elements conditional")
	pf.BoolVar(&o.showOccurrence, "show-occurrence", false, "show [min...max] on repeating path elements")
	pf.StringVar(&o.enumSeparator, "enum-separator", "", "separator of enumeration values")
	pf.AddGoFlagSet(goflag.CommandLine)

	cmd.AddCommand(
		newConvertCmd(a, o),
		newShowCmd(a, o),
		newVersionCmd(),
	)
	return cmd
}

// schemaArgs accepts at most one schema file argument
func schemaArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return usageErr(err)
	}
	return nil
}

// loadConfig resolves the config and applies the flags the user set
func loadConfig(cmd *cobra.Command, o *options) (*config.Config, error) {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, configErr(err)
	}
	if o.envFile != "" {
		lookup, err := config.EnvFile(o.envFile)
		if err != nil {
			return nil, configErr(err)
		}
		if err := cfg.ApplyEnv(lookup); err != nil {
			return nil, configErr(err)
		}
	}
	fs := cmd.Flags()
	if fs.Changed("root") {
		cfg.Root = o.root
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth = o.maxDepth
	}
	if fs.Changed("cache-size") {
		cfg.CacheSize = o.cacheSize
	}
	if fs.Changed("inherit-conditional") {
		cfg.InheritConditional = o.inheritConditional
	}
	if fs.Changed("show-occurrence") {
		cfg.ShowOccurrence = o.showOccurrence
	}
	if fs.Changed("enum-separator") {
		cfg.EnumSeparator = o.enumSeparator
	}
	if fs.Changed("output") {
		cfg.Output = o.output
	}
	if fs.Changed("hierarchy-sheet") {
		cfg.HierarchySheet = o.hierarchySheet
	}
	if fs.Changed("types-sheet") {
		cfg.TypesSheet = o.typesSheet
	}
	if fs.Changed("formulas") {
		cfg.Formulas = o.formulas
	}
	if err := cfg.Validate(); err != nil {
		return nil, configErr(err)
	}
	return cfg, nil
}

// schemaPath returns the schema file argument, prompting for one on
// an interactive terminal
func schemaPath(a *app, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if a.interactive == nil || !a.interactive() {
		return "", usageErr(errors.New("no schema file given"))
	}
	return a.prompt()
}

// outputPath returns the workbook path: the configured one, else the
// schema path with an .xlsx extension
func outputPath(cfg *config.Config, schema string) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return strings.TrimSuffix(schema, filepath.Ext(schema)) + ".xlsx"
}
