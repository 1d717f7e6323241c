package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andaru/xsdleaf/convert"
	"github.com/andaru/xsdleaf/sheet"
)

func newConvertCmd(a *app, o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [schema.xsd]",
		Short: "Write the Hierarchy and Types tables of a schema to an xlsx workbook",
		Args:  schemaArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			path, err := schemaPath(a, args)
			if err != nil {
				return err
			}
			res, err := convert.ConvertFile(path, cfg.ConvertOptions())
			if err != nil {
				return err
			}
			out := outputPath(cfg, path)
			if err := sheet.WriteFile(out, res.Hierarchy, res.Types, cfg.SheetOptions(res.Source)); err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d rows, %d types, %d warnings\n",
				successMark(), out, len(res.Hierarchy.Rows), len(res.Types.Rows), len(res.Warnings))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "workbook path (default: schema path with .xlsx)")
	f.StringVar(&o.hierarchySheet, "hierarchy-sheet", "", "name of the Hierarchy sheet")
	f.StringVar(&o.typesSheet, "types-sheet", "", "name of the Types sheet")
	f.BoolVar(&o.formulas, "formulas", false, "write Full Path and Format cells as formulas")
	return cmd
}
