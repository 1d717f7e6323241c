package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/andaru/xsdleaf/convert"
	"github.com/andaru/xsdleaf/table"
)

var (
	showTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	showHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	showCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	showBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newShowCmd(a *app, o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [schema.xsd]",
		Short: "Print the Hierarchy (or Types) table of a schema",
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
			t := res.Hierarchy
			if o.types {
				t = res.Types
			}
			renderTable(cmd.OutOrStdout(), res.Source, t)
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			return nil
		},
	}
	cmd.Flags().BoolVar(&o.types, "types", false, "print the Types table")
	return cmd
}

func renderTable(w io.Writer, source string, t table.Table) {
	fmt.Fprintln(w, showTitleStyle.Render(source+" · "+t.Name))
	lt := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(showBorderStyle).
		Headers(t.Header...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return showHeaderStyle
			}
			return showCellStyle
		})
	fmt.Fprintln(w, lt.Render())
}
