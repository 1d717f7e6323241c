// Package sheet writes the Hierarchy and Types tables to an xlsx
// workbook.
package sheet

import (
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/andaru/xsdleaf/table"
)

// MaxSheetName is the longest sheet name a workbook accepts
const MaxSheetName = 31

// Options control the workbook layout
type Options struct {
	// HierarchySheet and TypesSheet override the table names
	HierarchySheet string
	TypesSheet     string
	// Source is written above the Hierarchy header, in cell A1
	Source string
	// Formulas makes the Full Path and Format cells of the Hierarchy
	// sheet formulas over the Level columns and the Types sheet
	Formulas bool
}

const (
	hierarchyHeaderRow = 2
	typesHeaderRow     = 1
)

// WriteFile writes the workbook to path
func WriteFile(path string, hierarchy, types table.Table, opts Options) error {
	f, err := build(hierarchy, types, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "saving workbook")
	}
	glog.V(1).Infof("sheet: wrote %s", path)
	return nil
}

// Write writes the workbook to w
func Write(w io.Writer, hierarchy, types table.Table, opts Options) error {
	f, err := build(hierarchy, types, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func build(hierarchy, types table.Table, opts Options) (*excelize.File, error) {
	hname := pick(opts.HierarchySheet, hierarchy.Name, table.HierarchyName)
	tname := pick(opts.TypesSheet, types.Name, table.TypesName)
	if err := checkNames(hname, tname); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			f.Close()
		}
	}()
	if err := f.SetSheetName(f.GetSheetName(0), hname); err != nil {
		return nil, errors.Wrap(err, "naming hierarchy sheet")
	}
	if _, err := f.NewSheet(tname); err != nil {
		return nil, errors.Wrap(err, "adding types sheet")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if opts.Source != "" {
		if err := f.SetCellValue(hname, "A1", opts.Source); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if err := writeTable(f, hname, hierarchy, hierarchyHeaderRow, bold); err != nil {
		return nil, err
	}
	if opts.Formulas {
		if err := hierarchyFormulas(f, hname, tname, hierarchy); err != nil {
			return nil, err
		}
	}
	if err := writeTable(f, tname, types, typesHeaderRow, bold); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	ok = true
	return f, nil
}

func pick(names ...string) string {
	for _, n := range names {
		if n != "" {
			return n
		}
	}
	return ""
}

func checkNames(names ...string) error {
	for _, n := range names {
		if len([]rune(n)) > MaxSheetName {
			return errors.Errorf("sheet name %q longer than %d characters", n, MaxSheetName)
		}
		if strings.ContainsAny(n, `:\/?*[]`) {
			return errors.Errorf("sheet name %q contains an invalid character", n)
		}
	}
	if names[0] == names[1] {
		return errors.Errorf("hierarchy and types sheets are both named %q", names[0])
	}
	return nil
}

// writeTable writes t's header at headerRow and its rows below
func writeTable(f *excelize.File, sheet string, t table.Table, headerRow int, style int) error {
	if err := setRow(f, sheet, headerRow, t.Header); err != nil {
		return err
	}
	if len(t.Header) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		last, _ := excelize.CoordinatesToCellName(len(t.Header), headerRow)
		if err := f.SetCellStyle(sheet, first, last, style); err != nil {
			return errors.WithStack(err)
		}
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, headerRow+1+i, row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: "A" + strconv.Itoa(headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.WithStack(err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return errors.WithStack(f.SetSheetRow(sheet, cell, &values))
}

// hierarchyFormulas replaces the Full Path cells with a concatenation
// of the Level cells and the Format cells with a lookup of the type
// name in the Types sheet
func hierarchyFormulas(f *excelize.File, sheet, typesSheet string, t table.Table) error {
	pathCol := t.Column(table.ColFullPath)
	typeCol := t.Column(table.ColTypeName)
	formatCol := t.Column(table.ColFormat)
	if pathCol < 0 || typeCol < 0 || formatCol < 0 {
		return errors.New("hierarchy table lacks the Full Path, Type name or Format column")
	}
	lookupRange := "'" + strings.ReplaceAll(typesSheet, "'", "''") + "'!$A:$H"

	for i := range t.Rows {
		row := hierarchyHeaderRow + 1 + i
		parts := make([]string, 0, t.Levels)
		for col := 1; col <= t.Levels; col++ {
			ref, _ := excelize.CoordinatesToCellName(col, row)
			if col == 1 {
				parts = append(parts, `IF(`+ref+`="","",`+ref+`)`)
			} else {
				parts = append(parts, `IF(`+ref+`="","","/" & `+ref+`)`)
			}
		}
		if len(parts) > 0 {
			cell, _ := excelize.CoordinatesToCellName(pathCol+1, row)
			if err := f.SetCellFormula(sheet, cell, strings.Join(parts, " & ")); err != nil {
				return errors.WithStack(err)
			}
		}

		typeRef, _ := excelize.CoordinatesToCellName(typeCol+1, row)
		lookup := "VLOOKUP(" + typeRef + "," + lookupRange + ",2,FALSE)"
		cell, _ := excelize.CoordinatesToCellName(formatCol+1, row)
		if err := f.SetCellFormula(sheet, cell, `IFERROR(IF(`+lookup+`="","ERROR",`+lookup+`),"ERROR")`); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
