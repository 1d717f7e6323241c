// Package table turns walked leaves into the Hierarchy and Types
// tables handed to the spreadsheet writer.
package table

import (
	"strconv"
	"strings"

	"github.com/andaru/xsdleaf/facet"
	"github.com/andaru/xsdleaf/format"
	"github.com/andaru/xsdleaf/walk"
)

// Default sheet names
const (
	HierarchyName = "Hierarchy"
	TypesName     = "Types"
)

// Column headers following the Level columns of the Hierarchy table
const (
	ColFullPath     = "Full Path"
	ColTypeName     = "Type name"
	ColStatus       = "ISO Status"
	ColFormat       = "Format"
	ColPatterns     = "Patterns"
	ColEnumerations = "Enumerations"
)

// TypesHeader is the header row of the Types table
var TypesHeader = []string{
	"type", "format", "minLength", "maxLength", "totalDigits", "fractionDigits", "pattern", "enumeration",
}

// DefaultEnumSeparator joins enumeration values in a single cell
const DefaultEnumSeparator = "; "

// Options control how cells are rendered
type Options struct {
	// ShowOccurrence renders repeating non-leaf path segments as
	// Name[min...max]
	ShowOccurrence bool
	EnumSeparator  string
}

func (o Options) separator() string {
	if o.EnumSeparator == "" {
		return DefaultEnumSeparator
	}
	return o.EnumSeparator
}

// Table is a named header and rows of string cells. Every row has as
// many cells as the header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	// Levels is the number of leading Level columns, zero for tables
	// without them
	Levels int
}

// Column returns the index of the header named name, or -1
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// TypeSummary is the Types table record of one type
type TypeSummary struct {
	Name   string
	Format format.Token
	Facets facet.Set
}

// Aggregate returns one TypeSummary per distinct type name of leaves,
// in first-seen order, reusing each leaf's resolved type.
func Aggregate(leaves []walk.Leaf) []TypeSummary {
	seen := map[string]bool{}
	var out []TypeSummary
	for i := range leaves {
		typ := leaves[i].Type
		if seen[typ.Name] {
			continue
		}
		seen[typ.Name] = true
		out = append(out, TypeSummary{Name: typ.Name, Format: typ.Format, Facets: typ.Facets})
	}
	return out
}

// Hierarchy builds the Hierarchy table: Level 1..N, where N is the
// deepest leaf path, followed by the leaf columns. Levels beyond a
// leaf's own depth are empty.
func Hierarchy(leaves []walk.Leaf, opts Options) Table {
	levels := 0
	for i := range leaves {
		if d := leaves[i].Depth(); d > levels {
			levels = d
		}
	}
	t := Table{Name: HierarchyName, Levels: levels}
	for i := 1; i <= levels; i++ {
		t.Header = append(t.Header, "Level "+strconv.Itoa(i))
	}
	t.Header = append(t.Header, ColFullPath, ColTypeName, ColStatus, ColFormat, ColPatterns, ColEnumerations)

	for i := range leaves {
		l := &leaves[i]
		row := make([]string, 0, len(t.Header))
		for j, seg := range l.Path {
			name := seg.Name
			if opts.ShowOccurrence && j < len(l.Path)-1 && seg.Repeats() {
				name = seg.Occurrence()
			}
			row = append(row, name)
		}
		full := strings.Join(row, "/")
		for len(row) < levels {
			row = append(row, "")
		}
		row = append(row,
			full,
			l.Type.Name,
			string(l.Status),
			string(l.Format),
			l.Pattern(),
			strings.Join(l.Enumeration(), opts.separator()),
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Types builds the Types table from aggregated summaries
func Types(types []TypeSummary, opts Options) Table {
	t := Table{Name: TypesName, Header: append([]string(nil), TypesHeader...)}
	for _, ts := range types {
		fs := ts.Facets
		t.Rows = append(t.Rows, []string{
			ts.Name,
			string(ts.Format),
			fs.MinLength.String(),
			fs.MaxLength.String(),
			fs.TotalDigits.String(),
			fs.FractionDigits.String(),
			fs.Pattern,
			strings.Join(fs.Enumeration(), opts.separator()),
		})
	}
	return t
}
