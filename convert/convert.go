// Package convert runs one schema-to-tables conversion: load the
// type catalog, walk its leaves, aggregate their types and build the
// Hierarchy and Types tables.
package convert

import (
	"io"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/andaru/xsdleaf/resolve"
	"github.com/andaru/xsdleaf/schema"
	"github.com/andaru/xsdleaf/table"
	"github.com/andaru/xsdleaf/walk"
	"github.com/andaru/xsdleaf/xsderr"
)

// Options configure a conversion
type Options struct {
	// Root names the single top-level element to convert
	Root               string
	MaxDepth           int
	CacheSize          int
	InheritConditional bool
	Table              table.Options
}

// Result is the output of a successful conversion
type Result struct {
	// Source is the base name of the converted file, if any
	Source string
	// CatalogTypes counts the type definitions of the schema, named
	// and anonymous, whether or not a leaf uses them
	CatalogTypes int
	Leaves       []walk.Leaf
	Summaries    []table.TypeSummary
	Hierarchy    table.Table
	Types        table.Table
	// Warnings lists the non-fatal conditions met, in order
	Warnings []*xsderr.Error
}

// ConvertFile converts the schema document at path
func ConvertFile(path string, opts Options) (*Result, error) {
	s, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := Schema(s, opts)
	if err != nil {
		return nil, err
	}
	res.Source = filepath.Base(path)
	return res, nil
}

// Convert converts the schema document read from r
func Convert(r io.Reader, opts Options) (*Result, error) {
	s, err := schema.Load(r)
	if err != nil {
		return nil, err
	}
	return Schema(s, opts)
}

// Schema converts a loaded catalog. Each call uses a fresh resolver,
// so repeated conversions share no state. A fatal error yields no
// partial result.
func Schema(s *schema.Schema, opts Options) (*Result, error) {
	r := resolve.New(s, opts.CacheSize)
	w := walk.New(r, walk.Options{
		Root:               opts.Root,
		MaxDepth:           opts.MaxDepth,
		InheritConditional: opts.InheritConditional,
	})

	res := &Result{CatalogTypes: s.NumTypes()}
	err := w.Walk(func(l walk.Leaf) error {
		res.Leaves = append(res.Leaves, l)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "converting schema")
	}
	res.Warnings = w.Warnings()
	if len(res.Leaves) == 0 {
		glog.Warningf("convert: schema has no leaf elements")
	}
	res.Summaries = table.Aggregate(res.Leaves)
	res.Hierarchy = table.Hierarchy(res.Leaves, opts.Table)
	res.Types = table.Types(res.Summaries, opts.Table)
	glog.V(1).Infof("convert: %d leaves, %d of %d types, %d warnings",
		len(res.Leaves), len(res.Summaries), res.CatalogTypes, len(res.Warnings))
	return res, nil
}
