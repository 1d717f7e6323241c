// Package resolve flattens type derivation chains into resolved
// types: the primitive built-in at the root of the chain, the merged
// facets, the element content of complex types and the format token.
package resolve

import (
	"encoding/xml"

	"github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/andaru/xsdleaf/builtin"
	"github.com/andaru/xsdleaf/facet"
	"github.com/andaru/xsdleaf/format"
	"github.com/andaru/xsdleaf/schema"
	"github.com/andaru/xsdleaf/xmlutil"
	"github.com/andaru/xsdleaf/xsderr"
)

// DefaultCacheSize is the memo size used when New is given none
const DefaultCacheSize = 4096

// Resolved is a fully resolved type. Values are shared between
// callers and must not be modified.
type Resolved struct {
	// Name is the display name: the local name of a named type, the
	// synthetic name of an anonymous one, xs:local for a built-in.
	Name string
	// ID is NoType for built-in types
	ID schema.TypeID
	// Primitive is the local name of the built-in type the chain
	// starts from; anyType for complex types with element content.
	Primitive string
	Facets    facet.Set
	// Complex is set when the type has element content
	Complex bool
	// Content lists the model groups of a complex type in document
	// order, inherited groups of an extension first.
	Content []schema.GroupID
	Format  format.Token
}

// Classified reports whether a classification rule produced r's format
func (r *Resolved) Classified() bool { return r.Format != format.Any }

// Resolver resolves the types of one Schema. A Resolver belongs to a
// single conversion run and is not safe for concurrent use.
type Resolver struct {
	s        *schema.Schema
	memo     *lru.Cache[schema.TypeID, *Resolved]
	builtins map[string]*Resolved
	visiting map[schema.TypeID]bool
}

// New returns a Resolver for s memoizing up to cacheSize types
func New(s *schema.Schema, cacheSize int) *Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	memo, err := lru.New[schema.TypeID, *Resolved](cacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &Resolver{
		s:        s,
		memo:     memo,
		builtins: map[string]*Resolved{},
		visiting: map[schema.TypeID]bool{},
	}
}

// Schema returns the catalog r resolves against
func (r *Resolver) Schema() *schema.Schema { return r.s }

// Name resolves the type called name. Built-in types are recognized
// by the XML Schema namespace, or by local name when the catalog does
// not declare a type of that name.
func (r *Resolver) Name(name xml.Name) (*Resolved, error) {
	if name.Space == builtin.Namespace {
		if !builtin.Is(name.Local) {
			return nil, errors.WithStack(xsderr.UnresolvedType(builtin.DisplayName(name.Local)))
		}
		return r.builtin(name.Local), nil
	}
	id, err := r.s.Lookup(name)
	if err != nil {
		if builtin.Is(name.Local) {
			return r.builtin(name.Local), nil
		}
		return nil, err
	}
	return r.ID(id)
}

// Element resolves the type of the declaration e, which must not be
// a reference
func (r *Resolver) Element(e *schema.ElementDecl) (*Resolved, error) {
	if e.Inline != schema.NoType {
		return r.ID(e.Inline)
	}
	return r.Name(e.Type)
}

// ID resolves the type definition id. A type reached again while its
// own derivation chain is being resolved fails with a circular-type
// error; nothing is memoized for the types on that chain.
func (r *Resolver) ID(id schema.TypeID) (*Resolved, error) {
	if res, ok := r.memo.Get(id); ok {
		return res, nil
	}
	td := r.s.Type(id)
	if r.visiting[id] {
		return nil, errors.WithStack(xsderr.CircularType(td.DisplayName()))
	}
	r.visiting[id] = true
	defer delete(r.visiting, id)

	var base *Resolved
	var err error
	switch {
	case td.BaseInline != schema.NoType:
		base, err = r.ID(td.BaseInline)
	case !xmlutil.IsZero(td.Base):
		base, err = r.Name(td.Base)
	}
	if err != nil {
		return nil, err
	}

	res := &Resolved{Name: td.DisplayName(), ID: id}
	switch {
	case td.Kind == schema.KindSimple || td.SimpleContent:
		res.Primitive = builtinAnySimple
		res.Facets = td.Facets
		if base != nil {
			res.Primitive = base.Primitive
			res.Facets = facet.Merge(base.Facets, td.Facets)
		}
	default:
		res.Complex = true
		res.Primitive = builtinAnyType
		if base != nil && base.Complex && td.Derivation == schema.DerivationExtension {
			res.Content = append(res.Content, base.Content...)
		}
		if td.Content != schema.NoGroup {
			res.Content = append(res.Content, td.Content)
		}
	}
	res.Format = format.Classify(res.Primitive, res.Facets)
	if glog.V(2) {
		glog.Infof("resolved type %s: primitive=%s format=%s", res.Name, res.Primitive, res.Format)
	}
	r.memo.Add(id, res)
	return res, nil
}

const (
	builtinAnyType   = "anyType"
	builtinAnySimple = "anySimpleType"
)

func (r *Resolver) builtin(local string) *Resolved {
	if res, ok := r.builtins[local]; ok {
		return res
	}
	res := &Resolved{
		Name:      builtin.DisplayName(local),
		ID:        schema.NoType,
		Primitive: local,
	}
	res.Format = format.Classify(local, facet.Set{})
	r.builtins[local] = res
	return res
}
