// Package walk discovers the leaf elements of a schema by recursive
// descent over its element and model group structure.
package walk

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/andaru/xsdleaf/format"
	"github.com/andaru/xsdleaf/resolve"
	"github.com/andaru/xsdleaf/schema"
	"github.com/andaru/xsdleaf/status"
	"github.com/andaru/xsdleaf/xsderr"
)

// DefaultMaxDepth bounds the path length when Options.MaxDepth is unset
const DefaultMaxDepth = 64

var (
	// ErrStop may be returned by a yield function to end a walk early
	// without error
	ErrStop = errors.New("stop walk")
	// ErrWalked is returned when Walk is called a second time
	ErrWalked = errors.New("walker already used")
)

// Options control a walk
type Options struct {
	// Root restricts the walk to the top-level element of this name;
	// every top-level element is walked when empty.
	Root string
	// MaxDepth is the longest path descended before a branch is
	// truncated
	MaxDepth int
	// InheritConditional makes mandatory descendants of optional or
	// conditional elements conditional
	InheritConditional bool
}

// Walker produces the leaves of one schema, once. Use New for each
// traversal.
type Walker struct {
	s    *schema.Schema
	r    *resolve.Resolver
	opts Options

	used     bool
	seen     map[string]bool
	types    []schema.TypeID
	groups   map[schema.GroupID]bool
	warned   map[string]bool
	warnings []*xsderr.Error
}

// New returns a Walker over the schema r resolves against
func New(r *resolve.Resolver, opts Options) *Walker {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Walker{
		s:      r.Schema(),
		r:      r,
		opts:   opts,
		seen:   map[string]bool{},
		groups: map[schema.GroupID]bool{},
		warned: map[string]bool{},
	}
}

// Warnings returns the non-fatal conditions met so far, in the order
// they occurred
func (w *Walker) Warnings() []*xsderr.Error { return w.warnings }

// Walk calls yield with each leaf in document order. Leaves whose
// full path was already produced are skipped. The walk ends at the
// first error from yield; ErrStop ends it without error. Fatal
// resolution errors abort the walk and are returned.
func (w *Walker) Walk(yield func(Leaf) error) error {
	if w.used {
		return errors.WithStack(ErrWalked)
	}
	w.used = true

	roots := w.s.Roots()
	if w.opts.Root != "" {
		id, err := w.s.Root(w.opts.Root)
		if err != nil {
			return err
		}
		roots = []schema.ElementID{id}
	}
	top := status.Context{Kind: schema.Sequence, Particles: 1}
	for _, id := range roots {
		e := w.s.Element(id)
		if err := w.element(e, nil, status.Of(e.MinOccurs, top), "", yield); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// element walks the element declared or referenced by site. code is
// the obligation site has in its group, parent that of the enclosing
// element.
func (w *Walker) element(site *schema.ElementDecl, path []Segment, code, parent status.Code, yield func(Leaf) error) error {
	decl := site
	if site.IsRef() {
		id, err := w.s.LookupElement(site.Ref)
		if err != nil {
			return err
		}
		decl = w.s.Element(id)
	}
	path = append(path[:len(path):len(path)], Segment{
		Name:      site.Name,
		MinOccurs: site.MinOccurs,
		MaxOccurs: site.MaxOccurs,
	})
	if w.opts.InheritConditional {
		code = status.Inherit(code, parent)
	}

	typ, err := w.r.Element(decl)
	if err != nil {
		e, ok := xsderr.As(err)
		if !ok || e.Kind != xsderr.KindCircularType {
			return err
		}
		w.warn(xsderr.CircularType(e.Type,
			xsderr.WithSeverity(xsderr.SeverityWarning), xsderr.WithPath(joinPath(path))))
		stub := &resolve.Resolved{Name: e.Type, ID: schema.NoType, Format: format.Any}
		return w.emit(Leaf{Path: path, Type: stub, Status: code, Format: format.Any, Truncated: true}, yield)
	}

	if !typ.Complex {
		if !typ.Classified() && !w.warned[typ.Name] {
			w.warned[typ.Name] = true
			w.warn(xsderr.UnclassifiedFormat(typ.Name, xsderr.WithPath(joinPath(path))))
		}
		return w.emit(Leaf{Path: path, Type: typ, Status: code, Format: typ.Format}, yield)
	}

	if w.onPath(typ.ID) || len(path) > w.opts.MaxDepth {
		w.warn(xsderr.RecursionBound(typ.Name, joinPath(path)))
		return w.emit(Leaf{Path: path, Type: typ, Status: code, Format: format.Any, Truncated: true}, yield)
	}
	w.types = append(w.types, typ.ID)
	outer := w.groups
	w.groups = map[schema.GroupID]bool{}
	defer func() {
		w.types = w.types[:len(w.types)-1]
		w.groups = outer
	}()

	children := 0
	for _, gid := range typ.Content {
		g := w.s.Group(gid)
		n, err := w.group(gid, status.GroupContext(g), path, code, yield)
		children += n
		if err != nil {
			return err
		}
	}
	if children == 0 {
		// wildcard-only or empty content
		return w.emit(Leaf{Path: path, Type: typ, Status: code, Format: format.Any}, yield)
	}
	return nil
}

// group walks the particles of group id in context ctx and returns
// the number of element particles met
func (w *Walker) group(id schema.GroupID, ctx status.Context, path []Segment, parent status.Code, yield func(Leaf) error) (int, error) {
	if w.groups[id] {
		// a named group containing a reference to itself, with no
		// element in between
		w.warn(xsderr.RecursionBound("", joinPath(path),
			xsderr.WithMessage(fmt.Sprintf("model group %d nested in itself", id))))
		return 0, nil
	}
	w.groups[id] = true
	defer delete(w.groups, id)

	elements := 0
	for _, p := range w.s.Group(id).Particles {
		switch p.Kind {
		case schema.ParticleElement, schema.ParticleElementRef:
			elements++
			e := w.s.Element(p.Element)
			if err := w.element(e, path, status.Of(e.MinOccurs, ctx), parent, yield); err != nil {
				return elements, err
			}
		case schema.ParticleGroup, schema.ParticleGroupRef:
			inner := p.Group
			if p.Kind == schema.ParticleGroupRef {
				var err error
				if inner, err = w.s.LookupGroup(p.Ref); err != nil {
					return elements, err
				}
			}
			n, err := w.group(inner, ctx.Nest(w.s.Group(inner), p.MinOccurs), path, parent, yield)
			elements += n
			if err != nil {
				return elements, err
			}
		case schema.ParticleAny:
			// wildcards name no element of their own
		default:
			panic(fmt.Sprintf("walk: unexpected particle kind %v", p.Kind))
		}
	}
	return elements, nil
}

func (w *Walker) onPath(id schema.TypeID) bool {
	for _, t := range w.types {
		if t == id {
			return true
		}
	}
	return false
}

func (w *Walker) emit(l Leaf, yield func(Leaf) error) error {
	key := l.FullPath()
	if w.seen[key] {
		glog.V(1).Infof("walk: skipping duplicate path %s", key)
		return nil
	}
	w.seen[key] = true
	if glog.V(2) {
		glog.Infof("walk: leaf %s type=%s status=%s format=%s", key, l.Type.Name, l.Status, l.Format)
	}
	return yield(l)
}

func (w *Walker) warn(e *xsderr.Error) {
	glog.V(1).Infof("walk: %v", e)
	w.warnings = append(w.warnings, e)
}
