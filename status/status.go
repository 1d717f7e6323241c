// Package status assigns the obligation code of an element: M
// (mandatory), O (optional) or C (conditional).
package status

import (
	"github.com/andaru/xsdleaf/schema"
)

// Code is an obligation code
type Code string

const (
	Mandatory   Code = "M"
	Optional    Code = "O"
	Conditional Code = "C"
)

// Context describes the model group an element particle sits in,
// as seen from the nearest enclosing element.
type Context struct {
	Kind      schema.GroupKind
	Particles int
	// Optional is set when a group between the particle and its
	// enclosing element may be absent
	Optional bool
}

// GroupContext returns the context of the direct children of g
func GroupContext(g *schema.Group) Context {
	return Context{Kind: g.Kind, Particles: len(g.Particles), Optional: g.MinOccurs == 0}
}

// Conditional reports whether particles in c depend on a choice
func (c Context) Conditional() bool { return c.Kind == schema.Choice && c.Particles >= 2 }

// Nest returns the context of the particles of g, a group nested in
// c with occurrence minOccurs. Choice conditionality and group
// optionality carry inward.
func (c Context) Nest(g *schema.Group, minOccurs int) Context {
	if c.Conditional() {
		return c
	}
	return Context{
		Kind:      g.Kind,
		Particles: len(g.Particles),
		Optional:  c.Optional || minOccurs == 0 || g.MinOccurs == 0,
	}
}

// Of returns the obligation code of an element with minOccurs in
// context c. A member of a choice between two or more particles is
// conditional whatever its own occurrence.
func Of(minOccurs int, c Context) Code {
	switch {
	case c.Conditional():
		return Conditional
	case minOccurs == 0 || c.Optional:
		return Optional
	}
	return Mandatory
}

// Inherit returns code as seen under an ancestor with code parent:
// mandatory elements below an optional or conditional ancestor
// become conditional.
func Inherit(code, parent Code) Code {
	if code == Mandatory && (parent == Optional || parent == Conditional) {
		return Conditional
	}
	return code
}
