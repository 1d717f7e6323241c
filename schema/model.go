package schema

import (
	"encoding/xml"
	"fmt"

	"github.com/andaru/xsdleaf/builtin"
	"github.com/andaru/xsdleaf/facet"
)

// TypeID addresses a TypeDef within a Schema
type TypeID int

// ElementID addresses an ElementDecl within a Schema
type ElementID int

// GroupID addresses a Group within a Schema
type GroupID int

const (
	NoType    TypeID    = -1
	NoElement ElementID = -1
	NoGroup   GroupID   = -1
)

// Unbounded is the MaxOccurs value of maxOccurs="unbounded"
const Unbounded = -1

// Kind is the kind of a type definition
type Kind int

const (
	KindSimple Kind = iota
	KindComplex
)

func (k Kind) String() string {
	if k == KindComplex {
		return "complex"
	}
	return "simple"
}

// Derivation is how a type derives from its base
type Derivation int

const (
	DerivationNone Derivation = iota
	DerivationRestriction
	DerivationExtension
)

func (d Derivation) String() string {
	switch d {
	case DerivationRestriction:
		return "restriction"
	case DerivationExtension:
		return "extension"
	}
	return "none"
}

// GroupKind is the compositor of a model group
type GroupKind int

const (
	Sequence GroupKind = iota
	Choice
	All
)

func (k GroupKind) String() string {
	switch k {
	case Sequence:
		return "sequence"
	case Choice:
		return "choice"
	case All:
		return "all"
	}
	return fmt.Sprintf("GroupKind(%d)", int(k))
}

// TypeDef is a simple or complex type definition as written in the
// schema. Base is the zero xml.Name when the type names no base;
// BaseInline is set instead when the restriction carries an
// anonymous simpleType.
type TypeDef struct {
	ID         TypeID
	Name       xml.Name
	Synthetic  string
	Kind       Kind
	Base       xml.Name
	BaseInline TypeID
	Derivation Derivation
	Facets     facet.Set

	// SimpleContent is set on complex types with xs:simpleContent;
	// their values are scalar like a simple type.
	SimpleContent bool
	// Content is the complex type's own model group, NoGroup if none.
	Content GroupID
}

// Anonymous reports whether t was declared inline
func (t *TypeDef) Anonymous() bool { return t.Name.Local == "" }

// DisplayName is the type name shown in output tables
func (t *TypeDef) DisplayName() string {
	if t.Anonymous() {
		return t.Synthetic
	}
	return t.Name.Local
}

// ElementDecl is an element declaration or an element reference.
// References have Ref set and take type and nillable from the
// referenced global declaration.
type ElementDecl struct {
	ID        ElementID
	Name      string
	Type      xml.Name
	Inline    TypeID
	Ref       xml.Name
	MinOccurs int
	MaxOccurs int
	Nillable  bool
	Global    bool
}

// IsRef reports whether e refers to a global declaration
func (e *ElementDecl) IsRef() bool { return e.Ref.Local != "" }

// Repeats reports whether e may occur more than once
func (e *ElementDecl) Repeats() bool { return e.MaxOccurs == Unbounded || e.MaxOccurs > 1 }

// ParticleKind tags the variant held by a Particle
type ParticleKind int

const (
	ParticleElement ParticleKind = iota
	ParticleElementRef
	ParticleGroup
	ParticleGroupRef
	ParticleAny
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleElement:
		return "element"
	case ParticleElementRef:
		return "element-ref"
	case ParticleGroup:
		return "group"
	case ParticleGroupRef:
		return "group-ref"
	case ParticleAny:
		return "any"
	}
	return fmt.Sprintf("ParticleKind(%d)", int(k))
}

// Particle is one member of a model group. Element is set for
// ParticleElement and ParticleElementRef, Group for ParticleGroup
// and Ref for ParticleGroupRef.
type Particle struct {
	Kind      ParticleKind
	Element   ElementID
	Group     GroupID
	Ref       xml.Name
	MinOccurs int
	MaxOccurs int
}

// Group is a sequence, choice or all model group
type Group struct {
	ID        GroupID
	Kind      GroupKind
	Particles []Particle
	MinOccurs int
	MaxOccurs int
}

// IsBuiltin reports whether n names an XML Schema built-in type
func IsBuiltin(n xml.Name) bool {
	return n.Space == builtin.Namespace && builtin.Is(n.Local)
}
