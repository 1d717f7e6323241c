package schema

import (
	"encoding/xml"
	"fmt"

	"github.com/andaru/xsdleaf/xmlutil"
	"github.com/andaru/xsdleaf/xsderr"
	"github.com/pkg/errors"
)

// Schema is the type catalog of one XML Schema document
type Schema struct {
	// TargetNamespace is the schema's targetNamespace attribute
	TargetNamespace string

	types    []TypeDef
	elements []ElementDecl
	groups   []Group
	roots    []ElementID

	typeIndex     map[xml.Name]TypeID
	typesByLocal  map[string][]TypeID
	elementIndex  map[xml.Name]ElementID
	groupIndex    map[xml.Name]GroupID
	groupsByLocal map[string][]GroupID
	anonNames     map[string]int
}

func newSchema() *Schema {
	return &Schema{
		typeIndex:     map[xml.Name]TypeID{},
		typesByLocal:  map[string][]TypeID{},
		elementIndex:  map[xml.Name]ElementID{},
		groupIndex:    map[xml.Name]GroupID{},
		groupsByLocal: map[string][]GroupID{},
		anonNames:     map[string]int{},
	}
}

// Type returns the type definition with identifier id
func (s *Schema) Type(id TypeID) *TypeDef { return &s.types[id] }

// Element returns the element declaration with identifier id
func (s *Schema) Element(id ElementID) *ElementDecl { return &s.elements[id] }

// Group returns the model group with identifier id
func (s *Schema) Group(id GroupID) *Group { return &s.groups[id] }

// NumTypes returns the number of type definitions, named and anonymous
func (s *Schema) NumTypes() int { return len(s.types) }

// Roots returns the top-level element declarations in document order
func (s *Schema) Roots() []ElementID { return append([]ElementID(nil), s.roots...) }

// Lookup returns the named type definition called name. A name whose
// namespace matches no declaration falls back to the local name when
// exactly one type carries it. Fails with an unresolved-type error.
func (s *Schema) Lookup(name xml.Name) (TypeID, error) {
	if id, ok := s.typeIndex[name]; ok {
		return id, nil
	}
	if ids := s.typesByLocal[name.Local]; len(ids) == 1 {
		return ids[0], nil
	}
	return NoType, errors.WithStack(xsderr.UnresolvedType(name.Local,
		xsderr.WithMessage("no declaration of "+xmlutil.Clark(name))))
}

// LookupElement returns the global element declaration called name
func (s *Schema) LookupElement(name xml.Name) (ElementID, error) {
	if id, ok := s.elementIndex[name]; ok {
		return id, nil
	}
	for _, id := range s.roots {
		if s.elements[id].Name == name.Local {
			return id, nil
		}
	}
	return NoElement, errors.WithStack(xsderr.MalformedSchema(
		xsderr.WithMessage(fmt.Sprintf("element ref %q names no global element", name.Local))))
}

// LookupGroup returns the named model group called name
func (s *Schema) LookupGroup(name xml.Name) (GroupID, error) {
	if id, ok := s.groupIndex[name]; ok {
		return id, nil
	}
	if ids := s.groupsByLocal[name.Local]; len(ids) == 1 {
		return ids[0], nil
	}
	return NoGroup, errors.WithStack(xsderr.MalformedSchema(
		xsderr.WithMessage(fmt.Sprintf("group ref %q names no model group", name.Local))))
}

// Root returns the top-level element declaration with local name
// name
func (s *Schema) Root(name string) (ElementID, error) {
	for _, id := range s.roots {
		if s.elements[id].Name == name {
			return id, nil
		}
	}
	return NoElement, errors.WithStack(xsderr.MalformedSchema(
		xsderr.WithMessage(fmt.Sprintf("no top-level element %q", name))))
}

func (s *Schema) addType(t TypeDef) TypeID {
	t.ID = TypeID(len(s.types))
	s.types = append(s.types, t)
	return t.ID
}

func (s *Schema) addElement(e ElementDecl) ElementID {
	e.ID = ElementID(len(s.elements))
	s.elements = append(s.elements, e)
	return e.ID
}

func (s *Schema) addGroup(g Group) GroupID {
	g.ID = GroupID(len(s.groups))
	s.groups = append(s.groups, g)
	return g.ID
}

// syntheticName names the anonymous type of element elem, unique
// within the schema
func (s *Schema) syntheticName(elem string) string {
	s.anonNames[elem]++
	name := "anonymous:" + elem
	if n := s.anonNames[elem]; n > 1 {
		name = fmt.Sprintf("%s#%d", name, n)
	}
	return name
}
