package schema

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andaru/xsdleaf/builtin"
	"github.com/andaru/xsdleaf/xmlutil"
	"github.com/andaru/xsdleaf/xsderr"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	xpSchema      = xpath.MustCompile(`/*[local-name()='schema']`)
	xpTopTypes    = xpath.MustCompile(`*[local-name()='simpleType' or local-name()='complexType']`)
	xpTopGroups   = xpath.MustCompile(`*[local-name()='group']`)
	xpTopElements = xpath.MustCompile(`*[local-name()='element']`)
	xpUnsupported = xpath.MustCompile(`*[local-name()='include' or local-name()='import' or local-name()='redefine']`)

	nameAnyType   = xmlutil.XMLName("anyType", builtin.Namespace)
	nameAnySimple = xmlutil.XMLName("anySimpleType", builtin.Namespace)
)

const errNoSchemaTag = "document element is not <schema>"

// Load reads an XML Schema document and builds its type catalog.
//
// Errors are malformed-schema *xsderr.Error values: input that is not
// well-formed XML, a document element other than <schema>, top-level
// declarations without a name, duplicate top-level names and invalid
// occurrence or facet values.
func Load(r io.Reader) (*Schema, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.WithStack(xsderr.MalformedSchema(xsderr.WithMessage(err.Error())))
	}
	root := xmlquery.QuerySelector(doc, xpSchema)
	if root == nil {
		return nil, errors.WithStack(xsderr.MalformedSchema(xsderr.WithMessage(errNoSchemaTag)))
	}

	l := &loader{s: newSchema()}
	l.s.TargetNamespace = root.SelectAttr("targetNamespace")

	for _, n := range xmlquery.QuerySelectorAll(root, xpUnsupported) {
		glog.Warningf("schema: ignoring <%s schemaLocation=%q>", n.Data, n.SelectAttr("schemaLocation"))
	}
	for _, n := range xmlquery.QuerySelectorAll(root, xpTopTypes) {
		if err := l.topLevelType(n); err != nil {
			return nil, err
		}
	}
	for _, n := range xmlquery.QuerySelectorAll(root, xpTopGroups) {
		if err := l.topLevelGroup(n); err != nil {
			return nil, err
		}
	}
	for _, n := range xmlquery.QuerySelectorAll(root, xpTopElements) {
		if _, err := l.element(n, true); err != nil {
			return nil, err
		}
	}
	glog.V(1).Infof("schema: loaded %d types, %d elements, %d groups, %d roots",
		len(l.s.types), len(l.s.elements), len(l.s.groups), len(l.s.roots))
	return l.s, nil
}

// LoadFile opens and loads the schema document at path
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening schema")
	}
	defer f.Close()
	return Load(f)
}

type loader struct {
	s *Schema
}

func (l *loader) qualify(local string) xml.Name {
	return xmlutil.XMLName(local, l.s.TargetNamespace)
}

func (l *loader) topLevelType(n *xmlquery.Node) error {
	local := n.SelectAttr("name")
	if local == "" {
		return malformed(n, "top-level type without a name")
	}
	name := l.qualify(local)
	if _, dup := l.s.typeIndex[name]; dup {
		return malformed(n, fmt.Sprintf("duplicate type %q", local))
	}
	var id TypeID
	var err error
	if n.Data == "simpleType" {
		id, err = l.simpleType(n, name, "")
	} else {
		id, err = l.complexType(n, name, "")
	}
	if err != nil {
		return err
	}
	l.s.typeIndex[name] = id
	l.s.typesByLocal[local] = append(l.s.typesByLocal[local], id)
	return nil
}

func (l *loader) topLevelGroup(n *xmlquery.Node) error {
	local := n.SelectAttr("name")
	if local == "" {
		return malformed(n, "top-level group without a name")
	}
	name := l.qualify(local)
	if _, dup := l.s.groupIndex[name]; dup {
		return malformed(n, fmt.Sprintf("duplicate group %q", local))
	}
	for _, c := range elementChildren(n) {
		switch c.Data {
		case "sequence", "choice", "all":
			id, err := l.group(c)
			if err != nil {
				return err
			}
			l.s.groupIndex[name] = id
			l.s.groupsByLocal[local] = append(l.s.groupsByLocal[local], id)
			return nil
		}
	}
	return malformed(n, fmt.Sprintf("group %q has no sequence, choice or all", local))
}

func (l *loader) simpleType(n *xmlquery.Node, name xml.Name, synthetic string) (TypeID, error) {
	t := TypeDef{
		Name:       name,
		Synthetic:  synthetic,
		Kind:       KindSimple,
		BaseInline: NoType,
		Content:    NoGroup,
	}
	for _, c := range elementChildren(n) {
		switch c.Data {
		case "restriction":
			if err := l.restriction(c, &t); err != nil {
				return NoType, err
			}
		case "list", "union":
			// item and member types are not modelled; values format as any
			t.Base = nameAnySimple
			t.Derivation = DerivationRestriction
		}
	}
	return l.s.addType(t), nil
}

// restriction reads the base and facets of a simple type or
// simpleContent restriction into t
func (l *loader) restriction(n *xmlquery.Node, t *TypeDef) error {
	t.Derivation = DerivationRestriction
	if base := n.SelectAttr("base"); base != "" {
		t.Base = xmlutil.ScopeOf(n).Resolve(base)
	}
	for _, c := range elementChildren(n) {
		if c.Data == "simpleType" {
			id, err := l.simpleType(c, xml.Name{}, t.DisplayName()+".base")
			if err != nil {
				return err
			}
			t.BaseInline = id
			continue
		}
		fs, err := t.Facets.With(c.Data, c.SelectAttr("value"))
		if err != nil {
			return malformed(c, err.Error())
		}
		t.Facets = fs
	}
	return nil
}

func (l *loader) complexType(n *xmlquery.Node, name xml.Name, synthetic string) (TypeID, error) {
	t := TypeDef{
		Name:       name,
		Synthetic:  synthetic,
		Kind:       KindComplex,
		BaseInline: NoType,
		Content:    NoGroup,
	}
	for _, c := range elementChildren(n) {
		switch c.Data {
		case "sequence", "choice", "all":
			id, err := l.group(c)
			if err != nil {
				return NoType, err
			}
			t.Content = id
		case "group":
			id, err := l.wrapGroupRef(c)
			if err != nil {
				return NoType, err
			}
			t.Content = id
		case "simpleContent":
			t.SimpleContent = true
			if err := l.derivedContent(c, &t); err != nil {
				return NoType, err
			}
		case "complexContent":
			if err := l.derivedContent(c, &t); err != nil {
				return NoType, err
			}
		}
	}
	return l.s.addType(t), nil
}

// derivedContent reads the restriction or extension inside
// simpleContent or complexContent n
func (l *loader) derivedContent(n *xmlquery.Node, t *TypeDef) error {
	for _, c := range elementChildren(n) {
		switch c.Data {
		case "restriction":
			if t.SimpleContent {
				if err := l.restriction(c, t); err != nil {
					return err
				}
			} else {
				t.Derivation = DerivationRestriction
				t.Base = xmlutil.ScopeOf(c).Resolve(c.SelectAttr("base"))
			}
		case "extension":
			t.Derivation = DerivationExtension
			t.Base = xmlutil.ScopeOf(c).Resolve(c.SelectAttr("base"))
		default:
			continue
		}
		if t.SimpleContent {
			return nil
		}
		for _, p := range elementChildren(c) {
			switch p.Data {
			case "sequence", "choice", "all":
				id, err := l.group(p)
				if err != nil {
					return err
				}
				t.Content = id
			case "group":
				id, err := l.wrapGroupRef(p)
				if err != nil {
					return err
				}
				t.Content = id
			}
		}
		return nil
	}
	return malformed(n, fmt.Sprintf("<%s> has no restriction or extension", n.Data))
}

// wrapGroupRef returns a single-particle sequence holding the group
// reference n, for group references used directly as content
func (l *loader) wrapGroupRef(n *xmlquery.Node) (GroupID, error) {
	p, err := l.groupRef(n)
	if err != nil {
		return NoGroup, err
	}
	return l.s.addGroup(Group{Kind: Sequence, Particles: []Particle{p}, MinOccurs: 1, MaxOccurs: 1}), nil
}

func (l *loader) groupRef(n *xmlquery.Node) (Particle, error) {
	ref := n.SelectAttr("ref")
	if ref == "" {
		return Particle{}, malformed(n, "local group without ref")
	}
	minOcc, maxOcc, err := occurs(n)
	if err != nil {
		return Particle{}, err
	}
	return Particle{
		Kind:      ParticleGroupRef,
		Element:   NoElement,
		Group:     NoGroup,
		Ref:       xmlutil.ScopeOf(n).Resolve(ref),
		MinOccurs: minOcc,
		MaxOccurs: maxOcc,
	}, nil
}

func (l *loader) group(n *xmlquery.Node) (GroupID, error) {
	g := Group{}
	switch n.Data {
	case "choice":
		g.Kind = Choice
	case "all":
		g.Kind = All
	default:
		g.Kind = Sequence
	}
	var err error
	if g.MinOccurs, g.MaxOccurs, err = occurs(n); err != nil {
		return NoGroup, err
	}

	for _, c := range elementChildren(n) {
		p := Particle{Element: NoElement, Group: NoGroup}
		switch c.Data {
		case "element":
			id, err := l.element(c, false)
			if err != nil {
				return NoGroup, err
			}
			e := l.s.Element(id)
			p.Kind, p.Element = ParticleElement, id
			if e.IsRef() {
				p.Kind = ParticleElementRef
			}
			p.MinOccurs, p.MaxOccurs = e.MinOccurs, e.MaxOccurs
		case "sequence", "choice", "all":
			id, err := l.group(c)
			if err != nil {
				return NoGroup, err
			}
			nested := l.s.Group(id)
			p.Kind, p.Group = ParticleGroup, id
			p.MinOccurs, p.MaxOccurs = nested.MinOccurs, nested.MaxOccurs
		case "group":
			if p, err = l.groupRef(c); err != nil {
				return NoGroup, err
			}
		case "any":
			p.Kind = ParticleAny
			if p.MinOccurs, p.MaxOccurs, err = occurs(c); err != nil {
				return NoGroup, err
			}
		default:
			continue
		}
		g.Particles = append(g.Particles, p)
	}
	return l.s.addGroup(g), nil
}

func (l *loader) element(n *xmlquery.Node, global bool) (ElementID, error) {
	name, ref := n.SelectAttr("name"), n.SelectAttr("ref")
	if name == "" && ref == "" {
		return NoElement, malformed(n, "element without name or ref")
	}
	if global && name == "" {
		return NoElement, malformed(n, "top-level element without a name")
	}
	e := ElementDecl{
		Name:     name,
		Inline:   NoType,
		Nillable: strings.TrimSpace(n.SelectAttr("nillable")) == "true",
		Global:   global,
	}
	var err error
	if global {
		e.MinOccurs, e.MaxOccurs = 1, 1
	} else if e.MinOccurs, e.MaxOccurs, err = occurs(n); err != nil {
		return NoElement, err
	}

	scope := xmlutil.ScopeOf(n)
	switch typ := n.SelectAttr("type"); {
	case ref != "":
		e.Ref = scope.Resolve(ref)
		e.Name = e.Ref.Local
	case typ != "":
		e.Type = scope.Resolve(typ)
	default:
		e.Type = nameAnyType
		for _, c := range elementChildren(n) {
			var id TypeID
			switch c.Data {
			case "simpleType":
				id, err = l.simpleType(c, xml.Name{}, l.s.syntheticName(name))
			case "complexType":
				id, err = l.complexType(c, xml.Name{}, l.s.syntheticName(name))
			default:
				continue
			}
			if err != nil {
				return NoElement, err
			}
			e.Type, e.Inline = xml.Name{}, id
			break
		}
	}

	id := l.s.addElement(e)
	if global {
		qn := l.qualify(name)
		if _, dup := l.s.elementIndex[qn]; dup {
			return NoElement, malformed(n, fmt.Sprintf("duplicate element %q", name))
		}
		l.s.elementIndex[qn] = id
		l.s.roots = append(l.s.roots, id)
	}
	return id, nil
}

// occurs returns the minOccurs and maxOccurs of n, defaulting to 1
func occurs(n *xmlquery.Node) (minOcc, maxOcc int, err error) {
	minOcc, maxOcc = 1, 1
	if v := strings.TrimSpace(n.SelectAttr("minOccurs")); v != "" {
		if minOcc, err = strconv.Atoi(v); err != nil || minOcc < 0 {
			return 0, 0, malformed(n, fmt.Sprintf("invalid minOccurs %q", v))
		}
	}
	switch v := strings.TrimSpace(n.SelectAttr("maxOccurs")); v {
	case "":
	case "unbounded":
		maxOcc = Unbounded
	default:
		if maxOcc, err = strconv.Atoi(v); err != nil || maxOcc < 0 {
			return 0, 0, malformed(n, fmt.Sprintf("invalid maxOccurs %q", v))
		}
	}
	return minOcc, maxOcc, nil
}

// elementChildren returns the element children of n, skipping
// annotations
func elementChildren(n *xmlquery.Node) (out []*xmlquery.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data != "annotation" {
			out = append(out, c)
		}
	}
	return out
}

func malformed(n *xmlquery.Node, msg string) error {
	if name := n.SelectAttr("name"); name != "" {
		msg = fmt.Sprintf("<%s name=%q>: %s", n.Data, name, msg)
	} else {
		msg = fmt.Sprintf("<%s>: %s", n.Data, msg)
	}
	return errors.WithStack(xsderr.MalformedSchema(xsderr.WithMessage(msg)))
}
