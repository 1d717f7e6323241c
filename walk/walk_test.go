package walk

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andaru/xsdleaf/format"
	"github.com/andaru/xsdleaf/resolve"
	"github.com/andaru/xsdleaf/schema"
	"github.com/andaru/xsdleaf/status"
	"github.com/andaru/xsdleaf/xsderr"
)

const commonTypes = `
  <xs:simpleType name="Max35Text">
    <xs:restriction base="xs:string"><xs:maxLength value="35"/></xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="Max100Text">
    <xs:restriction base="xs:string"><xs:maxLength value="100"/></xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="Amount">
    <xs:restriction base="xs:decimal">
      <xs:totalDigits value="15"/>
      <xs:fractionDigits value="2"/>
    </xs:restriction>
  </xs:simpleType>`

func doc(body string) string {
	return `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">` + commonTypes + body + `
</xs:schema>`
}

var messageXSD = doc(`
  <xs:element name="Message">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Header">
          <xs:complexType>
            <xs:sequence><xs:element name="Id" type="Max35Text"/></xs:sequence>
          </xs:complexType>
        </xs:element>
        <xs:element name="Body">
          <xs:complexType>
            <xs:choice>
              <xs:element name="Amount" type="Amount"/>
              <xs:element name="Text" type="Max100Text"/>
            </xs:choice>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
    </xs:complexType>
  </xs:element>`)

func newWalker(t *testing.T, xsd string, opts Options) *Walker {
	t.Helper()
	s, err := schema.Load(strings.NewReader(xsd))
	require.NoError(t, err)
	return New(resolve.New(s, 0), opts)
}

func collect(t *testing.T, w *Walker) []Leaf {
	t.Helper()
	var leaves []Leaf
	require.NoError(t, w.Walk(func(l Leaf) error {
		leaves = append(leaves, l)
		return nil
	}))
	return leaves
}

type row struct {
	path   string
	typ    string
	status status.Code
	format format.Token
}

func rows(leaves []Leaf) (out []row) {
	for i := range leaves {
		l := &leaves[i]
		out = append(out, row{l.FullPath(), l.Type.Name, l.Status, l.Format})
	}
	return out
}

func TestWalkMessage(t *testing.T) {
	check := assert.New(t)
	w := newWalker(t, messageXSD, Options{})
	leaves := collect(t, w)
	check.Equal([]row{
		{"Message/Header/Id", "Max35Text", status.Mandatory, "X(35)"},
		{"Message/Body/Amount", "Amount", status.Conditional, "N(15.2)"},
		{"Message/Body/Text", "Max100Text", status.Conditional, "X(100)"},
	}, rows(leaves))
	check.Empty(w.Warnings())
	check.Equal(3, leaves[0].Depth())
	check.Equal("Id", leaves[0].Name())
	check.False(leaves[0].Truncated)
}

func TestWalkIsSingleUse(t *testing.T) {
	check := assert.New(t)
	w := newWalker(t, messageXSD, Options{})
	collect(t, w)
	err := w.Walk(func(Leaf) error { return nil })
	check.True(errors.Is(err, ErrWalked))
}

func TestWalkStop(t *testing.T) {
	check := assert.New(t)
	w := newWalker(t, messageXSD, Options{})
	n := 0
	check.NoError(w.Walk(func(Leaf) error {
		n++
		return ErrStop
	}))
	check.Equal(1, n)

	w = newWalker(t, messageXSD, Options{})
	boom := errors.New("boom")
	check.Equal(boom, w.Walk(func(Leaf) error { return boom }))
}

func TestWalkRecursiveType(t *testing.T) {
	check := assert.New(t)
	w := newWalker(t, doc(`
  <xs:complexType name="Node">
    <xs:sequence>
      <xs:element name="Value" type="Max35Text"/>
      <xs:element name="Child" type="Node" minOccurs="0"/>
    </xs:sequence>
  </xs:complexType>
  <xs:element name="Tree" type="Node"/>`), Options{})

	leaves := collect(t, w)
	check.Equal([]row{
		{"Tree/Value", "Max35Text", status.Mandatory, "X(35)"},
		{"Tree/Child", "Node", status.Optional, format.Any},
	}, rows(leaves))
	check.True(leaves[1].Truncated)

	require.Len(t, w.Warnings(), 1)
	warning := w.Warnings()[0]
	check.Equal(xsderr.KindRecursionBound, warning.Kind)
	check.Equal("Node", warning.Type)
	check.Equal("Tree/Child", warning.Path)
	check.False(warning.Fatal())
}

func TestWalkRecursiveElementRef(t *testing.T) {
	check := assert.New(t)
	w := newWalker(t, doc(`
  <xs:element name="Part">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="No" type="Max35Text"/>
        <xs:element ref="Part" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>`), Options{})

	check.Equal([]row{
		{"Part/No", "Max35Text", status.Mandatory, "X(35)"},
		{"Part/Part", "anonymous:Part", status.Optional, format.Any},
	}, rows(collect(t, w)))
	require.Len(t, w.Warnings(), 1)
	check.Equal(xsderr.KindRecursionBound, w.Warnings()[0].Kind)
}

var structuresXSD = doc(`
  <xs:group name="Extra">
    <xs:choice>
      <xs:element name="A" type="Max35Text"/>
      <xs:element name="B" type="xs:date"/>
    </xs:choice>
  </xs:group>
  <xs:element name="Doc">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="Party" minOccurs="0" maxOccurs="unbounded"/>
        <xs:group ref="Extra"/>
        <xs:element name="Blob">
          <xs:complexType><xs:sequence><xs:any/></xs:sequence></xs:complexType>
        </xs:element>
        <xs:element name="Empty"><xs:complexType/></xs:element>
        <xs:element name="Flag" type="xs:boolean"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
  <xs:element name="Party">
    <xs:complexType>
      <xs:sequence><xs:element name="Nm" type="Max35Text"/></xs:sequence>
    </xs:complexType>
  </xs:element>`)

func TestWalkStructures(t *testing.T) {
	check := assert.New(t)
	w := newWalker(t, structuresXSD, Options{})
	leaves := collect(t, w)
	check.Equal([]row{
		{"Doc/Party/Nm", "Max35Text", status.Mandatory, "X(35)"},
		{"Doc/A", "Max35Text", status.Conditional, "X(35)"},
		{"Doc/B", "xs:date", status.Conditional, "ISODate"},
		{"Doc/Blob", "anonymous:Blob", status.Mandatory, format.Any},
		{"Doc/Empty", "anonymous:Empty", status.Mandatory, format.Any},
		{"Doc/Flag", "xs:boolean", status.Mandatory, format.Boolean},
		{"Party/Nm", "Max35Text", status.Mandatory, "X(35)"},
	}, rows(leaves))
	check.Empty(w.Warnings())

	party := leaves[0].Path[1]
	check.Equal(Segment{Name: "Party", MinOccurs: 0, MaxOccurs: schema.Unbounded}, party)
	check.True(party.Repeats())
	check.Equal("Party[0...∞]", party.Occurrence())
	check.False(leaves[0].Path[0].Repeats())
}

func TestWalkOptions(t *testing.T) {
	t.Run("inherit conditional", func(t *testing.T) {
		check := assert.New(t)
		leaves := collect(t, newWalker(t, structuresXSD, Options{InheritConditional: true}))
		check.Equal(status.Conditional, leaves[0].Status)
		check.Equal(status.Mandatory, leaves[len(leaves)-1].Status)
	})
	t.Run("root", func(t *testing.T) {
		check := assert.New(t)
		leaves := collect(t, newWalker(t, structuresXSD, Options{Root: "Party"}))
		check.Equal([]row{{"Party/Nm", "Max35Text", status.Mandatory, "X(35)"}}, rows(leaves))

		err := newWalker(t, structuresXSD, Options{Root: "Nope"}).Walk(func(Leaf) error { return nil })
		check.True(xsderr.IsKind(err, xsderr.KindMalformedSchema))
	})
	t.Run("max depth", func(t *testing.T) {
		check := assert.New(t)
		w := newWalker(t, messageXSD, Options{MaxDepth: 1})
		check.Equal([]row{
			{"Message/Header", "anonymous:Header", status.Mandatory, format.Any},
			{"Message/Body", "anonymous:Body", status.Mandatory, format.Any},
		}, rows(collect(t, w)))
		check.Len(w.Warnings(), 2)
	})
}

func TestWalkDuplicatePaths(t *testing.T) {
	check := assert.New(t)
	w := newWalker(t, doc(`
  <xs:element name="Dup">
    <xs:complexType>
      <xs:choice>
        <xs:sequence>
          <xs:element name="X" type="Max35Text"/>
          <xs:element name="Y" type="Max35Text"/>
        </xs:sequence>
        <xs:sequence><xs:element name="X" type="Amount"/></xs:sequence>
      </xs:choice>
    </xs:complexType>
  </xs:element>`), Options{})

	check.Equal([]row{
		{"Dup/X", "Max35Text", status.Conditional, "X(35)"},
		{"Dup/Y", "Max35Text", status.Conditional, "X(35)"},
	}, rows(collect(t, w)))
}

func TestWalkTypeErrors(t *testing.T) {
	t.Run("circular simple type", func(t *testing.T) {
		check := assert.New(t)
		w := newWalker(t, doc(`
  <xs:simpleType name="A"><xs:restriction base="B"/></xs:simpleType>
  <xs:simpleType name="B"><xs:restriction base="A"/></xs:simpleType>
  <xs:element name="Root">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Loop" type="A"/>
        <xs:element name="Ok" type="Max35Text"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>`), Options{})

		leaves := collect(t, w)
		check.Equal([]row{
			{"Root/Loop", "A", status.Mandatory, format.Any},
			{"Root/Ok", "Max35Text", status.Mandatory, "X(35)"},
		}, rows(leaves))
		check.True(leaves[0].Truncated)
		require.Len(t, w.Warnings(), 1)
		check.Equal(xsderr.KindCircularType, w.Warnings()[0].Kind)
		check.Equal(xsderr.SeverityWarning, w.Warnings()[0].Severity)
		check.Equal("Root/Loop", w.Warnings()[0].Path)
	})
	t.Run("unresolved type", func(t *testing.T) {
		w := newWalker(t, doc(`<xs:element name="Root" type="Nowhere"/>`), Options{})
		err := w.Walk(func(Leaf) error { return nil })
		assert.True(t, xsderr.IsKind(err, xsderr.KindUnresolvedType))
	})
	t.Run("unclassified", func(t *testing.T) {
		check := assert.New(t)
		w := newWalker(t, doc(`
  <xs:element name="Root">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Free" type="xs:string"/>
        <xs:element name="Other" type="xs:string"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>`), Options{})

		check.Len(collect(t, w), 2)
		require.Len(t, w.Warnings(), 1)
		check.Equal(xsderr.KindUnclassifiedFormat, w.Warnings()[0].Kind)
		check.Equal("xs:string", w.Warnings()[0].Type)
	})
}
