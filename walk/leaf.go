package walk

import (
	"strconv"
	"strings"

	"github.com/andaru/xsdleaf/format"
	"github.com/andaru/xsdleaf/resolve"
	"github.com/andaru/xsdleaf/schema"
	"github.com/andaru/xsdleaf/status"
)

// Segment is one element on the path from a root to a leaf
type Segment struct {
	Name      string
	MinOccurs int
	MaxOccurs int
}

// Repeats reports whether the element may occur more than once
func (s Segment) Repeats() bool { return s.MaxOccurs == schema.Unbounded || s.MaxOccurs > 1 }

// Occurrence returns s as Name[min...max], unbounded shown as ∞
func (s Segment) Occurrence() string {
	hi := "∞"
	if s.MaxOccurs != schema.Unbounded {
		hi = strconv.Itoa(s.MaxOccurs)
	}
	return s.Name + "[" + strconv.Itoa(s.MinOccurs) + "..." + hi + "]"
}

// Leaf is a terminal data field of the schema
type Leaf struct {
	Path   []Segment
	Type   *resolve.Resolved
	Status status.Code
	Format format.Token
	// Truncated is set on leaves standing in for a branch cut short
	// by the recursion guard
	Truncated bool
}

// Name returns the leaf element's own name
func (l *Leaf) Name() string { return l.Path[len(l.Path)-1].Name }

// Depth returns the number of path segments, 1 for a root element
func (l *Leaf) Depth() int { return len(l.Path) }

// FullPath returns the slash separated element names
func (l *Leaf) FullPath() string { return joinPath(l.Path) }

// Pattern returns the effective pattern facet of the leaf's type
func (l *Leaf) Pattern() string { return l.Type.Facets.Pattern }

// Enumeration returns the enumerated values of the leaf's type
func (l *Leaf) Enumeration() []string { return l.Type.Facets.Enumeration() }

func joinPath(path []Segment) string {
	var sb strings.Builder
	for i, seg := range path {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(seg.Name)
	}
	return sb.String()
}
