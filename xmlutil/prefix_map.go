package xmlutil

import (
	"encoding/xml"
	"strings"

	"github.com/antchfx/xmlquery"
)

// PrefixMap is a prefix to namespace URI map. The default namespace
// is stored under the empty prefix.
type PrefixMap map[string]string

// ScopeOf returns the namespace declarations in scope at n. Nearer
// declarations shadow those made on ancestors.
func ScopeOf(n *xmlquery.Node) PrefixMap {
	pmap := PrefixMap{}
	for it := n; it != nil; it = it.Parent {
		for _, attr := range it.Attr {
			prefix, ok := declaredPrefix(attr.Name)
			if !ok {
				continue
			}
			if _, seen := pmap[prefix]; !seen {
				pmap[prefix] = attr.Value
			}
		}
	}
	return pmap
}

func declaredPrefix(n xml.Name) (string, bool) {
	switch {
	case n.Space == "xmlns":
		return n.Local, true
	case n.Space == "" && n.Local == "xmlns":
		return "", true
	}
	return "", false
}

// Namespace returns the namespace URI for the given prefix
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

// Resolve expands a QName attribute value such as "xs:string" to an
// xml.Name. Unprefixed values take the default namespace. An
// undeclared prefix leaves Space empty.
func (m PrefixMap) Resolve(qname string) xml.Name {
	prefix, local := SplitQName(qname)
	return XMLName(local, m[prefix])
}

// SplitQName splits "prefix:local" into its parts. Values without a
// colon have an empty prefix.
func SplitQName(qname string) (prefix, local string) {
	qname = strings.TrimSpace(qname)
	if i := strings.IndexByte(qname, ':'); i > -1 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}
