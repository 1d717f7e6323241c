package xmlutil

import "encoding/xml"

// XMLName returns the xml.Name for local, qualified by the first of
// spaces when given. Further spaces are ignored.
func XMLName(local string, spaces ...string) xml.Name {
	n := xml.Name{Local: local}
	if len(spaces) > 0 {
		n.Space = spaces[0]
	}
	return n
}

// IsZero reports whether n has neither a local name nor a namespace
func IsZero(n xml.Name) bool { return n.Local == "" && n.Space == "" }

// Clark returns n in Clark notation ("{namespace}local"), or the
// bare local name when n has no namespace.
func Clark(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}
