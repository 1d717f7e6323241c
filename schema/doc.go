// Package schema provides the XML Schema type catalog and its loader.
//
// A Schema is an arena: every type definition, element declaration
// and model group read from the document is stored in a table and
// addressed by a stable integer identifier (TypeID, ElementID,
// GroupID). Cross references that go by name (type="...",
// base="...", ref="...") are kept as expanded names and only looked
// up on demand, so recursive and mutually recursive structures need
// no special handling at load time.
//
// Loading
//
// Load parses the document with xmlquery and indexes, in one pass:
//
//   xs:simpleType, xs:complexType (top level, by name)
//       Stored as named TypeDefs. Anonymous types met inside element
//       declarations are stored too and owned by that declaration.
//
//   xs:element (top level)
//       Stored as global ElementDecls. They are the roots of the
//       element tree, in document order, and the targets of ref="...".
//
//   xs:group (top level)
//       Named model groups, expanded where referenced.
//
// Derivation chains are not followed here; see package resolve.
package schema
