/*
Package xsdleaf converts an XML Schema document into a tabular
description of every leaf data field it defines.

For each leaf element the Hierarchy table gives its path from a
top-level element, the name of its type, its obligation code (M, O or
C) and a compact format token derived from the type's facets, such as
X(35), N(15.2) or ISODate. The Types table has one row per type used
by a leaf, with its format and flattened facets.

The work is split across packages: schema loads the type catalog,
resolve flattens derivation chains, format and status classify, walk
discovers leaves and table aggregates them. Package convert runs all
of them for one document and sheet writes the result to an xlsx
workbook. The xsdleaf command in cmd/xsdleaf wraps them in a CLI.
*/
package xsdleaf
