// Package builtin knows the XML Schema built-in datatypes and the
// family each of them belongs to.
package builtin

// Namespace is the XML Schema namespace URI
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Family groups built-in types by the way their values are formatted
type Family int

const (
	// FamilyOther covers anyType, anySimpleType, duration, NOTATION
	// and the remaining types with no classification rule
	FamilyOther Family = iota
	FamilyBoolean
	FamilyTemporal
	FamilyNumeric
	FamilyString
)

func (f Family) String() string {
	switch f {
	case FamilyBoolean:
		return "boolean"
	case FamilyTemporal:
		return "temporal"
	case FamilyNumeric:
		return "numeric"
	case FamilyString:
		return "string"
	}
	return "other"
}

var families = map[string]Family{
	"anyType":       FamilyOther,
	"anySimpleType": FamilyOther,
	"duration":      FamilyOther,
	"NOTATION":      FamilyOther,

	"boolean": FamilyBoolean,

	"dateTime":   FamilyTemporal,
	"date":       FamilyTemporal,
	"time":       FamilyTemporal,
	"gYearMonth": FamilyTemporal,
	"gYear":      FamilyTemporal,
	"gMonthDay":  FamilyTemporal,
	"gMonth":     FamilyTemporal,
	"gDay":       FamilyTemporal,

	"decimal":            FamilyNumeric,
	"float":              FamilyNumeric,
	"double":             FamilyNumeric,
	"integer":            FamilyNumeric,
	"long":               FamilyNumeric,
	"int":                FamilyNumeric,
	"short":              FamilyNumeric,
	"byte":               FamilyNumeric,
	"nonNegativeInteger": FamilyNumeric,
	"positiveInteger":    FamilyNumeric,
	"nonPositiveInteger": FamilyNumeric,
	"negativeInteger":    FamilyNumeric,
	"unsignedLong":       FamilyNumeric,
	"unsignedInt":        FamilyNumeric,
	"unsignedShort":      FamilyNumeric,
	"unsignedByte":       FamilyNumeric,

	"string":           FamilyString,
	"normalizedString": FamilyString,
	"token":            FamilyString,
	"language":         FamilyString,
	"Name":             FamilyString,
	"NCName":           FamilyString,
	"ID":               FamilyString,
	"IDREF":            FamilyString,
	"IDREFS":           FamilyString,
	"ENTITY":           FamilyString,
	"ENTITIES":         FamilyString,
	"NMTOKEN":          FamilyString,
	"NMTOKENS":         FamilyString,
	"anyURI":           FamilyString,
	"QName":            FamilyString,
	"hexBinary":        FamilyString,
	"base64Binary":     FamilyString,
}

// Lookup returns the family of the built-in type with the given
// local name, and false when local is not a built-in type
func Lookup(local string) (Family, bool) {
	f, ok := families[local]
	return f, ok
}

// Is reports whether local names a built-in type
func Is(local string) bool {
	_, ok := families[local]
	return ok
}

// FamilyOf returns the family of local, FamilyOther when unknown
func FamilyOf(local string) Family { return families[local] }

// DisplayName is the name shown for a built-in type in output tables
func DisplayName(local string) string { return "xs:" + local }
