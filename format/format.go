// Package format derives the canonical format token of a resolved
// type: X(35), XN(8), N(15.2), ISODate, boolean or <ANY>.
package format

import (
	"strconv"

	"github.com/andaru/xsdleaf/builtin"
	"github.com/andaru/xsdleaf/facet"
)

// Token is a canonical format token
type Token string

const (
	// Any is the fallback token of types no rule classifies
	Any     Token = "<ANY>"
	Boolean Token = "boolean"
)

var temporal = map[string]Token{
	"date":       "ISODate",
	"dateTime":   "ISODateTime",
	"time":       "ISOTime",
	"gYearMonth": "ISOYearMonth",
	"gYear":      "ISOYear",
	"gMonthDay":  "ISOMonthDay",
	"gMonth":     "ISOMonth",
	"gDay":       "ISODay",
}

// Text returns X(n)
func Text(n int) Token { return Token("X(" + strconv.Itoa(n) + ")") }

// NumericText returns XN(n)
func NumericText(n int) Token { return Token("XN(" + strconv.Itoa(n) + ")") }

// Number returns N(total) or N(total.fraction); a zero fraction is
// omitted
func Number(total, fraction int) Token {
	if fraction > 0 {
		return Token("N(" + strconv.Itoa(total) + "." + strconv.Itoa(fraction) + ")")
	}
	return Token("N(" + strconv.Itoa(total) + ")")
}

// Classify maps the primitive built-in a type derives from and its
// flattened facets to a Token. Rules apply in order:
//
//	boolean                               boolean
//	date/time family                      ISODate, ISODateTime, ISOTime, ...
//	numeric with totalDigits              N(total[.fraction])
//	numeric with maxLength                XN(maxLength)
//	string family with maxLength          X(maxLength)
//	numeric or string with a pattern      XN(n) or X(n), n estimated from the pattern
//	anything else                         <ANY>
//
// Digit facets win over length facets. Enumerations never change the
// token.
func Classify(primitive string, fs facet.Set) Token {
	switch builtin.FamilyOf(primitive) {
	case builtin.FamilyBoolean:
		return Boolean
	case builtin.FamilyTemporal:
		if tok, ok := temporal[primitive]; ok {
			return tok
		}
		return "ISODate"
	case builtin.FamilyNumeric:
		switch {
		case fs.TotalDigits.Valid:
			return Number(fs.TotalDigits.N, fs.FractionDigits.N)
		case fs.MaxLength.Valid:
			return NumericText(fs.MaxLength.N)
		}
		if n, _, ok := EstimatePattern(fs.Pattern); ok {
			return NumericText(n)
		}
	case builtin.FamilyString:
		if fs.MaxLength.Valid {
			return Text(fs.MaxLength.N)
		}
		if n, digits, ok := EstimatePattern(fs.Pattern); ok {
			if digits {
				return NumericText(n)
			}
			return Text(n)
		}
	}
	return Any
}
