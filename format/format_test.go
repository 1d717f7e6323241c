package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andaru/xsdleaf/facet"
)

func facets(t *testing.T, pairs ...string) facet.Set {
	t.Helper()
	var s facet.Set
	var err error
	for i := 0; i+1 < len(pairs); i += 2 {
		s, err = s.With(pairs[i], pairs[i+1])
		require.NoError(t, err)
	}
	return s
}

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		name      string
		primitive string
		facets    []string
		want      Token
	}{
		{"boolean", "boolean", nil, Boolean},
		{"boolean ignores facets", "boolean", []string{facet.Pattern, "true|false"}, Boolean},
		{"date", "date", nil, "ISODate"},
		{"dateTime", "dateTime", nil, "ISODateTime"},
		{"time", "time", nil, "ISOTime"},
		{"gYearMonth", "gYearMonth", nil, "ISOYearMonth"},
		{"gYear", "gYear", nil, "ISOYear"},
		{"decimal total and fraction", "decimal", []string{facet.TotalDigits, "15", facet.FractionDigits, "2"}, "N(15.2)"},
		{"decimal zero fraction", "decimal", []string{facet.TotalDigits, "18", facet.FractionDigits, "0"}, "N(18)"},
		{"decimal no fraction", "decimal", []string{facet.TotalDigits, "5"}, "N(5)"},
		{"digits win over length", "decimal", []string{facet.MaxLength, "20", facet.TotalDigits, "15", facet.FractionDigits, "2"}, "N(15.2)"},
		{"fraction alone", "decimal", []string{facet.FractionDigits, "2"}, Any},
		{"integer maxLength", "integer", []string{facet.MaxLength, "8"}, "XN(8)"},
		{"integer pattern", "integer", []string{facet.Pattern, "[0-9]{1,6}"}, "XN(6)"},
		{"bare decimal", "decimal", nil, Any},
		{"string maxLength", "string", []string{facet.MaxLength, "35"}, "X(35)"},
		{"enumeration keeps token", "string", []string{facet.MaxLength, "4", facet.Enumeration, "CRED", facet.Enumeration, "DEBT"}, "X(4)"},
		{"length", "token", []string{facet.Length, "3"}, "X(3)"},
		{"maxLength wins over pattern", "string", []string{facet.MaxLength, "35", facet.Pattern, "[A-Z]{3}"}, "X(35)"},
		{"digit pattern", "string", []string{facet.Pattern, "[0-9]{8}"}, "XN(8)"},
		{"text pattern", "string", []string{facet.Pattern, "[A-Z]{3,3}"}, "X(3)"},
		{"unbounded pattern", "string", []string{facet.Pattern, "[A-Z]+"}, Any},
		{"oversized pattern", "string", []string{facet.Pattern, "[0-9]{9223372036854775807}x"}, Any},
		{"bare string", "string", nil, Any},
		{"enumeration only", "string", []string{facet.Enumeration, "A"}, Any},
		{"duration", "duration", nil, Any},
		{"anyType", "anyType", nil, Any},
		{"unknown", "", nil, Any},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.primitive, facets(t, tc.facets...)))
		})
	}
}

func TestTokens(t *testing.T) {
	check := assert.New(t)
	check.Equal(Token("X(140)"), Text(140))
	check.Equal(Token("XN(2)"), NumericText(2))
	check.Equal(Token("N(18.5)"), Number(18, 5))
	check.Equal(Token("N(3)"), Number(3, 0))
}

func TestEstimatePattern(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		n       int
		digits  bool
		ok      bool
	}{
		{"[0-9]{1,15}", 15, true, true},
		{"[A-Z]{3,3}", 3, false, true},
		{`\d{4}`, 4, true, true},
		{`\+[0-9]{1,3}-[0-9()+\-]{1,30}`, 35, false, true},
		{"[A-Z]{2}|[0-9]{3}", 3, false, true},
		{"(AB){2}", 4, false, true},
		{"(?:12){2}", 4, true, true},
		{"[A-Z]{6,6}[A-Z2-9][A-NP-Z0-9]([A-Z0-9]{3,3}){0,1}", 11, false, true},
		{"[0-9]?", 1, true, true},
		{`[a-z-[aeiou]]{2}`, 2, false, true},
		{`\p{Lu}{2}`, 2, false, true},
		{"[0-9]+", 0, false, false},
		{"[0-9]{2,}", 0, false, false},
		{".*", 0, false, false},
		{"[0-9]{9223372036854775807}x", 0, false, false},
		{"[0-9]{99999999999999999999}", 0, false, false},
		{"([0-9]{60000}){60000}", 0, false, false},
		{"[0-9]{2147483647}", 2147483647, true, true},
		{"", 0, false, false},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			n, digits, ok := EstimatePattern(tc.pattern)
			check := assert.New(t)
			check.Equal(tc.ok, ok)
			check.Equal(tc.n, n)
			check.Equal(tc.digits, digits)
		})
	}
}
