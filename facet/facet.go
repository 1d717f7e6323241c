// Package facet holds the constraining facets attached to a simple
// type and the override merge used along a derivation chain.
package facet

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Facet names recognized by Set.With
const (
	Pattern        = "pattern"
	MinLength      = "minLength"
	MaxLength      = "maxLength"
	Length         = "length"
	TotalDigits    = "totalDigits"
	FractionDigits = "fractionDigits"
	Enumeration    = "enumeration"
)

// Limit is an optional non-negative facet value
type Limit struct {
	N     int
	Valid bool
}

// LimitOf returns a valid Limit of n
func LimitOf(n int) Limit { return Limit{N: n, Valid: true} }

func (l Limit) String() string {
	if !l.Valid {
		return ""
	}
	return strconv.Itoa(l.N)
}

// Set is an immutable record of facet values. The zero Set has no
// facets. Methods returning a Set never modify their receiver.
type Set struct {
	Pattern        string
	MinLength      Limit
	MaxLength      Limit
	Length         Limit
	TotalDigits    Limit
	FractionDigits Limit

	enumeration []string
}

// Enumeration returns a copy of the enumerated literals in
// declaration order
func (s Set) Enumeration() []string {
	if len(s.enumeration) == 0 {
		return nil
	}
	return append([]string(nil), s.enumeration...)
}

// IsZero reports whether s carries no facet at all
func (s Set) IsZero() bool {
	return s.Pattern == "" && !s.MinLength.Valid && !s.MaxLength.Valid && !s.Length.Valid &&
		!s.TotalDigits.Valid && !s.FractionDigits.Valid && len(s.enumeration) == 0
}

// With returns s with the facet name set to value. Unknown facet
// names (whiteSpace, minInclusive, ...) are ignored. Numeric facets
// must hold a non-negative integer. Enumeration values accumulate,
// duplicates dropped; length sets both minLength and maxLength.
func (s Set) With(name, value string) (Set, error) {
	switch name {
	case Pattern:
		s.Pattern = value
		return s, nil
	case Enumeration:
		for _, v := range s.enumeration {
			if v == value {
				return s, nil
			}
		}
		s.enumeration = append(append([]string(nil), s.enumeration...), value)
		return s, nil
	case MinLength, MaxLength, Length, TotalDigits, FractionDigits:
	default:
		return s, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return s, errors.Errorf("facet %s: invalid value %q", name, value)
	}
	switch name {
	case MinLength:
		s.MinLength = LimitOf(n)
	case MaxLength:
		s.MaxLength = LimitOf(n)
	case Length:
		s.Length = LimitOf(n)
		s.MinLength = LimitOf(n)
		s.MaxLength = LimitOf(n)
	case TotalDigits:
		s.TotalDigits = LimitOf(n)
	case FractionDigits:
		s.FractionDigits = LimitOf(n)
	}
	return s, nil
}

// Merge returns base narrowed by own: every facet present in own
// replaces the inherited value, absent facets are inherited. A
// non-empty own enumeration replaces the inherited one as a whole.
// Widening restrictions are not rejected, the last one wins.
func Merge(base, own Set) Set {
	out := base
	if own.Pattern != "" {
		out.Pattern = own.Pattern
	}
	for _, f := range []struct {
		dst *Limit
		src Limit
	}{
		{&out.MinLength, own.MinLength},
		{&out.MaxLength, own.MaxLength},
		{&out.Length, own.Length},
		{&out.TotalDigits, own.TotalDigits},
		{&out.FractionDigits, own.FractionDigits},
	} {
		if f.src.Valid {
			*f.dst = f.src
		}
	}
	if len(own.enumeration) > 0 {
		out.enumeration = own.Enumeration()
	} else {
		out.enumeration = base.Enumeration()
	}
	return out
}
