package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, pairs ...string) Set {
	t.Helper()
	var s Set
	var err error
	for i := 0; i+1 < len(pairs); i += 2 {
		s, err = s.With(pairs[i], pairs[i+1])
		require.NoError(t, err)
	}
	return s
}

func TestWith(t *testing.T) {
	check := assert.New(t)

	s := build(t,
		Length, "3",
		Enumeration, "EUR",
		Enumeration, "USD",
		Enumeration, "EUR",
		Pattern, "[A-Z]{3}",
		"whiteSpace", "collapse",
	)
	check.Equal(LimitOf(3), s.Length)
	check.Equal(LimitOf(3), s.MinLength)
	check.Equal(LimitOf(3), s.MaxLength)
	check.Equal([]string{"EUR", "USD"}, s.Enumeration())
	check.Equal("[A-Z]{3}", s.Pattern)
	check.False(s.IsZero())
	check.True(Set{}.IsZero())

	_, err := s.With(MaxLength, "ten")
	check.EqualError(err, `facet maxLength: invalid value "ten"`)
	_, err = s.With(TotalDigits, "-1")
	check.Error(err)
}

func TestWithDoesNotAlias(t *testing.T) {
	check := assert.New(t)
	a := build(t, Enumeration, "A")
	b, err := a.With(Enumeration, "B")
	check.NoError(err)
	c, err := a.With(Enumeration, "C")
	check.NoError(err)
	check.Equal([]string{"A"}, a.Enumeration())
	check.Equal([]string{"A", "B"}, b.Enumeration())
	check.Equal([]string{"A", "C"}, c.Enumeration())
}

func TestMerge(t *testing.T) {
	for _, tc := range []struct {
		name string
		base Set
		own  Set
		want Set
	}{
		{
			name: "child maxLength overrides ancestor",
			base: build(t, MaxLength, "35", MinLength, "1"),
			own:  build(t, MaxLength, "10"),
			want: build(t, MaxLength, "10", MinLength, "1"),
		},
		{
			name: "absent facets inherit",
			base: build(t, TotalDigits, "18", FractionDigits, "5", Pattern, "[0-9]+"),
			own:  Set{},
			want: build(t, TotalDigits, "18", FractionDigits, "5", Pattern, "[0-9]+"),
		},
		{
			name: "last pattern wins",
			base: build(t, Pattern, "[A-Z]+"),
			own:  build(t, Pattern, "[A-Z]{2}"),
			want: build(t, Pattern, "[A-Z]{2}"),
		},
		{
			name: "enumeration subset replaces",
			base: build(t, Enumeration, "A", Enumeration, "B", Enumeration, "C"),
			own:  build(t, Enumeration, "B"),
			want: build(t, Enumeration, "B"),
		},
		{
			name: "widening tolerated",
			base: build(t, MaxLength, "10"),
			own:  build(t, MaxLength, "20"),
			want: build(t, MaxLength, "20"),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Merge(tc.base, tc.own))
		})
	}
}

func TestLimitString(t *testing.T) {
	assert.Equal(t, "", Limit{}.String())
	assert.Equal(t, "0", LimitOf(0).String())
	assert.Equal(t, "35", LimitOf(35).String())
}
