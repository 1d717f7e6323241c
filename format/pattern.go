package format

import (
	"errors"
	"math"
	"strconv"
	"unicode"
)

// maxEstimate bounds pattern estimates; larger lengths count as
// unbounded
const maxEstimate = math.MaxInt32

// EstimatePattern returns the maximum length of a value matching the
// XML Schema regular expression pattern, and whether every character
// the pattern admits is a decimal digit. ok is false for an empty
// pattern, a pattern matching only the empty string, or one whose
// length is unbounded (*, +, {n,}) or exceeds math.MaxInt32.
func EstimatePattern(pattern string) (n int, digits bool, ok bool) {
	if pattern == "" {
		return 0, false, false
	}
	sc := &patternScanner{s: []rune(pattern)}
	n, digits, bounded := sc.alternation()
	if !bounded || n == 0 {
		return 0, false, false
	}
	return n, digits, true
}

type patternScanner struct {
	s []rune
	i int
}

func (sc *patternScanner) more() bool { return sc.i < len(sc.s) }

func (sc *patternScanner) peek() rune { return sc.s[sc.i] }

// alternation takes the longest branch
func (sc *patternScanner) alternation() (n int, digits, bounded bool) {
	digits, bounded = true, true
	for {
		bn, bd, bb := sc.sequence()
		if bn > n {
			n = bn
		}
		digits = digits && bd
		bounded = bounded && bb
		if sc.more() && sc.peek() == '|' {
			sc.i++
			continue
		}
		return n, digits, bounded
	}
}

func (sc *patternScanner) sequence() (n int, digits, bounded bool) {
	digits, bounded = true, true
	for sc.more() && sc.peek() != '|' && sc.peek() != ')' {
		an, ad, ab := sc.atom()
		rep, rb := sc.quantifier()
		digits = digits && ad
		bounded = bounded && ab && rb
		if an > 0 && rep > (maxEstimate-n)/an {
			n, bounded = maxEstimate, false
			continue
		}
		n += an * rep
	}
	return n, digits, bounded
}

func (sc *patternScanner) atom() (n int, digits, bounded bool) {
	c := sc.peek()
	sc.i++
	switch c {
	case '(':
		if sc.i+1 < len(sc.s) && sc.s[sc.i] == '?' && sc.s[sc.i+1] == ':' {
			sc.i += 2
		}
		n, digits, bounded = sc.alternation()
		if sc.more() && sc.peek() == ')' {
			sc.i++
		}
		return n, digits, bounded
	case '[':
		return 1, sc.class(), true
	case '\\':
		if !sc.more() {
			return 1, false, true
		}
		esc := sc.peek()
		sc.i++
		if esc == 'p' || esc == 'P' {
			sc.skipBraces()
		}
		return 1, esc == 'd', true
	case '^', '$':
		return 0, true, true
	case '.':
		return 1, false, true
	}
	return 1, unicode.IsDigit(c), true
}

// class consumes a character class up to its closing bracket,
// including XML Schema class subtractions, and reports whether it
// only admits digits
func (sc *patternScanner) class() bool {
	digits := true
	depth := 1
	if sc.more() && sc.peek() == '^' {
		digits = false
		sc.i++
	}
	for sc.more() && depth > 0 {
		c := sc.peek()
		sc.i++
		switch {
		case c == '\\' && sc.more():
			esc := sc.peek()
			sc.i++
			if esc != 'd' {
				digits = false
			}
			continue
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '-':
			if depth == 1 && sc.more() && sc.peek() == '[' {
				// subtraction only narrows the class
				sc.i++
				sc.skipClass()
			}
		default:
			if depth == 1 && !unicode.IsDigit(c) {
				digits = false
			}
		}
	}
	return digits
}

func (sc *patternScanner) skipClass() {
	for depth := 1; sc.more() && depth > 0; sc.i++ {
		switch sc.peek() {
		case '\\':
			sc.i++
		case '[':
			depth++
		case ']':
			depth--
		}
	}
}

func (sc *patternScanner) skipBraces() {
	if !sc.more() || sc.peek() != '{' {
		return
	}
	for sc.more() && sc.peek() != '}' {
		sc.i++
	}
	if sc.more() {
		sc.i++
	}
}

// quantifier returns the maximum repeat count of the quantifier at
// the scan position, 1 when there is none
func (sc *patternScanner) quantifier() (rep int, bounded bool) {
	if !sc.more() {
		return 1, true
	}
	switch sc.peek() {
	case '?':
		sc.i++
		return 1, true
	case '*', '+':
		sc.i++
		return 1, false
	case '{':
	default:
		return 1, true
	}
	start := sc.i + 1
	end := start
	for end < len(sc.s) && sc.s[end] != '}' {
		end++
	}
	if end == len(sc.s) {
		// a lone brace is a literal
		return 1, true
	}
	sc.i = end + 1
	body := string(sc.s[start:end])
	lo, hi := body, ""
	for j, r := range body {
		if r == ',' {
			lo, hi = body[:j], body[j+1:]
			if hi == "" {
				return 1, false
			}
			break
		}
	}
	v := hi
	if v == "" {
		v = lo
	}
	n, err := strconv.Atoi(v)
	switch {
	case err != nil && errors.Is(err, strconv.ErrRange):
		return 1, false
	case err != nil:
		return 1, true
	case n > maxEstimate:
		return 1, false
	}
	return n, true
}
