package xsderr

import (
	"bytes"
	"errors"
	"fmt"
)

// Kind represents the class of a conversion error
type Kind int

const (
	// KindMalformedSchema is input that is not well-formed XML or
	// does not have the shape of an XML Schema document
	KindMalformedSchema Kind = iota
	// KindUnresolvedType is a type reference naming an undeclared type
	KindUnresolvedType
	// KindCircularType is a derivation chain that refers back to itself
	KindCircularType
	// KindRecursionBound is an element tree truncated by the recursion guard
	KindRecursionBound
	// KindUnclassifiedFormat is a resolved type no format rule matched
	KindUnclassifiedFormat
)

func (k Kind) String() string {
	switch k {
	case KindMalformedSchema:
		return "malformed-schema"
	case KindUnresolvedType:
		return "unresolved-type"
	case KindCircularType:
		return "circular-type"
	case KindRecursionBound:
		return "recursion-bound"
	case KindUnclassifiedFormat:
		return "unclassified-format"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "malformed-schema":
		*k = KindMalformedSchema
	case "unresolved-type":
		*k = KindUnresolvedType
	case "circular-type":
		*k = KindCircularType
	case "recursion-bound":
		*k = KindRecursionBound
	case "unclassified-format":
		*k = KindUnclassifiedFormat
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Severity tells whether an error aborts the conversion
type Severity int

const (
	// SeverityError aborts the conversion with no output
	SeverityError Severity = iota
	// SeverityWarning is reported next to otherwise complete output
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error is a schema conversion error or warning.
//
// Type names the schema type involved, Path the element path
// (slash separated) the condition was found at, when known.
type Error struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type,omitempty"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message,omitempty"`
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s %s", e.Severity, e.Kind)
	if e.Type != "" {
		s += " type:" + e.Type
	}
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// Fatal reports whether e aborts a conversion
func (e *Error) Fatal() bool { return e.Severity == SeverityError }

func newError(kind Kind, sev Severity, opts []Option) *Error {
	e := &Error{Kind: kind, Severity: sev}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MalformedSchema(opts ...Option) *Error {
	return newError(KindMalformedSchema, SeverityError, opts)
}

func UnresolvedType(typeName string, opts ...Option) *Error {
	return newError(KindUnresolvedType, SeverityError, append([]Option{WithType(typeName)}, opts...))
}

// CircularType is fatal when raised by the resolver on its own; the
// tree walker downgrades it to a warning and truncates the branch.
func CircularType(typeName string, opts ...Option) *Error {
	return newError(KindCircularType, SeverityError, append([]Option{WithType(typeName)}, opts...))
}

func RecursionBound(typeName, path string, opts ...Option) *Error {
	return newError(KindRecursionBound, SeverityWarning,
		append([]Option{WithType(typeName), WithPath(path)}, opts...))
}

func UnclassifiedFormat(typeName string, opts ...Option) *Error {
	return newError(KindUnclassifiedFormat, SeverityWarning, append([]Option{WithType(typeName)}, opts...))
}

// As returns the *Error in err's chain, if any
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of kind k
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}

// IsFatal reports whether err aborts a conversion. Errors which are
// not an *Error are always fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := As(err); ok {
		return e.Fatal()
	}
	return true
}
