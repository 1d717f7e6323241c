package cli

import (
	"github.com/pkg/errors"

	"github.com/andaru/xsdleaf/config"
	"github.com/andaru/xsdleaf/xsderr"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 10
	ExitMalformed    = 20
	ExitUnresolved   = 21
)

// exitError attaches an exit code to an error
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) Cause() error  { return e.err }

func usageErr(err error) error  { return &exitError{code: ExitUsageError, err: err} }
func configErr(err error) error { return &exitError{code: ExitConfigError, err: err} }

// ExitCodeForError returns the process exit code for an error
// returned by Execute
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, config.ErrConfigNotFound) {
		return ExitConfigError
	}
	if e, ok := xsderr.As(err); ok {
		switch e.Kind {
		case xsderr.KindMalformedSchema:
			return ExitMalformed
		case xsderr.KindUnresolvedType:
			return ExitUnresolved
		}
	}
	return ExitGeneralError
}
