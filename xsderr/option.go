package xsderr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option    { return func(e *Error) { e.Message = msg } }
func WithType(name string) Option      { return func(e *Error) { e.Type = name } }
func WithPath(path string) Option      { return func(e *Error) { e.Path = path } }
func WithSeverity(sev Severity) Option { return func(e *Error) { e.Severity = sev } }
