package msnperr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithVerb(verb string) Option   { return func(e *Error) { e.Verb = verb } }
func WithCause(err error) Option    { return func(e *Error) { e.Err = err } }
