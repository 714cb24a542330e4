package msnperr

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies Notification session errors
type Kind int

const (
	// KindProtocolViolation is a malformed or unexpected command shape.
	// Fatal to the session.
	KindProtocolViolation Kind = iota
	// KindMalformedResponse is an unparsable SOAP response.
	// Fatal to the in-flight authentication attempt.
	KindMalformedResponse
	// KindUnsupportedOperation is a recognized but not yet implemented
	// protocol branch (legacy auth, final acknowledgment, forced
	// sign-out, switchboard redirect).
	KindUnsupportedOperation
	// KindTransportLost is a transport disconnect. Recoverable by
	// reconnecting and re-running the handshake at a higher layer.
	KindTransportLost
	// KindTimeout is an identity exchange deadline expiry
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindProtocolViolation:
		return "protocol-violation"
	case KindMalformedResponse:
		return "malformed-response"
	case KindUnsupportedOperation:
		return "unsupported-operation"
	case KindTransportLost:
		return "transport-lost"
	case KindTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "protocol-violation":
		*k = KindProtocolViolation
	case "malformed-response":
		*k = KindMalformedResponse
	case "unsupported-operation":
		*k = KindUnsupportedOperation
	case "transport-lost":
		*k = KindTransportLost
	case "timeout":
		*k = KindTimeout
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error represents a Notification session error
type Error struct {
	// Kind is the error classification
	Kind Kind
	// Verb is the wire command verb being handled when the error
	// occurred, if any
	Verb string
	// Message is a human readable description
	Message string
	// Err is the underlying cause, if any
	Err error
}

func (e Error) Error() string {
	s := e.Kind.String()
	if e.Verb != "" {
		s += " verb:" + e.Verb
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause
func (e Error) Unwrap() error { return e.Err }

// IsKind reports whether any error in err's chain is an *Error of the
// given Kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func ProtocolViolation(opts ...Option) *Error {
	e := &Error{Kind: KindProtocolViolation}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MalformedResponse(opts ...Option) *Error {
	e := &Error{Kind: KindMalformedResponse}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func UnsupportedOperation(what string, opts ...Option) *Error {
	e := &Error{Kind: KindUnsupportedOperation, Message: what}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func TransportLost(opts ...Option) *Error {
	e := &Error{Kind: KindTransportLost}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Timeout(what string, opts ...Option) *Error {
	e := &Error{Kind: KindTimeout, Message: what}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
