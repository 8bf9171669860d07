package foaas

import (
	"errors"
	"net/http"
	"strconv"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrUnknownEndpoint  = errors.New("unknown endpoint")
	ErrArity            = errors.New("wrong number of arguments")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMissingField     = errors.New("missing field")
)

// Kind classifies where an invocation failed.
type Kind int

const (
	// KindRequest means the request could not be built: unknown endpoint,
	// wrong arity or an unusable base URL.
	KindRequest Kind = iota
	// KindTransport covers DNS, dial, TLS, timeout and cancellation failures.
	KindTransport
	// KindStatus means the server answered with something other than 200.
	KindStatus
	// KindDecode means the body was not a valid Response.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is the structured failure returned by Client.Fetch.
type Error struct {
	Kind     Kind
	Endpoint string
	// StatusCode and Status are set for KindStatus.
	StatusCode int
	Status     string
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		if e.Status != "" {
			return e.Status
		}
		return strconv.Itoa(e.StatusCode) + " " + http.StatusText(e.StatusCode)
	}
	if e.Err == nil {
		return e.Kind.String() + " failure"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e.Kind == KindStatus && e.Err == nil {
		return ErrUnexpectedStatus
	}
	return e.Err
}
