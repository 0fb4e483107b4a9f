package robinhood

import (
	"errors"
	"fmt"
)

// Kind is the fixed error-kind vocabulary rendered at the tool dispatch
// boundary.
type Kind string

const (
	KindAuthRequired    Kind = "AUTH_REQUIRED"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindAPIError        Kind = "ROBINHOOD_ERROR"
	KindNetworkError    Kind = "NETWORK_ERROR"
	KindInternalError   Kind = "INTERNAL_ERROR"
)

// Error is a classified failure from the client or a domain service.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "fetch quotes"
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Op != "" {
		msg = "failed to " + e.Op
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AuthRequired reports that authentication is needed but unavailable.
// Never retried automatically.
func AuthRequired(message string) *Error {
	return &Error{Kind: KindAuthRequired, Message: message}
}

// InvalidArgument reports bad tool input. Raised before any network call.
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// APIError wraps an upstream call that executed but failed or returned
// unusable data.
func APIError(op string, err error) *Error {
	return &Error{Kind: KindAPIError, Op: op, Message: "failed to " + op, Err: err}
}

// NetworkError wraps a transport-level failure during login.
func NetworkError(message string, err error) *Error {
	return &Error{Kind: KindNetworkError, Message: message, Err: err}
}

// Classify maps any error to its Kind, with INTERNAL_ERROR as the catch-all
// for anything unclassified.
func Classify(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternalError
}
