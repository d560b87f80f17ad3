package opensky

import (
	"errors"
	"fmt"
)

// Kind categorizes failures surfaced by this library.
type Kind string

const (
	// KindConfig indicates missing or unreadable configuration
	// (credentials, cache directory).
	KindConfig Kind = "CONFIG"

	// KindAuth indicates rejected credentials during the token exchange.
	// Auth failures are terminal and never retried.
	KindAuth Kind = "AUTH"

	// KindTransport indicates a connection-level HTTP failure.
	KindTransport Kind = "TRANSPORT"

	// KindQuery indicates the engine reported an error object for a
	// submitted query. Carries the engine's message verbatim.
	KindQuery Kind = "QUERY"

	// KindCancelled is reserved for explicit user-initiated cancellation.
	KindCancelled Kind = "CANCELLED"

	// KindInvalidParam indicates parameter-level validation failure.
	KindInvalidParam Kind = "INVALID_PARAM"

	// KindDataConversion indicates a schema or type mismatch while
	// assembling or (de)serializing a tabular result.
	KindDataConversion Kind = "DATA_CONVERSION"

	// KindIO indicates a filesystem failure for cache or exported files.
	KindIO Kind = "IO"

	// KindParse indicates malformed JSON from the engine.
	KindParse Kind = "PARSE"
)

// Error is the typed failure returned by all packages in this module.
// Inspect the category with KindOf or errors.As.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new typed error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates a new typed error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a typed error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of err, or the empty Kind when err is not
// an *Error. Wrapped errors are handled via errors.As.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// IsQuery reports whether err is an engine-reported query failure.
func IsQuery(err error) bool { return KindOf(err) == KindQuery }
