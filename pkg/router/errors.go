package router

import (
	"errors"
	"fmt"
)

// Kind classifies router failures.
type Kind int

const (
	// KindInvalidURL means the base address and path could not form a URL.
	KindInvalidURL Kind = iota + 1
	// KindEncodingFailed means the parameter encoder rejected the request.
	KindEncodingFailed
	// KindNetworkError is a transport-level failure (no usable response).
	KindNetworkError
	// KindStatusCode means the response was missing or outside 200-299.
	KindStatusCode
	// KindNoData is reserved for callers that require a non-empty body.
	KindNoData
	// KindDecodingFailed means the response body did not decode into the
	// caller's target type.
	KindDecodingFailed
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindEncodingFailed:
		return "encoding_failed"
	case KindNetworkError:
		return "network_error"
	case KindStatusCode:
		return "status_code"
	case KindNoData:
		return "no_data"
	case KindDecodingFailed:
		return "decoding_failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the failure surfaced by Execute. StatusCode is set for
// KindStatusCode failures; PartialBody carries whatever data arrived before
// a network failure, if any.
type Error struct {
	Kind        Kind
	StatusCode  int
	PartialBody []byte
	Err         error
}

// Error renders the failure.
func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatusCode && e.StatusCode > 0:
		return fmt.Sprintf("router: unacceptable status code %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("router: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("router: %s", e.Kind)
	}
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error chain, or zero if the
// error did not originate here.
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return 0
}
