package transport

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Package transport holds the mutable request value handed to interceptors
// and the Transport contract routers dispatch through.

// Request is a single-use, mutable HTTP request. It is fully constructed
// (URL, method, headers, body) before any interceptor sees it and is owned
// exclusively by one dispatch; it is never reused across calls.
type Request struct {
	// ID identifies the request in diagnostic logs.
	ID      string
	Method  string
	URL     *url.URL
	Header  http.Header
	Body    []byte
	Timeout time.Duration
}

// NewRequest creates an empty request for the given method and URL.
func NewRequest(method string, u *url.URL) *Request {
	return &Request{
		ID:     uuid.NewString(),
		Method: method,
		URL:    u,
		Header: make(http.Header),
	}
}

// Response is an immutable HTTP response snapshot.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport dispatches a request and returns the response. Implementations
// may return a partial Response alongside a non-nil error when some data
// arrived before the failure. Cancellation follows the provided context.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}
