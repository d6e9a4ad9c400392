package router

import (
	"context"
	"net/http"

	"github.com/samvad-hq/samvad-api-router/pkg/params"
	"github.com/samvad-hq/samvad-api-router/pkg/route"
	"github.com/samvad-hq/samvad-api-router/pkg/transport"
)

// Package router builds requests from route descriptors, dispatches them,
// and decodes JSON responses into caller types.

// Transport aliases the shared transport contract for clarity within router.
type Transport = transport.Transport

// Interceptor mutates the fully built request before dispatch; it may
// add or replace headers, change the body, or rewrite the URL. It never
// sees the route descriptor.
type Interceptor func(req *transport.Request)

// RequestLogFunc receives the final outgoing request, once per dispatch.
type RequestLogFunc func(req *transport.Request)

// Router executes route descriptors. It holds only immutable configuration
// and is safe for concurrent use; each Execute call owns its own request.
type Router struct {
	transport  Transport
	encoder    params.Encoder
	intercept  Interceptor
	logRequest RequestLogFunc
}

// Option configures a Router at construction time.
type Option func(*Router)

// WithTransport injects the transport used to dispatch requests.
func WithTransport(t Transport) Option {
	return func(r *Router) {
		if t != nil {
			r.transport = t
		}
	}
}

// WithEncoder injects the parameter encoder.
func WithEncoder(e params.Encoder) Option {
	return func(r *Router) {
		if e != nil {
			r.encoder = e
		}
	}
}

// WithInterceptor installs the pre-dispatch request hook.
func WithInterceptor(fn Interceptor) Option {
	return func(r *Router) { r.intercept = fn }
}

// WithRequestLog installs the outgoing-request diagnostic hook.
func WithRequestLog(fn RequestLogFunc) Option {
	return func(r *Router) { r.logRequest = fn }
}

// New builds a Router with a resty-backed transport and the form encoder
// unless overridden.
func New(opts ...Option) *Router {
	r := &Router{
		transport: transport.NewRestyTransport(),
		encoder:   params.FormEncoder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs one request/response cycle for the endpoint and decodes the
// JSON body into target. A nil target skips decoding. Failures are *Error
// values classified by Kind.
func (r *Router) Execute(ctx context.Context, ep route.Endpoint, target any) error {
	req, err := r.buildRequest(ep)
	if err != nil {
		return err
	}

	if r.intercept != nil {
		r.intercept(req)
	}
	if r.logRequest != nil {
		r.logRequest(req)
	}

	resp, err := r.transport.Send(ctx, req)
	if err != nil {
		var partial []byte
		if resp != nil {
			partial = resp.Body
		}
		return &Error{Kind: KindNetworkError, PartialBody: partial, Err: err}
	}

	if resp == nil || resp.StatusCode == 0 {
		return &Error{Kind: KindStatusCode}
	}
	// A 204 carries no body to decode, so it is not an acceptable status
	// for a router whose contract is a decoded JSON value.
	if resp.StatusCode < 200 || resp.StatusCode > 299 || resp.StatusCode == http.StatusNoContent {
		return &Error{Kind: KindStatusCode, StatusCode: resp.StatusCode}
	}

	if target == nil {
		return nil
	}
	if err := decodeJSON(resp.Body, target); err != nil {
		return &Error{Kind: KindDecodingFailed, Err: err}
	}
	return nil
}
