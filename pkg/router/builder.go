package router

import (
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-api-router/pkg/route"
	"github.com/samvad-hq/samvad-api-router/pkg/transport"
)

// requestTimeout bounds one request/response cycle. Set on every built
// request; the router imposes no further deadline of its own.
const requestTimeout = 10 * time.Second

// buildRequest deterministically turns an endpoint into a request. No
// network I/O happens here.
func (r *Router) buildRequest(ep route.Endpoint) (*transport.Request, error) {
	u, err := ep.URL()
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}

	req := transport.NewRequest(ep.HTTPMethod(), u)
	req.Timeout = requestTimeout
	// Live data only: tell intermediaries not to serve a cached response.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	switch task := ep.Task.(type) {
	case nil, route.PlainTask:
		req.Header.Set("Content-Type", "application/json")
		applyHeaders(req, ep.Headers)
	case route.ParametersTask:
		applyHeaders(req, ep.Headers)
		if err := r.encoder.Encode(req, task.BodyParameters, task.BodyEncoding, task.URLParameters); err != nil {
			return nil, &Error{Kind: KindEncodingFailed, Err: err}
		}
	default:
		return nil, &Error{Kind: KindEncodingFailed, Err: fmt.Errorf("unsupported task %T", ep.Task)}
	}

	return req, nil
}

// applyHeaders sets or overwrites each descriptor header on the request.
// A nil map is a no-op.
func applyHeaders(req *transport.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
