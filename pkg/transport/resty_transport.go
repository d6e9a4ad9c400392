package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// RestyTransport adapts resty.Client to the Transport interface. The
// underlying client provides connection handling, TLS, and redirects; no
// retries are configured at this layer.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport creates a transport backed by a fresh resty client.
func NewRestyTransport() *RestyTransport {
	return &RestyTransport{client: resty.New()}
}

// NewRestyTransportWithClient wraps an existing resty client, for callers
// needing custom TLS or proxy settings.
func NewRestyTransportWithClient(client *resty.Client) *RestyTransport {
	if client == nil {
		client = resty.New()
	}
	return &RestyTransport{client: client}
}

// Send dispatches the request, honoring its per-request timeout via the
// context. When the transport fails after receiving part of a response, the
// partial response is returned alongside the error.
func (t *RestyTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.URL == nil {
		return nil, fmt.Errorf("request %s has no url", req.ID)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	r := t.client.R().SetContext(ctx)
	if len(req.Header) > 0 {
		r.SetHeaderMultiValues(req.Header)
	}
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(strings.ToUpper(req.Method), req.URL.String())
	if err != nil {
		if resp != nil && len(resp.Body()) > 0 {
			return &Response{
				StatusCode: resp.StatusCode(),
				Header:     resp.Header(),
				Body:       resp.Body(),
			}, fmt.Errorf("http request: %w", err)
		}
		return nil, fmt.Errorf("http request: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}
