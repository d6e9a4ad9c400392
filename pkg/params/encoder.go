package params

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/samvad-hq/samvad-api-router/pkg/route"
	"github.com/samvad-hq/samvad-api-router/pkg/transport"
)

// Package params serializes route parameters onto a request. The router
// delegates all encoding here and performs none of its own.

// Encoder mutates the request's URL query and/or body and headers to carry
// the given parameters.
type Encoder interface {
	Encode(req *transport.Request, body map[string]any, enc route.BodyEncoding, query map[string]string) error
}

// FormEncoder is the default Encoder. URL parameters always merge into the
// query string; body parameters follow the selected encoding mode.
type FormEncoder struct{}

// Encode applies the parameters to the request.
func (FormEncoder) Encode(req *transport.Request, body map[string]any, enc route.BodyEncoding, query map[string]string) error {
	if req == nil {
		return fmt.Errorf("nil request")
	}
	if req.URL == nil {
		return fmt.Errorf("request has no url")
	}

	if len(query) > 0 {
		mergeQuery(req.URL, query)
	}
	if len(body) == 0 {
		return nil
	}

	switch enc {
	case route.EncodeJSON, route.EncodeBoth:
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body parameters: %w", err)
		}
		req.Body = payload
		req.Header.Set("Content-Type", "application/json")
	case route.EncodeURL:
		if bodylessMethod(req.Method) {
			q := req.URL.Query()
			for k, v := range body {
				q.Set(k, fmt.Sprint(v))
			}
			req.URL.RawQuery = q.Encode()
		} else {
			form := make(url.Values, len(body))
			for k, v := range body {
				form.Set(k, fmt.Sprint(v))
			}
			req.Body = []byte(form.Encode())
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return fmt.Errorf("unsupported body encoding %s", enc)
	}

	return nil
}

// mergeQuery appends url parameters to the existing query string.
func mergeQuery(u *url.URL, query map[string]string) {
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
}

// bodylessMethod reports whether form parameters belong in the query string
// rather than the request body for the given method.
func bodylessMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	default:
		return false
	}
}
