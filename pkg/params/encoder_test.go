package params

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/samvad-hq/samvad-api-router/pkg/route"
	"github.com/samvad-hq/samvad-api-router/pkg/transport"
)

func newTestRequest(t *testing.T, method, rawurl string) *transport.Request {
	t.Helper()
	u, err := url.Parse(rawurl)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return transport.NewRequest(method, u)
}

func TestEncodeJSONBody(t *testing.T) {
	req := newTestRequest(t, http.MethodPost, "https://api.example.com/v1/search")

	err := FormEncoder{}.Encode(req, map[string]any{"query": "chai", "limit": 5}, route.EncodeJSON, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("Content-Type = %q", got)
	}
	var decoded map[string]any
	if err := json.Unmarshal(req.Body, &decoded); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if decoded["query"] != "chai" || decoded["limit"] != float64(5) {
		t.Fatalf("unexpected body %s", req.Body)
	}
}

func TestEncodeURLOnGetGoesToQuery(t *testing.T) {
	req := newTestRequest(t, http.MethodGet, "https://api.example.com/v1/search?existing=1")

	err := FormEncoder{}.Encode(req, map[string]any{"query": "chai"}, route.EncodeURL, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	q := req.URL.Query()
	if q.Get("query") != "chai" || q.Get("existing") != "1" {
		t.Fatalf("unexpected query %q", req.URL.RawQuery)
	}
	if len(req.Body) != 0 {
		t.Fatalf("GET with url encoding must not set a body, got %q", req.Body)
	}
}

func TestEncodeURLOnPostBecomesFormBody(t *testing.T) {
	req := newTestRequest(t, http.MethodPost, "https://api.example.com/v1/search")

	err := FormEncoder{}.Encode(req, map[string]any{"query": "chai", "limit": 5}, route.EncodeURL, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if got := req.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Fatalf("Content-Type = %q", got)
	}
	form, err := url.ParseQuery(string(req.Body))
	if err != nil {
		t.Fatalf("body is not form encoded: %v", err)
	}
	if form.Get("query") != "chai" || form.Get("limit") != "5" {
		t.Fatalf("unexpected form body %q", req.Body)
	}
}

func TestEncodeBothSplitsBodyAndQuery(t *testing.T) {
	req := newTestRequest(t, http.MethodPost, "https://api.example.com/v1/search")

	err := FormEncoder{}.Encode(req,
		map[string]any{"query": "chai"},
		route.EncodeBoth,
		map[string]string{"page": "2"},
	)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if req.URL.Query().Get("page") != "2" {
		t.Fatalf("url parameters missing from query: %q", req.URL.RawQuery)
	}
	var decoded map[string]any
	if err := json.Unmarshal(req.Body, &decoded); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if decoded["query"] != "chai" {
		t.Fatalf("unexpected body %s", req.Body)
	}
}

func TestEncodeURLParametersAlwaysMerge(t *testing.T) {
	req := newTestRequest(t, http.MethodGet, "https://api.example.com/v1/ping")

	err := FormEncoder{}.Encode(req, nil, route.EncodeJSON, map[string]string{"v": "7"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if req.URL.Query().Get("v") != "7" {
		t.Fatalf("query parameter not applied: %q", req.URL.RawQuery)
	}
	if len(req.Body) != 0 {
		t.Fatalf("nil body parameters must not produce a body")
	}
}

func TestEncodeRejectsUnknownEncoding(t *testing.T) {
	req := newTestRequest(t, http.MethodPost, "https://api.example.com/v1/search")

	err := FormEncoder{}.Encode(req, map[string]any{"a": 1}, route.BodyEncoding(42), nil)
	if err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}
