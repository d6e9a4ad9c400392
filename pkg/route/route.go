package route

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Package route contains typed descriptors for HTTP endpoints.

// Endpoint describes one HTTP call: where it goes, how parameters are
// carried, and which headers ride along. Values are treated as immutable
// once handed to a router; callers supply a fresh descriptor per call.
type Endpoint struct {
	BaseAddress string
	Path        string
	Method      string
	Task        Task
	Headers     map[string]string
}

// URL resolves BaseAddress + Path into an absolute URL.
func (e Endpoint) URL() (*url.URL, error) {
	base := strings.TrimSpace(e.BaseAddress)
	if base == "" {
		return nil, fmt.Errorf("endpoint base address is empty")
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base address %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base address %q is not absolute", base)
	}

	if p := strings.TrimSpace(e.Path); p != "" {
		u = u.JoinPath(p)
	}
	return u, nil
}

// HTTPMethod returns the normalized method, defaulting to GET.
func (e Endpoint) HTTPMethod() string {
	m := strings.ToUpper(strings.TrimSpace(e.Method))
	if m == "" {
		return http.MethodGet
	}
	return m
}

// Task selects the parameter-passing strategy for an endpoint. Exactly one
// variant is active per request; a nil Task is treated as PlainTask.
type Task interface {
	isTask()
}

// PlainTask is a request without body or URL parameters.
type PlainTask struct{}

func (PlainTask) isTask() {}

// ParametersTask carries body and/or URL parameters plus the encoding mode
// used to serialize them onto the request.
type ParametersTask struct {
	BodyParameters map[string]any
	BodyEncoding   BodyEncoding
	URLParameters  map[string]string
}

func (ParametersTask) isTask() {}

// BodyEncoding selects how body parameters are serialized.
type BodyEncoding int

const (
	// EncodeJSON marshals body parameters as a JSON document.
	EncodeJSON BodyEncoding = iota
	// EncodeURL form-encodes body parameters (query string for methods
	// without a body, urlencoded body otherwise).
	EncodeURL
	// EncodeBoth JSON-encodes the body while URL parameters go to the query.
	EncodeBoth
)

// String returns the config-file spelling of the encoding.
func (b BodyEncoding) String() string {
	switch b {
	case EncodeJSON:
		return "json"
	case EncodeURL:
		return "url"
	case EncodeBoth:
		return "both"
	default:
		return fmt.Sprintf("bodyencoding(%d)", int(b))
	}
}

// ParseBodyEncoding maps a config-file value to a BodyEncoding.
func ParseBodyEncoding(s string) (BodyEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return EncodeJSON, nil
	case "url", "form":
		return EncodeURL, nil
	case "both":
		return EncodeBoth, nil
	default:
		return 0, fmt.Errorf("unknown body encoding %q", s)
	}
}
