package reachability

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Prober determines the current connectivity state. The detection
// algorithm is the prober's business; the monitor only reacts to changes.
type Prober interface {
	Probe(ctx context.Context) State
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context) State

// Probe calls the function.
func (f ProberFunc) Probe(ctx context.Context) State { return f(ctx) }

const probeTimeout = 5 * time.Second

// HTTPProber classifies connectivity by issuing a HEAD request against a
// well-known URL. It cannot tell WiFi from cellular, so a successful probe
// reports ReachableOnWiFi; link-type aware probers can replace it.
type HTTPProber struct {
	url    string
	client *resty.Client
}

// NewHTTPProber creates a prober for the given probe URL.
func NewHTTPProber(url string) *HTTPProber {
	client := resty.New()
	client.SetTimeout(probeTimeout)
	return &HTTPProber{url: url, client: client}
}

// Probe reports ReachableOnWiFi when the probe URL answers, NotReachable
// when it does not, and Unknown when no probe URL is configured.
func (p *HTTPProber) Probe(ctx context.Context) State {
	if p == nil || p.url == "" {
		return Unknown
	}

	_, err := p.client.R().SetContext(ctx).Head(p.url)
	if err != nil {
		return NotReachable
	}
	return ReachableOnWiFi
}
