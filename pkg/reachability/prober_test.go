package reachability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPProberReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if got := NewHTTPProber(srv.URL).Probe(context.Background()); got != ReachableOnWiFi {
		t.Fatalf("Probe = %s", got)
	}
}

func TestHTTPProberNotReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close()

	if got := NewHTTPProber(srv.URL).Probe(context.Background()); got != NotReachable {
		t.Fatalf("Probe = %s", got)
	}
}

func TestHTTPProberWithoutURL(t *testing.T) {
	if got := NewHTTPProber("").Probe(context.Background()); got != Unknown {
		t.Fatalf("Probe = %s", got)
	}
}
