package route

import (
	"net/http"
	"testing"
)

func TestEndpointURLJoinsBaseAndPath(t *testing.T) {
	ep := Endpoint{BaseAddress: "https://api.example.com/v1", Path: "users/profile"}

	u, err := ep.URL()
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got := u.String(); got != "https://api.example.com/v1/users/profile" {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestEndpointURLRejectsRelativeBase(t *testing.T) {
	cases := []string{"", "   ", "/just/a/path", "example.com/no-scheme"}
	for _, base := range cases {
		ep := Endpoint{BaseAddress: base, Path: "x"}
		if _, err := ep.URL(); err == nil {
			t.Fatalf("expected error for base %q", base)
		}
	}
}

func TestHTTPMethodDefaultsToGet(t *testing.T) {
	if got := (Endpoint{}).HTTPMethod(); got != http.MethodGet {
		t.Fatalf("expected GET, got %s", got)
	}
	if got := (Endpoint{Method: " post "}).HTTPMethod(); got != http.MethodPost {
		t.Fatalf("expected POST, got %s", got)
	}
}

func TestParseBodyEncoding(t *testing.T) {
	cases := map[string]BodyEncoding{
		"":     EncodeJSON,
		"json": EncodeJSON,
		"url":  EncodeURL,
		"form": EncodeURL,
		"BOTH": EncodeBoth,
	}
	for in, want := range cases {
		got, err := ParseBodyEncoding(in)
		if err != nil {
			t.Fatalf("ParseBodyEncoding(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseBodyEncoding(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseBodyEncoding("protobuf"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}
