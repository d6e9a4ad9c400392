package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/samvad-hq/samvad-api-router/pkg/route"
	"github.com/samvad-hq/samvad-api-router/pkg/transport"
)

// stubTransport returns a canned response or error.
type stubTransport struct {
	resp *transport.Response
	err  error
	last *transport.Request
}

func (s *stubTransport) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	s.last = req
	return s.resp, s.err
}

func plainEndpoint(base string) route.Endpoint {
	return route.Endpoint{BaseAddress: base, Method: http.MethodGet, Task: route.PlainTask{}}
}

func TestExecuteDecodesSnakeCaseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id":"u-42","display_name":"Ruma","login_count":3}`))
	}))
	defer srv.Close()

	var got struct {
		UserID      string
		DisplayName string
		LoginCount  int
	}

	r := New()
	if err := r.Execute(context.Background(), plainEndpoint(srv.URL), &got); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.UserID != "u-42" || got.DisplayName != "Ruma" || got.LoginCount != 3 {
		t.Fatalf("unexpected decode result: %+v", got)
	}
}

func TestExecuteStatusCodeFailures(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		var got map[string]any
		err := New().Execute(context.Background(), plainEndpoint(srv.URL), &got)
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", status)
		}
		var rerr *Error
		if !errors.As(err, &rerr) {
			t.Fatalf("status %d: expected *Error, got %T", status, err)
		}
		if rerr.Kind != KindStatusCode {
			t.Fatalf("status %d: kind = %s", status, rerr.Kind)
		}
		if rerr.StatusCode != status {
			t.Fatalf("status %d not preserved, got %d", status, rerr.StatusCode)
		}
	}
}

func TestExecuteNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close()

	err := New().Execute(context.Background(), plainEndpoint(srv.URL), nil)
	if KindOf(err) != KindNetworkError {
		t.Fatalf("kind = %s, err = %v", KindOf(err), err)
	}
}

func TestExecuteNetworkErrorCarriesPartialData(t *testing.T) {
	st := &stubTransport{
		resp: &transport.Response{StatusCode: 200, Body: []byte("half a bo")},
		err:  errors.New("connection reset"),
	}

	err := New(WithTransport(st)).Execute(context.Background(), plainEndpoint("https://api.example.com"), nil)

	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != KindNetworkError {
		t.Fatalf("expected network error, got %v", err)
	}
	if string(rerr.PartialBody) != "half a bo" {
		t.Fatalf("partial data lost: %q", rerr.PartialBody)
	}
}

func TestExecuteMissingResponseIsStatusCodeFailure(t *testing.T) {
	st := &stubTransport{resp: nil, err: nil}
	err := New(WithTransport(st)).Execute(context.Background(), plainEndpoint("https://api.example.com"), nil)
	if KindOf(err) != KindStatusCode {
		t.Fatalf("kind = %s", KindOf(err))
	}
}

func TestExecuteDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	var got map[string]any
	err := New().Execute(context.Background(), plainEndpoint(srv.URL), &got)
	if KindOf(err) != KindDecodingFailed {
		t.Fatalf("kind = %s, err = %v", KindOf(err), err)
	}
}

func TestExecuteInterceptorMutationIsSent(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ep := route.Endpoint{
		BaseAddress: srv.URL,
		Method:      http.MethodGet,
		Task:        route.PlainTask{},
		Headers:     map[string]string{"Authorization": "Bearer stale"},
	}

	r := New(WithInterceptor(func(req *transport.Request) {
		req.Header.Set("Authorization", "Bearer fresh")
	}))

	var got map[string]any
	if err := r.Execute(context.Background(), ep, &got); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if seenAuth != "Bearer fresh" {
		t.Fatalf("downstream saw %q, interceptor mutation lost", seenAuth)
	}
}

func TestExecuteLogsFinalRequestOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var logged []*transport.Request
	r := New(
		WithInterceptor(func(req *transport.Request) {
			req.Header.Set("X-Injected", "yes")
		}),
		WithRequestLog(func(req *transport.Request) {
			logged = append(logged, req)
		}),
	)

	if err := r.Execute(context.Background(), plainEndpoint(srv.URL), nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("request logged %d times", len(logged))
	}
	if logged[0].Header.Get("X-Injected") != "yes" {
		t.Fatalf("logger must see the request after interception")
	}
}

func TestExecuteConcurrentCallsDoNotLeak(t *testing.T) {
	handler := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `{"source_name":%q}`, name)
		}
	}
	srvA := httptest.NewServer(handler("alpha"))
	defer srvA.Close()
	srvB := httptest.NewServer(handler("beta"))
	defer srvB.Close()

	r := New()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		for _, tc := range []struct{ base, want string }{
			{srvA.URL, "alpha"},
			{srvB.URL, "beta"},
		} {
			wg.Add(1)
			go func(base, want string) {
				defer wg.Done()
				var got struct{ SourceName string }
				if err := r.Execute(context.Background(), plainEndpoint(base), &got); err != nil {
					errs <- err
					return
				}
				if got.SourceName != want {
					errs <- fmt.Errorf("got %q, want %q", got.SourceName, want)
				}
			}(tc.base, tc.want)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent execute: %v", err)
	}
}
