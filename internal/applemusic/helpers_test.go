package applemusic

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tu "github.com/desertthunder/amkit/internal/testing"
)

var testCreds = Credentials{DeveloperToken: "dev-token", UserToken: "user-token", Storefront: "us"}

// newServerClient starts a server for handler and a client pointed at it. hits counts every request.
func newServerClient(t *testing.T, creds Credentials, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()

	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(creds, Options{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		Retry:      RetryPolicy{FallbackDelay: 10 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c, hits
}

// newScriptedClient returns a client whose transport replays responses in order.
func newScriptedClient(t *testing.T, policy RetryPolicy, responses ...func(*http.Request) (*http.Response, error)) (*Client, *tu.SequenceRoundTripper) {
	t.Helper()

	rt := tu.NewSequenceRoundTripper(responses...)
	c, err := New(testCreds, Options{
		BaseURL:    "https://api.music.test",
		HTTPClient: &http.Client{Transport: rt},
		Retry:      policy,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c, rt
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("failed to write response: %v", err)
	}
}
