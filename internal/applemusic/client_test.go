package applemusic

import (
	"context"
	"net/http"
	"sync"
	"testing"
)

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	initialize := func(t *testing.T, creds Credentials, opts Options, handler http.HandlerFunc) (*Client, int32) {
		t.Helper()
		c, hits := newServerClient(t, creds, handler)
		opts.BaseURL = c.auth.base.String()
		opts.Retry = RetryPolicy{MaxRetries: 1}

		ready, err := Initialize(ctx, creds, opts)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return ready, hits.Load()
	}

	t.Run("Keeps Configured Storefront", func(t *testing.T) {
		c, hits := initialize(t, testCreds, Options{}, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"data":[{"id":"jp"}]}`)
		})

		if sf, _ := c.Storefront(); sf != "us" {
			t.Errorf("expected configured storefront 'us', got %q", sf)
		}
		if hits != 0 {
			t.Errorf("expected no bootstrap request, got %d", hits)
		}
	})

	t.Run("Adopts User Storefront", func(t *testing.T) {
		creds := Credentials{DeveloperToken: "dev-token", UserToken: "user-token"}
		c, hits := initialize(t, creds, Options{}, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/me/storefront" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get(UserTokenHeader) != "user-token" {
				t.Error("expected user token on storefront lookup")
			}
			writeJSON(t, w, http.StatusOK, `{"data":[{"id":"us","type":"storefronts","attributes":{"name":"United States"}}]}`)
		})

		if sf, _ := c.Storefront(); sf != "us" {
			t.Errorf("expected storefront 'us', got %q", sf)
		}
		if hits != 1 {
			t.Errorf("expected 1 bootstrap request, got %d", hits)
		}
	})

	t.Run("Falls Back When Lookup Fails", func(t *testing.T) {
		creds := Credentials{DeveloperToken: "dev-token", UserToken: "user-token"}
		c, _ := initialize(t, creds, Options{}, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusInternalServerError, `{"errors":[]}`)
		})

		if sf, _ := c.Storefront(); sf != DefaultStorefront {
			t.Errorf("expected default storefront %q, got %q", DefaultStorefront, sf)
		}
	})

	t.Run("Falls Back When Lookup Is Empty", func(t *testing.T) {
		creds := Credentials{DeveloperToken: "dev-token", UserToken: "user-token"}
		c, _ := initialize(t, creds, Options{}, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"data":[]}`)
		})

		if sf, _ := c.Storefront(); sf != DefaultStorefront {
			t.Errorf("expected default storefront %q, got %q", DefaultStorefront, sf)
		}
	})

	t.Run("Developer Only Uses Configured Default", func(t *testing.T) {
		creds := Credentials{DeveloperToken: "dev-token"}
		c, hits := initialize(t, creds, Options{DefaultStorefront: "fr"}, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"data":[]}`)
		})

		if sf, _ := c.Storefront(); sf != "fr" {
			t.Errorf("expected storefront 'fr', got %q", sf)
		}
		if c.HasUserAccess() {
			t.Error("expected no user access")
		}
		if hits != 0 {
			t.Errorf("expected no bootstrap request, got %d", hits)
		}
	})

	t.Run("Missing Developer Token", func(t *testing.T) {
		_, err := Initialize(ctx, Credentials{UserToken: "user-token"}, Options{})
		if !IsConfigError(err) {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestClientConcurrentUse(t *testing.T) {
	c, hits := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, songJSON)
	})

	const workers = 16

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			song, err := c.CatalogSong(context.Background(), "1")
			if err == nil && song.Attributes.Name != "One More Time" {
				t.Errorf("unexpected song %+v", song)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	}
	if n := hits.Load(); n != workers {
		t.Errorf("expected %d requests, got %d", workers, n)
	}
}

func TestRateLimitedClient(t *testing.T) {
	c, _ := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, songJSON)
	})

	paced, err := New(testCreds, Options{
		BaseURL:    c.auth.base.String(),
		HTTPClient: c.dispatcher.httpClient,
		RateLimit:  1000,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if paced.dispatcher.limiter == nil {
		t.Fatal("expected limiter to be configured")
	}

	if _, err := paced.CatalogSong(context.Background(), "1"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
