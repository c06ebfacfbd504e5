package applemusic

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/amkit/internal/shared"
)

func TestFetchAll(t *testing.T) {
	ctx := context.Background()

	pages := map[string]string{
		"":  `{"data":[{"id":"1","type":"library-songs"},{"id":"2","type":"library-songs"}],"next":"/v1/me/library/songs?offset=2"}`,
		"2": `{"data":[{"id":"3","type":"library-songs"}],"next":"/v1/me/library/songs?offset=3"}`,
		"3": `{"data":[{"id":"4","type":"library-songs"},{"id":"5","type":"library-songs"}]}`,
	}

	t.Run("Follows Every Page In Order", func(t *testing.T) {
		var mu sync.Mutex
		var userTokens []string

		c, hits := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/me/library/songs" || r.Method != http.MethodGet {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			mu.Lock()
			userTokens = append(userTokens, r.Header.Get(UserTokenHeader))
			mu.Unlock()
			writeJSON(t, w, http.StatusOK, pages[r.URL.Query().Get("offset")])
		})

		songs, err := c.LibrarySongs(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := []string{"1", "2", "3", "4", "5"}
		if len(songs) != len(expected) {
			t.Fatalf("expected %d songs, got %d", len(expected), len(songs))
		}
		for i, id := range expected {
			if songs[i].ID != id {
				t.Errorf("position %d: expected id %s, got %s", i, id, songs[i].ID)
			}
		}

		if n := hits.Load(); n != 3 {
			t.Errorf("expected 3 page requests, got %d", n)
		}
		for i, tok := range userTokens {
			if tok != "user-token" {
				t.Errorf("page %d: expected user token, got %q", i+1, tok)
			}
		}
	})

	t.Run("Failing Page Fails Whole Call", func(t *testing.T) {
		c, _ := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("offset") == "2" {
				writeJSON(t, w, http.StatusInternalServerError, `{"errors":[{"status":"500"}]}`)
				return
			}
			writeJSON(t, w, http.StatusOK, pages[r.URL.Query().Get("offset")])
		})

		songs, err := c.LibrarySongs(ctx)
		if songs != nil {
			t.Errorf("expected no partial result, got %d songs", len(songs))
		}

		var reqErr *RequestError
		if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500 request error, got %v", err)
		}
	})

	t.Run("Throttled Page Is Retried", func(t *testing.T) {
		var throttled atomic.Bool
		c, hits := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("offset") == "2" && throttled.CompareAndSwap(false, true) {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			writeJSON(t, w, http.StatusOK, pages[r.URL.Query().Get("offset")])
		})

		songs, err := c.LibrarySongs(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 5 {
			t.Errorf("expected 5 songs, got %d", len(songs))
		}
		if n := hits.Load(); n != 4 {
			t.Errorf("expected 4 requests, got %d", n)
		}
	})

	t.Run("Empty Collection", func(t *testing.T) {
		c, _ := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"data":[]}`)
		})

		songs, err := c.LibrarySongs(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if songs == nil || len(songs) != 0 {
			t.Errorf("expected empty non-nil result, got %v", songs)
		}

		if _, err := c.LibrarySong(ctx, "i.missing"); !errors.Is(err, shared.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})

	t.Run("Catalog Pages Stay Catalog Scoped", func(t *testing.T) {
		c, _ := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(UserTokenHeader) != "" {
				t.Errorf("unexpected user token on %s", r.URL)
			}
			if r.URL.Query().Get("offset") == "" {
				writeJSON(t, w, http.StatusOK, `{"data":[{"id":"1","type":"songs"}],"next":"/v1/catalog/us/playlists/pl.1/tracks?offset=1"}`)
				return
			}
			writeJSON(t, w, http.StatusOK, `{"data":[{"id":"2","type":"songs"}]}`)
		})

		songs, err := c.CatalogPlaylistSongs(ctx, "pl.1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 songs, got %d", len(songs))
		}
	})
}

func TestFollowRelationship(t *testing.T) {
	ctx := context.Background()

	c, hits := newServerClient(t, testCreds, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/catalog/us/albums/a.1/tracks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, `{"data":[{"id":"2","type":"songs"},{"id":"3","type":"songs"}]}`)
	})

	t.Run("Embedded Then Remaining", func(t *testing.T) {
		env := &Envelope[Song]{
			Data: []Song{{ID: "1", Type: TypeSongs}},
			Next: "/v1/catalog/us/albums/a.1/tracks?offset=1",
		}

		songs, err := FollowRelationship(ctx, c, env, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 3 || songs[0].ID != "1" || songs[2].ID != "3" {
			t.Errorf("unexpected songs %+v", songs)
		}
	})

	t.Run("Complete Envelope", func(t *testing.T) {
		before := hits.Load()

		songs, err := FollowRelationship(ctx, c, &Envelope[Song]{Data: []Song{{ID: "1"}}}, false)
		if err != nil || len(songs) != 1 {
			t.Errorf("expected embedded song only, got %v, %v", songs, err)
		}

		empty, err := FollowRelationship[Song](ctx, c, nil, false)
		if err != nil || empty == nil || len(empty) != 0 {
			t.Errorf("expected empty result for nil envelope, got %v, %v", empty, err)
		}

		if hits.Load() != before {
			t.Error("expected no requests for complete envelopes")
		}
	})
}
