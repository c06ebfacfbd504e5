package applemusic

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/amkit/internal/shared"
)

// DefaultBaseURL is the Apple Music API host all paths are resolved against.
const DefaultBaseURL = "https://api.music.apple.com"

// Path segments.
const (
	segVersion    = "v1"
	segMe         = "me"
	segLibrary    = "library"
	segCatalog    = "catalog"
	segStorefront = "storefront"
	segPlaylists  = "playlists"
	segTracks     = "tracks"
	segSongs      = "songs"
	segAlbums     = "albums"
	segArtists    = "artists"
	segSearch     = "search"
)

// URL joins the escaped path segments onto the base URL and appends the encoded query.
func (a *Authenticator) URL(query url.Values, segments ...string) (string, error) {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			return "", fmt.Errorf("%w: empty path segment in %v", shared.ErrInvalidArgument, segments)
		}
		escaped = append(escaped, url.PathEscape(s))
	}

	u := *a.base
	u.Path = strings.TrimSuffix(a.base.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawPath = strings.TrimSuffix(a.base.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	} else {
		u.RawQuery = ""
	}
	return u.String(), nil
}

// ResolveNext resolves an envelope's relative next reference against the base URL.
func (a *Authenticator) ResolveNext(next string) (string, error) {
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("%w: next page %q: %v", shared.ErrInvalidArgument, next, err)
	}
	return a.base.ResolveReference(ref).String(), nil
}

func libraryPath(segments ...string) []string {
	return append([]string{segVersion, segMe, segLibrary}, segments...)
}

func (a *Authenticator) catalogPath(segments ...string) ([]string, error) {
	storefront, err := a.Storefront()
	if err != nil {
		return nil, err
	}
	return append([]string{segVersion, segCatalog, storefront}, segments...), nil
}

// isrcQuery filters catalog songs by ISRC.
func isrcQuery(isrcs ...string) url.Values {
	return url.Values{"filter[isrc]": {strings.Join(isrcs, ",")}}
}

// searchQuery sets the term and, when given, the comma joined result kinds.
// url.Values encodes spaces in the term as '+'.
func searchQuery(term string, types []SearchType) url.Values {
	q := url.Values{"term": {term}}
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		q.Set("types", strings.Join(names, ","))
	}
	return q
}

// libraryIDsQuery builds ids[songs], ids[albums] and ids[playlists], skipping empty lists.
func libraryIDsQuery(songs, albums, playlists []string) url.Values {
	q := url.Values{}
	for key, ids := range map[string][]string{
		"ids[songs]":     songs,
		"ids[albums]":    albums,
		"ids[playlists]": playlists,
	} {
		if len(ids) > 0 {
			q.Set(key, strings.Join(ids, ","))
		}
	}
	return q
}
