package applemusic

import (
	"fmt"
	"net/url"
)

// Resource is the shape shared by every catalog and library object.
//
// A is the kind's attribute set and R its relationships. Both are pointers
// because the API omits them depending on the endpoint and requested views.
type Resource[A, R any] struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Href          string `json:"href,omitempty"`
	Attributes    *A     `json:"attributes,omitempty"`
	Relationships *R     `json:"relationships,omitempty"`
}

// SelfLink parses Href. It returns nil when the resource carries no link.
func (r Resource[A, R]) SelfLink() (*url.URL, error) {
	if r.Href == "" {
		return nil, nil
	}
	u, err := url.Parse(r.Href)
	if err != nil {
		return nil, fmt.Errorf("invalid resource href %q: %w", r.Href, err)
	}
	return u, nil
}

// Envelope is one page of a collection: the items and an optional relative reference to the next page.
//
// Relationships embed envelopes too. Those are never followed automatically;
// see [Client.FollowRelationship].
type Envelope[T any] struct {
	Data []T    `json:"data"`
	Href string `json:"href,omitempty"`
	Next string `json:"next,omitempty"`
}

// HasNext reports whether another page exists.
func (e *Envelope[T]) HasNext() bool {
	return e != nil && e.Next != ""
}

// SearchType selects which resource kinds a search returns.
type SearchType string

const (
	SearchSongs            SearchType = "songs"
	SearchAlbums           SearchType = "albums"
	SearchArtists          SearchType = "artists"
	SearchPlaylists        SearchType = "playlists"
	SearchLibrarySongs     SearchType = "library-songs"
	SearchLibraryAlbums    SearchType = "library-albums"
	SearchLibraryArtists   SearchType = "library-artists"
	SearchLibraryPlaylists SearchType = "library-playlists"
)

// SearchResults maps catalog kinds to their envelopes. Kinds the server omitted are nil.
type SearchResults struct {
	Songs     *Envelope[Song]     `json:"songs,omitempty"`
	Albums    *Envelope[Album]    `json:"albums,omitempty"`
	Artists   *Envelope[Artist]   `json:"artists,omitempty"`
	Playlists *Envelope[Playlist] `json:"playlists,omitempty"`
}

// LibrarySearchResults maps library kinds to their envelopes. Kinds the server omitted are nil.
type LibrarySearchResults struct {
	Songs     *Envelope[LibrarySong]     `json:"library-songs,omitempty"`
	Albums    *Envelope[LibraryAlbum]    `json:"library-albums,omitempty"`
	Artists   *Envelope[LibraryArtist]   `json:"library-artists,omitempty"`
	Playlists *Envelope[LibraryPlaylist] `json:"library-playlists,omitempty"`
}

type searchResponse[R any] struct {
	Results R `json:"results"`
}

// items returns the envelope's data, tolerating a nil envelope.
func items[T any](e *Envelope[T]) []T {
	if e == nil {
		return nil
	}
	return e.Data
}

// PlaylistTrack references a song in a playlist write request.
type PlaylistTrack struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// PlaylistRequest is the body for creating a library playlist or appending tracks to one.
type PlaylistRequest struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Tracks      []PlaylistTrack `json:"tracks"`
}

// PlaylistTracks lists catalog songs (type "songs") followed by library songs (type "library-songs").
func PlaylistTracks(songs []Song, librarySongs []LibrarySong) []PlaylistTrack {
	tracks := make([]PlaylistTrack, 0, len(songs)+len(librarySongs))
	for _, s := range songs {
		tracks = append(tracks, PlaylistTrack{ID: s.ID, Type: TypeSongs})
	}
	for _, s := range librarySongs {
		tracks = append(tracks, PlaylistTrack{ID: s.ID, Type: TypeLibrarySongs})
	}
	return tracks
}
