package applemusic

import (
	"strconv"
	"strings"
)

// Resource type identifiers as they appear in the "type" field.
const (
	TypeSongs            = "songs"
	TypeLibrarySongs     = "library-songs"
	TypeAlbums           = "albums"
	TypeLibraryAlbums    = "library-albums"
	TypeArtists          = "artists"
	TypeLibraryArtists   = "library-artists"
	TypePlaylists        = "playlists"
	TypeLibraryPlaylists = "library-playlists"
	TypeStorefronts      = "storefronts"
)

// Catalog and library variants of a kind are distinct types: the library
// attribute sets are smaller and their relationships point at library kinds.
//
// Relationship structs spell out the full Resource instantiation instead of
// these aliases; the compiler cannot resolve aliases that refer back to the
// type being declared.
type (
	Song            = Resource[SongAttributes, SongRelationships]
	LibrarySong     = Resource[LibrarySongAttributes, LibrarySongRelationships]
	Album           = Resource[AlbumAttributes, AlbumRelationships]
	LibraryAlbum    = Resource[LibraryAlbumAttributes, LibraryAlbumRelationships]
	Artist          = Resource[ArtistAttributes, ArtistRelationships]
	LibraryArtist   = Resource[LibraryArtistAttributes, LibraryArtistRelationships]
	Playlist        = Resource[PlaylistAttributes, PlaylistRelationships]
	LibraryPlaylist = Resource[LibraryPlaylistAttributes, LibraryPlaylistRelationships]
	Storefront      = Resource[StorefrontAttributes, struct{}]
)

type SongAttributes struct {
	AlbumName        string          `json:"albumName"`
	ArtistName       string          `json:"artistName"`
	Artwork          *Artwork        `json:"artwork,omitempty"`
	ComposerName     string          `json:"composerName,omitempty"`
	ContentRating    string          `json:"contentRating,omitempty"`
	DiscNumber       int             `json:"discNumber,omitempty"`
	DurationInMillis int             `json:"durationInMillis,omitempty"`
	EditorialNotes   *EditorialNotes `json:"editorialNotes,omitempty"`
	GenreNames       []string        `json:"genreNames,omitempty"`
	ISRC             string          `json:"isrc,omitempty"`
	MovementCount    int             `json:"movementCount,omitempty"`
	MovementName     string          `json:"movementName,omitempty"`
	MovementNumber   int             `json:"movementNumber,omitempty"`
	Name             string          `json:"name"`
	PlayParams       *PlayParams     `json:"playParams,omitempty"`
	Previews         []Preview       `json:"previews,omitempty"`
	ReleaseDate      string          `json:"releaseDate,omitempty"`
	TrackNumber      int             `json:"trackNumber,omitempty"`
	URL              string          `json:"url,omitempty"`
	WorkName         string          `json:"workName,omitempty"`
}

type SongRelationships struct {
	Albums  *Envelope[Resource[AlbumAttributes, AlbumRelationships]]   `json:"albums,omitempty"`
	Artists *Envelope[Resource[ArtistAttributes, ArtistRelationships]] `json:"artists,omitempty"`
}

type LibrarySongAttributes struct {
	AlbumName        string      `json:"albumName"`
	ArtistName       string      `json:"artistName"`
	Artwork          *Artwork    `json:"artwork,omitempty"`
	ContentRating    string      `json:"contentRating,omitempty"`
	DiscNumber       int         `json:"discNumber,omitempty"`
	DurationInMillis int         `json:"durationInMillis,omitempty"`
	PlayParams       *PlayParams `json:"playParams,omitempty"`
	Name             string      `json:"name"`
	TrackNumber      int         `json:"trackNumber,omitempty"`
}

type LibrarySongRelationships struct {
	Albums  *Envelope[Resource[LibraryAlbumAttributes, LibraryAlbumRelationships]]   `json:"albums,omitempty"`
	Artists *Envelope[Resource[LibraryArtistAttributes, LibraryArtistRelationships]] `json:"artists,omitempty"`
}

type AlbumAttributes struct {
	ArtistName          string          `json:"artistName"`
	Artwork             *Artwork        `json:"artwork,omitempty"`
	ContentRating       string          `json:"contentRating,omitempty"`
	Copyright           string          `json:"copyright,omitempty"`
	EditorialNotes      *EditorialNotes `json:"editorialNotes,omitempty"`
	GenreNames          []string        `json:"genreNames,omitempty"`
	IsComplete          bool            `json:"isComplete"`
	IsSingle            bool            `json:"isSingle"`
	IsMasteredForItunes bool            `json:"isMasteredForItunes"`
	Name                string          `json:"name"`
	PlayParams          *PlayParams     `json:"playParams,omitempty"`
	RecordLabel         string          `json:"recordLabel,omitempty"`
	ReleaseDate         string          `json:"releaseDate,omitempty"`
	TrackCount          int             `json:"trackCount"`
	UPC                 string          `json:"upc,omitempty"`
	URL                 string          `json:"url,omitempty"`
}

type AlbumRelationships struct {
	Tracks  *Envelope[Resource[SongAttributes, SongRelationships]]     `json:"tracks,omitempty"`
	Artists *Envelope[Resource[ArtistAttributes, ArtistRelationships]] `json:"artists,omitempty"`
}

type LibraryAlbumAttributes struct {
	ArtistName    string      `json:"artistName"`
	Artwork       *Artwork    `json:"artwork,omitempty"`
	ContentRating string      `json:"contentRating,omitempty"`
	Name          string      `json:"name"`
	PlayParams    *PlayParams `json:"playParams,omitempty"`
	TrackCount    int         `json:"trackCount"`
}

type LibraryAlbumRelationships struct {
	Tracks  *Envelope[Resource[LibrarySongAttributes, LibrarySongRelationships]]     `json:"tracks,omitempty"`
	Artists *Envelope[Resource[LibraryArtistAttributes, LibraryArtistRelationships]] `json:"artists,omitempty"`
}

type ArtistAttributes struct {
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	GenreNames     []string        `json:"genreNames,omitempty"`
	Name           string          `json:"name"`
	URL            string          `json:"url,omitempty"`
}

type ArtistRelationships struct {
	Albums *Envelope[Resource[AlbumAttributes, AlbumRelationships]] `json:"albums,omitempty"`
}

type LibraryArtistAttributes struct {
	Name string `json:"name"`
}

type LibraryArtistRelationships struct {
	Albums *Envelope[Resource[LibraryAlbumAttributes, LibraryAlbumRelationships]] `json:"albums,omitempty"`
}

type PlaylistAttributes struct {
	Artwork          *Artwork        `json:"artwork,omitempty"`
	CuratorName      string          `json:"curatorName,omitempty"`
	Description      *EditorialNotes `json:"description,omitempty"`
	LastModifiedDate string          `json:"lastModifiedDate,omitempty"`
	Name             string          `json:"name"`
	PlaylistType     string          `json:"playlistType,omitempty"`
	PlayParams       *PlayParams     `json:"playParams,omitempty"`
	URL              string          `json:"url,omitempty"`
}

type PlaylistRelationships struct {
	Tracks *Envelope[Resource[SongAttributes, SongRelationships]] `json:"tracks,omitempty"`
}

type LibraryPlaylistAttributes struct {
	Artwork     *Artwork        `json:"artwork,omitempty"`
	Description *EditorialNotes `json:"description,omitempty"`
	Name        string          `json:"name"`
	PlayParams  *PlayParams     `json:"playParams,omitempty"`
	CanEdit     bool            `json:"canEdit"`
	IsPublic    bool            `json:"isPublic"`
	DateAdded   string          `json:"dateAdded,omitempty"`
}

type LibraryPlaylistRelationships struct {
	Tracks *Envelope[Resource[LibrarySongAttributes, LibrarySongRelationships]] `json:"tracks,omitempty"`
}

type StorefrontAttributes struct {
	Name                  string   `json:"name"`
	DefaultLanguageTag    string   `json:"defaultLanguageTag,omitempty"`
	SupportedLanguageTags []string `json:"supportedLanguageTags,omitempty"`
	ExplicitContentPolicy string   `json:"explicitContentPolicy,omitempty"`
}

// Artwork is an image template. URL contains {w} and {h} placeholders.
type Artwork struct {
	BgColor    string `json:"bgColor,omitempty"`
	Height     int    `json:"height,omitempty"`
	Width      int    `json:"width,omitempty"`
	TextColor1 string `json:"textColor1,omitempty"`
	TextColor2 string `json:"textColor2,omitempty"`
	TextColor3 string `json:"textColor3,omitempty"`
	TextColor4 string `json:"textColor4,omitempty"`
	URL        string `json:"url"`
}

// URLFor fills the {w}x{h} template. Non-positive sizes fall back to the artwork's own dimensions.
func (a *Artwork) URLFor(width, height int) string {
	if a == nil {
		return ""
	}
	if width <= 0 {
		width = a.Width
	}
	if height <= 0 {
		height = a.Height
	}
	return strings.NewReplacer("{w}", strconv.Itoa(width), "{h}", strconv.Itoa(height)).Replace(a.URL)
}

type Preview struct {
	Artwork *Artwork `json:"artwork,omitempty"`
	URL     string   `json:"url"`
}

type EditorialNotes struct {
	Short    string `json:"short,omitempty"`
	Standard string `json:"standard,omitempty"`
}

// Text returns the standard note, or the short one when that is all there is.
func (n *EditorialNotes) Text() string {
	if n == nil {
		return ""
	}
	if n.Standard != "" {
		return n.Standard
	}
	return n.Short
}

type PlayParams struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	CatalogID string `json:"catalogId,omitempty"`
	GlobalID  string `json:"globalId,omitempty"`
	IsLibrary bool   `json:"isLibrary,omitempty"`
}
