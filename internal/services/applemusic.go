package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/models"
	"github.com/desertthunder/amkit/internal/shared"
)

// AppleMusicService implements [Service] on top of an [applemusic.Client].
type AppleMusicService struct {
	opts   applemusic.Options
	client *applemusic.Client
	logger *log.Logger

	// ResolveISRCs makes ExportPlaylist look up each track's ISRC in the catalog.
	ResolveISRCs bool
	// Concurrency bounds parallel catalog lookups during export and import.
	Concurrency int
}

// NewAppleMusicService creates an unauthenticated service. opts configures every client it creates.
func NewAppleMusicService(opts applemusic.Options) *AppleMusicService {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
		shared.SetLogLevel(logger, log.WarnLevel)
	}
	return &AppleMusicService{opts: opts, logger: logger, Concurrency: applemusic.DefaultISRCConcurrency}
}

// NewAppleMusicServiceFromClient wraps an already initialized client.
func NewAppleMusicServiceFromClient(client *applemusic.Client, logger *log.Logger) *AppleMusicService {
	s := NewAppleMusicService(applemusic.Options{Logger: logger})
	s.client = client
	return s
}

func (s *AppleMusicService) Name() string {
	return "Apple Music"
}

// Authenticate expects a "developer_token" and optionally "user_token" and "storefront".
func (s *AppleMusicService) Authenticate(ctx context.Context, credentials map[string]string) error {
	creds := applemusic.Credentials{
		DeveloperToken: credentials["developer_token"],
		UserToken:      credentials["user_token"],
		Storefront:     credentials["storefront"],
	}
	if creds.DeveloperToken == "" {
		return fmt.Errorf("%w: developer_token", shared.ErrMissingCredentials)
	}

	client, err := applemusic.Initialize(ctx, creds, s.opts)
	if err != nil {
		return fmt.Errorf("failed to initialize apple music client: %w", err)
	}
	s.client = client
	return nil
}

// Client returns the authenticated client or [shared.ErrNotInitialized].
func (s *AppleMusicService) Client() (*applemusic.Client, error) {
	if s.client == nil {
		return nil, shared.ErrNotInitialized
	}
	return s.client, nil
}

// GetPlaylists retrieves every library playlist.
func (s *AppleMusicService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	c, err := s.Client()
	if err != nil {
		return nil, err
	}

	found, err := c.LibraryPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(found))
	for _, p := range found {
		playlists = append(playlists, playlistModel(p))
	}
	return playlists, nil
}

// GetPlaylist retrieves a library playlist by ID.
func (s *AppleMusicService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	c, err := s.Client()
	if err != nil {
		return nil, err
	}

	p, err := c.LibraryPlaylist(ctx, playlistID)
	if err != nil {
		return nil, playlistError(playlistID, err)
	}

	playlist := playlistModel(*p)
	return &playlist, nil
}

// ExportPlaylist exports a library playlist with all its tracks.
func (s *AppleMusicService) ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	c, err := s.Client()
	if err != nil {
		return nil, err
	}

	p, err := c.LibraryPlaylist(ctx, playlistID)
	if err != nil {
		return nil, playlistError(playlistID, err)
	}

	songs, err := c.LibraryPlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracks of %s: %w", playlistID, err)
	}

	tracks := make([]models.Track, len(songs))
	for i, song := range songs {
		tracks[i] = libraryTrackModel(song)
	}

	if s.ResolveISRCs {
		isrcs, err := c.ResolveISRCs(ctx, songs, s.Concurrency)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ISRCs for %s: %w", playlistID, err)
		}
		for i, isrc := range isrcs {
			tracks[i].ISRC = isrc
		}
	}

	playlist := playlistModel(*p)
	playlist.TrackCount = len(tracks)

	s.logger.Debug("exported playlist", "id", playlistID, "tracks", len(tracks))
	return &models.PlaylistExport{Playlist: playlist, Tracks: tracks}, nil
}

// ImportPlaylist matches every track in the catalog and creates a library playlist holding the matches.
//
// Tracks without a match are skipped and logged; the import fails only when none match.
func (s *AppleMusicService) ImportPlaylist(ctx context.Context, playlist *models.PlaylistExport) (*models.Playlist, error) {
	c, err := s.Client()
	if err != nil {
		return nil, err
	}
	if err := playlist.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	songs := make([]applemusic.Song, 0, len(playlist.Tracks))
	for _, track := range playlist.Tracks {
		song, err := s.matchTrack(ctx, c, track)
		if errors.Is(err, shared.ErrTrackNotFound) {
			s.logger.Warn("no catalog match", "title", track.Title, "artist", track.Artist)
			continue
		}
		if err != nil {
			return nil, err
		}
		songs = append(songs, *song)
	}

	if len(songs) == 0 && len(playlist.Tracks) > 0 {
		return nil, fmt.Errorf("%w: none of %d tracks matched", shared.ErrTrackNotFound, len(playlist.Tracks))
	}

	created, err := c.CreateLibraryPlaylist(ctx, playlist.Playlist.Name, playlist.Playlist.Description, songs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	result := playlistModel(*created)
	result.TrackCount = len(songs)
	return &result, nil
}

func (s *AppleMusicService) matchTrack(ctx context.Context, c *applemusic.Client, track models.Track) (*applemusic.Song, error) {
	if track.ISRC != "" {
		song, err := c.CatalogSongByISRC(ctx, track.ISRC)
		if err == nil || !errors.Is(err, shared.ErrTrackNotFound) {
			return song, err
		}
	}
	return s.searchSong(ctx, c, track.Title, track.Artist)
}

// SearchTrack searches the catalog by title and artist, preferring an exact normalized match.
func (s *AppleMusicService) SearchTrack(ctx context.Context, title, artist string) (*models.Track, error) {
	c, err := s.Client()
	if err != nil {
		return nil, err
	}

	song, err := s.searchSong(ctx, c, title, artist)
	if err != nil {
		return nil, err
	}

	track := catalogTrackModel(*song)
	return &track, nil
}

func (s *AppleMusicService) searchSong(ctx context.Context, c *applemusic.Client, title, artist string) (*applemusic.Song, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	songs, err := c.SearchCatalogSongs(ctx, title+" "+artist)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: %s - %s", shared.ErrTrackNotFound, artist, title)
	}

	want := shared.NormalizeTrackKey(title, artist)
	for i, song := range songs {
		if song.Attributes != nil && shared.NormalizeTrackKey(song.Attributes.Name, song.Attributes.ArtistName) == want {
			return &songs[i], nil
		}
	}
	return &songs[0], nil
}

func playlistError(id string, err error) error {
	var reqErr *applemusic.RequestError
	if errors.Is(err, shared.ErrResourceNotFound) || (errors.As(err, &reqErr) && reqErr.IsNotFound()) {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return err
}

func playlistModel(p applemusic.LibraryPlaylist) models.Playlist {
	playlist := models.Playlist{ID: p.ID}
	if a := p.Attributes; a != nil {
		playlist.Name = a.Name
		playlist.Description = a.Description.Text()
		playlist.Public = a.IsPublic
		playlist.ArtworkURL = a.Artwork.URLFor(600, 600)
	}
	if r := p.Relationships; r != nil && r.Tracks != nil {
		playlist.TrackCount = len(r.Tracks.Data)
	}
	return playlist
}

func libraryTrackModel(song applemusic.LibrarySong) models.Track {
	track := models.Track{ID: song.ID}
	if a := song.Attributes; a != nil {
		track.Title = a.Name
		track.Artist = a.ArtistName
		track.Album = a.AlbumName
		track.Duration = a.DurationInMillis / 1000
		if a.PlayParams != nil {
			track.CatalogID = a.PlayParams.CatalogID
		}
	}
	return track
}

func catalogTrackModel(song applemusic.Song) models.Track {
	track := models.Track{ID: song.ID, CatalogID: song.ID}
	if a := song.Attributes; a != nil {
		track.Title = a.Name
		track.Artist = a.ArtistName
		track.Album = a.AlbumName
		track.Duration = a.DurationInMillis / 1000
		track.ISRC = a.ISRC
	}
	return track
}
