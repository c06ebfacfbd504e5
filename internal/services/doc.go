// Package services defines the [Service] interface for music providers and implements it for Apple Music.
//
// # Service Interface
//
// Providers implement a common abstraction so playlist export and import work the same way regardless of the API behind them.
//
// # Apple Music Implementation
//
// [AppleMusicService] wraps an [applemusic.Client]. Authenticate takes the keys
// "developer_token", "user_token" and "storefront" and resolves the storefront
// once. Library playlists are exported with their tracks; ISRCs are looked up
// in the catalog when [AppleMusicService.ResolveISRCs] is set, since library
// songs do not carry them.
//
// Import matches each track in the catalog by ISRC, falling back to a title and
// artist search, then creates a library playlist holding the matches.
//
// # Raw Access
//
// [APIService] sends arbitrary API paths through the same authentication and
// retry handling and returns the undecoded JSON.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotInitialized] : Authenticate() not called
//   - [shared.ErrMissingCredentials] : no developer token supplied
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlaylistNotFound] : Playlist ID not found
//   - [shared.ErrTrackNotFound] : no catalog match for a track
package services
