// Package models defines the service-neutral playlist values exchanged by services, formatters and the CLI.
//
//   - [Playlist] : Basic playlist metadata
//   - [PlaylistExport] : Playlist with complete track listing
//   - [Track] : Song metadata with ISRC for cross-catalog matching
//
// Values are built from Apple Music resources by the services package and carry no API specific fields.
package models
