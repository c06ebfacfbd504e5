// Package tasks runs multi-step playlist operations with progress reporting.
//
// # Operations
//
// [Engine] implements three operations on top of a [services.Service]:
//
//  1. [Engine.BulkExport] : export many playlists to files
//     - Exports run on a bounded pool paced by a rate limiter
//     - A failed playlist is recorded and does not stop the others
//     - A JSON manifest summarizing the run is written to the output directory
//
//  2. [Engine.Diff] : compare two playlists
//     - Matches tracks via ISRC (preferred) or normalized title/artist
//     - Reports matched count, missing tracks, and extra tracks
//
//  3. [Engine.Dump] : fetch the first page of each library endpoint
//     - Failed endpoints are collected instead of aborting the dump
//
// # Progress Reporting
//
// Every operation accepts an optional channel of [ProgressUpdate]. Sends never
// block: when the channel is full the update is dropped.
package tasks
