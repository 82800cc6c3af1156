// Package models defines the channel status types shared by every streamgrid component.
//
// A channel's last-known status is a [Record], a closed union of exactly three variants:
//   - [LiveRecord] : the channel is streaming, with game, viewer and video details
//   - [OfflineRecord] : the channel exists but is not streaming (also the placeholder for never-fetched channels)
//   - [ErrorRecord] : the status lookup failed; carries the API message and status code
//
// Only this package can add variants, so a type switch over the three is exhaustive.
// [StatusOf] collapses a record to its [Status] for counting and serialization.
package models
