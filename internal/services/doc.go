// Package services implements the network adapter that looks up a channel's
// live status.
//
// # StatusFetcher
//
// Every backend implements [StatusFetcher]. FetchStatus never returns a Go
// error: transport failures, API errors and malformed payloads all come back
// as a [models.ErrorRecord] so one bad channel never aborts a refresh.
//
// # Kraken proxy
//
// [KrakenService] issues GET {base}/streams/{name} through [APIService]
// against a v5-compatible proxy (the default is the freeCodeCamp mirror) and
// hands the body to [ParseKrakenResponse], the single place raw JSON becomes
// a typed record.
//
// # Helix
//
// [HelixService] talks to the official API with an app access token obtained
// through the OAuth2 client credentials grant. It resolves the login first so
// an unknown channel becomes a 404 error record, then looks up the stream.
//
// # Error Handling
//
// Constructors return wrapped sentinels from the shared package:
//   - [shared.ErrMissingCredentials] : helix backend without client id/secret
//   - [shared.ErrInvalidConfig] : unknown backend name
package services
