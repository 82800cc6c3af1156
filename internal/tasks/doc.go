// Package tasks runs the refresh operation and holds the application state.
//
// # Refresh
//
// [Engine.Fetch] issues one [services.StatusFetcher] lookup per channel on an
// errgroup, bounded by the configured concurrency. Lookups never fail from
// the group's point of view (errors are already error records), so waiting
// on the group is an all-settled join. Results keep the order of the input
// names. [Engine.Apply] then writes them into a registry, dropping results
// for channels that are no longer tracked.
//
// # Progress Reporting
//
// Operations accept an optional progress channel. Updates use select with
// default so a slow consumer never blocks a refresh.
//
// # Tracker
//
// [Tracker] is the explicit state object shared by the CLI, the terminal
// grid and the web server: registry, filter, persistence and the engine
// behind one mutex. Mutations persist the names best-effort through a
// [NameStore]; a nil store disables persistence.
package tasks
