// Package repositories implements SQLite persistence.
//
// Key Implementations:
//   - [KVRepository] : string values in named slots of the kv_store table
//   - [NameStore] : the tracked channel list, stored as a JSON array in the "channels" slot
//
// Every [NameStore] method degrades instead of failing hard: a missing or
// malformed slot reads as "nothing persisted", and callers treat save
// errors as best-effort.
package repositories
