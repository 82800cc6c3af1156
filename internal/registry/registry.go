// Package registry implements the ordered channel registry: a mapping from normalized channel name
// to its last-known [models.Record] that preserves insertion order.
//
// A Registry is not safe for concurrent use. Exactly one owner mutates it; front ends share it
// through tasks.Tracker, which serializes access.
package registry

import (
	"github.com/desertthunder/streamgrid/internal/models"
	"github.com/desertthunder/streamgrid/internal/shared"
)

// Entry is a named record in registry order.
type Entry struct {
	Name   string
	Record models.Record
}

// Registry is an insertion-ordered map from normalized channel name to record.
type Registry struct {
	order   []string
	records map[string]models.Record
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{records: make(map[string]models.Record)}
}

// FromNames creates a Registry populated via [Registry.LoadNames].
func FromNames(names []string) *Registry {
	r := New()
	r.LoadNames(names)
	return r
}

// Add inserts name with an offline placeholder at the end.
//
// Returns false when the normalized name is empty or already present.
func (r *Registry) Add(name string) bool {
	key := shared.NormalizeChannelName(name)
	if key == "" {
		return false
	}
	if _, ok := r.records[key]; ok {
		return false
	}

	r.order = append(r.order, key)
	r.records[key] = models.OfflineRecord{}
	return true
}

// Remove deletes name if present and reports whether it was.
func (r *Registry) Remove(name string) bool {
	key := shared.NormalizeChannelName(name)
	if _, ok := r.records[key]; !ok {
		return false
	}

	delete(r.records, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// LoadNames replaces the whole registry with one offline entry per name.
//
// Blank names are skipped; on duplicates after normalization the first occurrence wins.
func (r *Registry) LoadNames(names []string) {
	r.order = make([]string, 0, len(names))
	r.records = make(map[string]models.Record, len(names))
	for _, name := range names {
		r.Add(name)
	}
}

// ApplyResult overwrites the record stored for an existing name.
//
// Results for names no longer in the registry are dropped and false is returned.
func (r *Registry) ApplyResult(name string, record models.Record) bool {
	key := shared.NormalizeChannelName(name)
	if _, ok := r.records[key]; !ok {
		return false
	}
	if record == nil {
		record = models.OfflineRecord{}
	}
	r.records[key] = record
	return true
}

// NamesInOrder returns a copy of the keys in display order.
func (r *Registry) NamesInOrder() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Get returns the record stored for name.
func (r *Registry) Get(name string) (models.Record, bool) {
	rec, ok := r.records[shared.NormalizeChannelName(name)]
	return rec, ok
}

// Has reports whether name is tracked.
func (r *Registry) Has(name string) bool {
	_, ok := r.records[shared.NormalizeChannelName(name)]
	return ok
}

// Len returns the number of tracked channels.
func (r *Registry) Len() int {
	return len(r.order)
}

// Entries returns a copy of every name/record pair in display order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, len(r.order))
	for i, name := range r.order {
		entries[i] = Entry{Name: name, Record: r.records[name]}
	}
	return entries
}
