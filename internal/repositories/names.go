package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/streamgrid/internal/shared"
)

// ChannelsKey is the kv_store slot holding the tracked channel names.
const ChannelsKey = "channels"

const probePrefix = "__probe_"

// NameStore persists the ordered channel list as a JSON array.
type NameStore struct {
	kv *KVRepository
}

// NewNameStore creates a [NameStore] on db.
func NewNameStore(db *sql.DB) *NameStore {
	return &NameStore{kv: NewKVRepository(db)}
}

// Available reports whether the store accepts writes, by writing then
// deleting a sentinel key.
func (s *NameStore) Available() bool {
	if s == nil || s.kv == nil {
		return false
	}

	key := probePrefix + shared.GenerateID()
	if err := s.kv.Set(key, "1"); err != nil {
		return false
	}
	return s.kv.Delete(key) == nil
}

// LoadNames returns the persisted names. ok is false when nothing usable is
// stored: the slot is absent, unreadable or not a JSON array of strings.
func (s *NameStore) LoadNames() (names []string, ok bool) {
	raw, found, err := s.kv.Get(ChannelsKey)
	if err != nil || !found {
		return nil, false
	}

	if err := json.Unmarshal([]byte(raw), &names); err != nil || names == nil {
		return nil, false
	}
	return names, true
}

// SaveNames replaces the persisted names.
func (s *NameStore) SaveNames(names []string) error {
	if names == nil {
		names = []string{}
	}

	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to encode names: %w", err)
	}

	if err := s.kv.Set(ChannelsKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes the persisted names so the next load falls back to defaults.
func (s *NameStore) Clear() error {
	return s.kv.Delete(ChannelsKey)
}
