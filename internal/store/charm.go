// ABOUTME: Charm KV Store implementation with automatic cloud sync.
// ABOUTME: Data is E2E encrypted with the user's SSH key before upload.
package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	badger "github.com/dgraph-io/badger/v3"
)

const (
	charmDBName = "dose"
	charmHost   = "charm.2389.dev"
)

// CharmStore implements Store over Charm KV, syncing after each write.
type CharmStore struct {
	kv       *kv.KV
	autoSync bool
}

// OpenCharm opens the Charm KV database, pulling remote data on startup.
func OpenCharm() (*CharmStore, error) {
	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(charmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	s := &CharmStore{kv: db, autoSync: true}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}

	return s, nil
}

// Get retrieves a value, returning (nil, nil) when the key is absent.
func (s *CharmStore) Get(key string) ([]byte, error) {
	value, err := s.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value and syncs to Charm Cloud.
func (s *CharmStore) Set(key string, value []byte) error {
	if s.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process")
	}
	if err := s.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.syncIfEnabled()
	return nil
}

// Remove deletes a key and syncs to Charm Cloud.
func (s *CharmStore) Remove(key string) error {
	if s.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process")
	}
	if err := s.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	s.syncIfEnabled()
	return nil
}

// Sync synchronizes local state with Charm Cloud.
func (s *CharmStore) Sync() error {
	if s.kv.IsReadOnly() {
		return nil
	}
	return s.kv.Sync()
}

// ID returns the Charm user ID for the current account.
func (s *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// SetAutoSync enables or disables automatic sync after writes.
func (s *CharmStore) SetAutoSync(enabled bool) {
	s.autoSync = enabled
}

func (s *CharmStore) syncIfEnabled() {
	if s.autoSync && !s.kv.IsReadOnly() {
		_ = s.kv.Sync()
	}
}

// Close closes the KV database connection.
func (s *CharmStore) Close() error {
	return s.kv.Close()
}
