// ABOUTME: Key-value store abstraction for medication data.
// ABOUTME: Defines the Store interface and the three logical record keys.
package store

import (
	"os"
	"path/filepath"
)

// Logical record keys. Everything the tracker persists lives under
// these three keys as JSON.
const (
	KeyMedications = "medications"
	KeyHistory     = "medication-history"
	KeyStats       = "adherence-stats"
)

// Store is a minimal key-value store. Get returns (nil, nil) for a
// missing key so callers can distinguish "absent" from a backend failure.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Close() error
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "dose")
}
