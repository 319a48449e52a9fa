// ABOUTME: Typed transactional access to the three medication records.
// ABOUTME: Serializes all readers and writers through a single mutex.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/harperreed/dose/internal/models"
)

// State is an in-memory snapshot of everything the tracker persists.
type State struct {
	Medications []*models.Medication
	History     models.History
	Stats       models.AdherenceStats
}

// Records provides typed, serialized access to the Store.
//
// Every logical operation runs inside View or Update, so a concurrent
// mark and rollover can never interleave their read-modify-write cycles.
// Update persists all three records together; a reader observing the
// store after Update returns sees all of the operation's effects.
type Records struct {
	mu    sync.Mutex
	store Store
}

// NewRecords wraps a Store with typed record access.
func NewRecords(s Store) *Records {
	return &Records{store: s}
}

// View runs fn against a loaded snapshot without persisting changes.
func (r *Records) View(fn func(*State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := r.load()
	if err != nil {
		return err
	}
	return fn(st)
}

// Update runs fn against a loaded snapshot and persists all three
// records if fn succeeds. Nothing is written when fn returns an error.
func (r *Records) Update(fn func(*State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := r.load()
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return r.persist(st)
}

// Medications returns the current medication list.
func (r *Records) Medications() ([]*models.Medication, error) {
	var meds []*models.Medication
	err := r.View(func(st *State) error {
		meds = st.Medications
		return nil
	})
	return meds, err
}

// Stats returns the current adherence counters.
func (r *Records) Stats() (models.AdherenceStats, error) {
	var stats models.AdherenceStats
	err := r.View(func(st *State) error {
		stats = st.Stats
		return nil
	})
	return stats, err
}

// History returns the full adherence history.
func (r *Records) History() (models.History, error) {
	var history models.History
	err := r.View(func(st *State) error {
		history = st.History
		return nil
	})
	return history, err
}

// Reset removes all three records. Irreversible.
func (r *Records) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range []string{KeyMedications, KeyHistory, KeyStats} {
		if err := r.store.Remove(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// Close closes the underlying store.
func (r *Records) Close() error {
	return r.store.Close()
}

func (r *Records) load() (*State, error) {
	st := &State{History: models.History{}}

	if err := r.loadJSON(KeyMedications, &st.Medications); err != nil {
		return nil, err
	}
	if err := r.loadJSON(KeyHistory, &st.History); err != nil {
		return nil, err
	}
	if err := r.loadJSON(KeyStats, &st.Stats); err != nil {
		return nil, err
	}
	if st.History == nil {
		st.History = models.History{}
	}
	return st, nil
}

func (r *Records) loadJSON(key string, v interface{}) error {
	data, err := r.store.Get(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Records) persist(st *State) error {
	if err := r.saveJSON(KeyMedications, st.Medications); err != nil {
		return err
	}
	if err := r.saveJSON(KeyHistory, st.History); err != nil {
		return err
	}
	return r.saveJSON(KeyStats, st.Stats)
}

func (r *Records) saveJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
