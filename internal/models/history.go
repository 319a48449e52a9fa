// ABOUTME: Append-only adherence history grouped by calendar date.
// ABOUTME: Entries are written on status changes and rollovers, never mutated.
package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DateKeyLayout is the calendar-date key format for history grouping.
const DateKeyLayout = "2006-01-02"

// DateKey returns the history grouping key for a timestamp.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// HistoryEntry records a single adherence event for a medication.
type HistoryEntry struct {
	MedicationID uuid.UUID `json:"medication_id" yaml:"medication_id"`
	Status       Status    `json:"status" yaml:"status"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
}

// History maps a date key (YYYY-MM-DD) to that day's ordered entries.
type History map[string][]HistoryEntry

// Append adds an entry under the date key derived from its timestamp.
func (h History) Append(e HistoryEntry) {
	key := DateKey(e.Timestamp)
	h[key] = append(h[key], e)
}

// Dates returns all recorded date keys in ascending order.
func (h History) Dates() []string {
	dates := make([]string, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// EntryCount returns the total number of entries across all dates.
func (h History) EntryCount() int {
	n := 0
	for _, entries := range h {
		n += len(entries)
	}
	return n
}
