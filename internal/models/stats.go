// ABOUTME: Running adherence counters and derived percentages.
// ABOUTME: Counters only grow except on explicit full reset.
package models

import "time"

// AdherenceStats holds lifetime adherence counters.
type AdherenceStats struct {
	Taken       int        `json:"taken" yaml:"taken"`
	Skipped     int        `json:"skipped" yaml:"skipped"`
	Missed      int        `json:"missed" yaml:"missed"`
	Total       int        `json:"total" yaml:"total"`
	LastUpdated *time.Time `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// Record increments the counter for status and the total.
func (s *AdherenceStats) Record(status Status, when time.Time) {
	switch status {
	case StatusTaken:
		s.Taken++
	case StatusSkipped:
		s.Skipped++
	case StatusMissed:
		s.Missed++
	default:
		return
	}
	s.Total++
	s.LastUpdated = &when
}

// Percentages holds the per-status share of all recorded doses.
type Percentages struct {
	Taken   float64 `json:"taken"`
	Skipped float64 `json:"skipped"`
	Missed  float64 `json:"missed"`
	Total   int     `json:"total"`
}

// Percentages derives per-status shares. All zero when nothing has been
// recorded yet; never divides by zero.
func (s *AdherenceStats) Percentages() Percentages {
	if s.Total == 0 {
		return Percentages{}
	}
	total := float64(s.Total)
	return Percentages{
		Taken:   float64(s.Taken) / total * 100,
		Skipped: float64(s.Skipped) / total * 100,
		Missed:  float64(s.Missed) / total * 100,
		Total:   s.Total,
	}
}
