// ABOUTME: Export snapshot for external backup of medication data.
// ABOUTME: Supports JSON and YAML encodings.
package adherence

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/store"
)

// Export is a read-only snapshot of medications and history.
type Export struct {
	Version     string                `json:"version" yaml:"version"`
	Tool        string                `json:"tool" yaml:"tool"`
	ExportedAt  time.Time             `json:"exported_at" yaml:"exported_at"`
	Medications []*models.Medication  `json:"medications" yaml:"medications"`
	History     models.History        `json:"history" yaml:"history"`
	Stats       models.AdherenceStats `json:"stats" yaml:"stats"`
}

// ExportAll captures the current medications, history, and stats.
func (e *Engine) ExportAll() (*Export, error) {
	export := &Export{
		Version:    "1.0",
		Tool:       "dose",
		ExportedAt: time.Now(),
	}
	err := e.records.View(func(st *store.State) error {
		export.Medications = st.Medications
		export.History = st.History
		export.Stats = st.Stats
		return nil
	})
	if err != nil {
		return nil, err
	}
	if export.History == nil {
		export.History = models.History{}
	}
	return export, nil
}

// ExportJSON renders the export snapshot as indented JSON.
func (e *Engine) ExportJSON() ([]byte, error) {
	export, err := e.ExportAll()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ExportYAML renders the export snapshot as YAML.
func (e *Engine) ExportYAML() ([]byte, error) {
	export, err := e.ExportAll()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}
