// ABOUTME: MCP resource implementations for the medication tracker.
// ABOUTME: Provides dose://today and dose://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/timeutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// dose://today - today's medications with status and upcoming doses
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "dose://today",
		Name:        "Today's Medications",
		Description: "All medications with today's status and remaining doses",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// dose://summary - adherence dashboard
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "dose://summary",
		Name:        "Adherence Summary",
		Description: "Lifetime adherence counters, percentages, and recent history",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()

	meds, err := s.engine.ListMedications()
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}

	upcoming, err := s.engine.UpcomingDoses(now)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming doses: %w", err)
	}

	type medView struct {
		ID     string        `json:"id"`
		Name   string        `json:"name"`
		Dosage string        `json:"dosage"`
		Time   string        `json:"time"`
		Status models.Status `json:"status"`
	}

	views := make([]medView, 0, len(meds))
	for _, m := range meds {
		views = append(views, medView{
			ID:     m.ID.String()[:8],
			Name:   m.Name,
			Dosage: m.Dosage,
			Time:   timeutil.Format(m.Time),
			Status: m.TodayStatus,
		})
	}

	result := map[string]interface{}{
		"date":        models.DateKey(now),
		"medications": views,
		"upcoming":    len(upcoming),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "dose://today",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.engine.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	history, err := s.engine.History()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	// Last 7 recorded days, most recent first.
	dates := history.Dates()
	recent := map[string][]models.HistoryEntry{}
	start := len(dates) - 7
	if start < 0 {
		start = 0
	}
	for _, d := range dates[start:] {
		recent[d] = history[d]
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"counters":     stats,
		"percentages":  stats.Percentages(),
		"recent_days":  recent,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "dose://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
