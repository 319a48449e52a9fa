// ABOUTME: MCP tool implementations for medication tracking.
// ABOUTME: Provides commands and queries over the adherence engine.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/dose/internal/models"
	"github.com/harperreed/dose/internal/timeutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_medication
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_medication",
		Description: "Register a medication with a daily reminder time",
	}, s.handleAddMedication)

	// list_medications
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_medications",
		Description: "List all registered medications with today's status",
	}, s.handleListMedications)

	// delete_medication
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_medication",
		Description: "Delete a medication by ID or ID prefix",
	}, s.handleDeleteMedication)

	// mark_status
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "mark_status",
		Description: "Mark a medication taken or skipped for today",
	}, s.handleMarkStatus)

	// upcoming_doses
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "upcoming_doses",
		Description: "List doses still ahead of the current time today, soonest first",
	}, s.handleUpcomingDoses)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get adherence counters and percentages",
	}, s.handleGetStats)

	// get_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_history",
		Description: "Get the adherence history grouped by date",
	}, s.handleGetHistory)

	// export_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_data",
		Description: "Export all medications, history, and stats for backup",
	}, s.handleExportData)
}

// Tool input/output types

type addMedicationInput struct {
	Name      string `json:"name" jsonschema:"Medication name"`
	Dosage    string `json:"dosage" jsonschema:"Dosage description (e.g. 100mg)"`
	Frequency string `json:"frequency,omitempty" jsonschema:"daily, weekly, or monthly (default daily)"`
	Time      string `json:"time" jsonschema:"Daily reminder time as HH:MM"`
}

type medicationOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Medication ID or prefix"`
}

type markStatusInput struct {
	ID     string `json:"id" jsonschema:"Medication ID or prefix"`
	Status string `json:"status" jsonschema:"taken or skipped"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAddMedication(ctx context.Context, req *mcp.CallToolRequest, input addMedicationInput) (*mcp.CallToolResult, medicationOutput, error) {
	frequency := input.Frequency
	if frequency == "" {
		frequency = string(models.FrequencyDaily)
	}

	med, err := s.engine.AddMedication(input.Name, input.Dosage, frequency, input.Time)
	if err != nil && med == nil {
		return nil, medicationOutput{}, fmt.Errorf("failed to add medication: %w", err)
	}

	msg := fmt.Sprintf("Added %s (%s) at %s (ID: %s)",
		med.Name, med.Dosage, timeutil.Format(med.Time), med.ID.String()[:8])
	if err != nil {
		msg += fmt.Sprintf(" — reminder not scheduled: %v", err)
	}

	return nil, medicationOutput{
		ID:      med.ID.String()[:8],
		Name:    med.Name,
		Time:    med.Time,
		Message: msg,
	}, nil
}

func (s *Server) handleListMedications(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	meds, err := s.engine.ListMedications()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list medications: %w", err)
	}

	if len(meds) == 0 {
		return nil, map[string]interface{}{"message": "No medications registered."}, nil
	}
	return nil, meds, nil
}

func (s *Server) handleDeleteMedication(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	med, err := s.engine.FindByPrefix(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.engine.DeleteMedication(med.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete medication: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s (%s)", med.Name, med.ID.String()[:8]),
	}, nil
}

func (s *Server) handleMarkStatus(ctx context.Context, req *mcp.CallToolRequest, input markStatusInput) (*mcp.CallToolResult, simpleOutput, error) {
	med, err := s.engine.FindByPrefix(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.engine.MarkStatus(med.ID, models.Status(input.Status), time.Now()); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to mark status: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Marked %s as %s", med.Name, input.Status),
	}, nil
}

func (s *Server) handleUpcomingDoses(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	upcoming, err := s.engine.UpcomingDoses(time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list upcoming doses: %w", err)
	}

	if len(upcoming) == 0 {
		return nil, map[string]interface{}{"message": "No doses remaining today."}, nil
	}
	return nil, upcoming, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	stats, err := s.engine.Stats()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return nil, map[string]interface{}{
		"counters":    stats,
		"percentages": stats.Percentages(),
	}, nil
}

func (s *Server) handleGetHistory(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	history, err := s.engine.History()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get history: %w", err)
	}

	if history.EntryCount() == 0 {
		return nil, map[string]interface{}{"message": "No history recorded."}, nil
	}
	return nil, history, nil
}

func (s *Server) handleExportData(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	export, err := s.engine.ExportAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to export: %w", err)
	}
	return nil, export, nil
}
