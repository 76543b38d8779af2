// ABOUTME: MCP tool implementations for the journal.
// ABOUTME: Record CRUD plus analysis, per-entry summaries, tips, stats, and coaching.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_record",
		Description: "Log one day of exercise and sleep. Replaces any record for the same date.",
	}, s.handleAddRecord)

	// list_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List journal records in the order they were logged",
	}, s.handleListRecords)

	// delete_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete the record for a date",
	}, s.handleDeleteRecord)

	// analyze
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze",
		Description: "Score recent exercise and sleep habits over a trailing window",
	}, s.handleAnalyze)

	// summarize_entry
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "summarize_entry",
		Description: "Describe one day compared with the rest of the journal",
	}, s.handleSummarizeEntry)

	// get_tip
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_tip",
		Description: "Get a random health tip",
	}, s.handleGetTip)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Whole-journal totals plus the current analysis",
	}, s.handleGetStats)

	// coach
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "coach",
		Description: "Ask the configured LLM provider for a short coaching paragraph",
	}, s.handleCoach)
}

// Tool input/output types

type addRecordInput struct {
	Date            string  `json:"date" jsonschema:"Day being logged (YYYY-MM-DD, today, or yesterday)"`
	Sport           string  `json:"sport" jsonschema:"Sport or activity; empty for a rest day"`
	ExerciseMinutes float64 `json:"exercise_minutes" jsonschema:"Minutes of exercise"`
	SleepHours      float64 `json:"sleep_hours" jsonschema:"Hours slept"`
	SleepQuality    float64 `json:"sleep_quality,omitempty" jsonschema:"Sleep quality from 1 to 5, 0 when unrated"`
	Notes           string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type recordOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type listRecordsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Keep only the most recent N records (default all)"`
}

type listRecordsOutput struct {
	Records []recordView `json:"records"`
	Count   int          `json:"count"`
}

// recordView is the flat record shape returned to MCP clients.
type recordView struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Sport           string  `json:"sport"`
	ExerciseMinutes float64 `json:"exercise_minutes"`
	SleepHours      float64 `json:"sleep_hours"`
	SleepQuality    float64 `json:"sleep_quality"`
	Notes           string  `json:"notes,omitempty"`
}

func toView(r *models.DailyRecord) recordView {
	v := recordView{
		ID:              r.ID.String(),
		Date:            r.Date,
		Sport:           r.Sport,
		ExerciseMinutes: r.ExerciseMinutes,
		SleepHours:      r.SleepHours,
		SleepQuality:    r.SleepQuality,
	}
	if r.HasNotes() {
		v.Notes = *r.Notes
	}
	return v
}

type dateInput struct {
	Date string `json:"date" jsonschema:"Record date (YYYY-MM-DD)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type analyzeInput struct {
	Window int    `json:"window,omitempty" jsonschema:"Trailing window size in records (default from config, usually 7)"`
	Mode   string `json:"mode,omitempty" jsonschema:"basic or composite"`
}

type getTipInput struct{}

type tipOutput struct {
	Tip string `json:"tip"`
}

type statsOutput struct {
	TotalRecords int                     `json:"total_records"`
	Stats        analyzer.Stats          `json:"stats"`
	Analysis     analyzer.AnalysisReport `json:"analysis"`
}

type coachOutput struct {
	Summary  string `json:"summary"`
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"`
}

// Tool handlers

func (s *Server) handleAddRecord(ctx context.Context, req *mcp.CallToolRequest, input addRecordInput) (*mcp.CallToolResult, recordOutput, error) {
	date, err := models.NormalizeDate(input.Date)
	if err != nil {
		return nil, recordOutput{}, err
	}

	r := models.NewDailyRecord(date, strings.TrimSpace(input.Sport), input.ExerciseMinutes, input.SleepHours, input.SleepQuality)
	if input.Notes != "" {
		r.WithNotes(input.Notes)
	}
	if err := r.Validate(); err != nil {
		return nil, recordOutput{}, err
	}

	if err := s.repo.UpsertRecord(r); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to save record: %w", err)
	}

	activity := r.Sport
	if r.IsRestDay() {
		activity = "rest day"
	}
	return nil, recordOutput{
		ID:      r.ID.String()[:8],
		Date:    r.Date,
		Message: fmt.Sprintf("Saved %s: %s, %.0f min, %.1f h sleep", r.Date, activity, r.ExerciseMinutes, r.SleepHours),
	}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, listRecordsOutput, error) {
	records, err := s.repo.ListRecords(input.Limit)
	if err != nil {
		return nil, listRecordsOutput{}, fmt.Errorf("failed to list records: %w", err)
	}
	views := make([]recordView, 0, len(records))
	for _, r := range records {
		views = append(views, toView(r))
	}
	return nil, listRecordsOutput{Records: views, Count: len(views)}, nil
}

func (s *Server) handleDeleteRecord(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := models.NormalizeDate(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.repo.DeleteRecord(date); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete record: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted record: %s", date)}, nil
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzer.AnalysisReport, error) {
	a, err := s.analyzerFor(input.Window, input.Mode)
	if err != nil {
		return nil, analyzer.AnalysisReport{}, err
	}
	records, err := s.repo.ListRecords(0)
	if err != nil {
		return nil, analyzer.AnalysisReport{}, fmt.Errorf("failed to list records: %w", err)
	}
	return nil, a.Analyze(records), nil
}

func (s *Server) handleSummarizeEntry(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, analyzer.EntrySummary, error) {
	date, err := models.NormalizeDate(input.Date)
	if err != nil {
		return nil, analyzer.EntrySummary{}, err
	}
	records, err := s.repo.ListRecords(0)
	if err != nil {
		return nil, analyzer.EntrySummary{}, fmt.Errorf("failed to list records: %w", err)
	}
	for _, r := range records {
		if r.Date == date {
			return nil, analyzer.SummarizeEntry(r, records), nil
		}
	}
	return nil, analyzer.EntrySummary{}, fmt.Errorf("no record for %s", date)
}

func (s *Server) handleGetTip(ctx context.Context, req *mcp.CallToolRequest, input getTipInput) (*mcp.CallToolResult, tipOutput, error) {
	return nil, tipOutput{Tip: models.RandomTip(nil)}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, statsOutput, error) {
	a, err := s.analyzerFor(input.Window, input.Mode)
	if err != nil {
		return nil, statsOutput{}, err
	}
	records, err := s.repo.ListRecords(0)
	if err != nil {
		return nil, statsOutput{}, fmt.Errorf("failed to list records: %w", err)
	}
	return nil, statsOutput{
		TotalRecords: len(records),
		Stats:        analyzer.ComputeStats(records),
		Analysis:     a.Analyze(records),
	}, nil
}

func (s *Server) handleCoach(ctx context.Context, req *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, coachOutput, error) {
	a, err := s.analyzerFor(input.Window, input.Mode)
	if err != nil {
		return nil, coachOutput{}, err
	}
	records, err := s.repo.ListRecords(0)
	if err != nil {
		return nil, coachOutput{}, fmt.Errorf("failed to list records: %w", err)
	}

	out := coachOutput{
		Summary: s.coach.SummarizeOrPlaceholder(ctx, analyzer.Digest(records, a.Analyze(records))),
		Enabled: s.coach.Enabled(),
	}
	if s.coach != nil {
		out.Provider = string(s.coach.Provider())
	}
	return nil, out, nil
}
