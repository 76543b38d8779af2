// ABOUTME: MCP resource implementations for the journal.
// ABOUTME: Provides fitlog://recent, fitlog://analysis, and fitlog://stats resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentURI   = "fitlog://recent"
	analysisURI = "fitlog://analysis"
	statsURI    = "fitlog://stats"

	recentLimit = 10
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Records",
		Description: "Last 10 daily records",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         analysisURI,
		Name:        "Current Analysis",
		Description: "Health score report over the configured window",
		MIMEType:    "application/json",
	}, s.handleAnalysisResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statsURI,
		Name:        "Journal Stats",
		Description: "Totals, averages, and per-sport breakdown across all records",
		MIMEType:    "application/json",
	}, s.handleStatsResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.ListRecords(recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	if records == nil {
		records = []*models.DailyRecord{}
	}

	return jsonResource(recentURI, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

func (s *Server) handleAnalysisResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.ListRecords(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return jsonResource(analysisURI, analyzer.New(s.opts).Analyze(records))
}

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.ListRecords(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return jsonResource(statsURI, analyzer.ComputeStats(records))
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
