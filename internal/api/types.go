// ABOUTME: Response bodies for the REST API.
// ABOUTME: JSON field names are snake_case to match the record model.
package api

import (
	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/models"
)

// RecordsResponse is returned by GET /api/health/records.
type RecordsResponse struct {
	Data  []*models.DailyRecord `json:"data"`
	Count int                   `json:"count"`
}

// SavedResponse is returned by POST /api/health/records.
type SavedResponse struct {
	Message string              `json:"message"`
	Data    *models.DailyRecord `json:"data"`
}

// DeletedResponse is returned by the DELETE routes.
type DeletedResponse struct {
	Deleted int    `json:"deleted"`
	Date    string `json:"date,omitempty"`
}

// TipResponse is returned by GET /api/health/tips.
type TipResponse struct {
	Tip string `json:"tip"`
}

// StatsResponse is returned by GET /api/health/stats.
type StatsResponse struct {
	TotalRecords int                     `json:"total_records"`
	Stats        analyzer.Stats          `json:"stats"`
	Analysis     analyzer.AnalysisReport `json:"analysis"`
}

// CoachResponse is returned by GET /api/health/coach.
type CoachResponse struct {
	Summary  string `json:"summary"`
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"`
}

// HealthzResponse is returned by GET /healthz.
type HealthzResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
