// ABOUTME: HTTP handlers for the journal REST surface under /api/health.
// ABOUTME: JSON in and out; analysis is recomputed from the store on every request.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/coach"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
	"go.uber.org/zap"
)

// requiredFields must be present in a POST body.
var requiredFields = []string{"date", "sport", "exercise_minutes", "sleep_hours"}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	repo    storage.Repository
	backend string
	logger  *zap.Logger

	mu    sync.RWMutex
	opts  analyzer.Options
	coach *coach.Client
}

// NewHandler creates a handler. coachClient may be nil.
func NewHandler(repo storage.Repository, backend string, opts analyzer.Options, coachClient *coach.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:    repo,
		backend: backend,
		logger:  logger,
		opts:    opts,
		coach:   coachClient,
	}
}

// SetCoach swaps the coach client, used on config reload.
func (h *Handler) SetCoach(c *coach.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.coach = c
}

// SetAnalyzerOptions swaps the default analyzer options, used on config reload.
func (h *Handler) SetAnalyzerOptions(opts analyzer.Options) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opts = opts
}

func (h *Handler) current() (analyzer.Options, *coach.Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.opts, h.coach
}

// --- route handlers ---------------------------------------------------------

// listRecords returns GET /api/health/records.
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.allRecords()
	if err != nil {
		h.storeErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, RecordsResponse{Data: records, Count: len(records)})
}

// addRecord handles POST /api/health/records.
func (h *Handler) addRecord(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rec, err := recordFromBody(body)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.UpsertRecord(rec); err != nil {
		h.storeErr(w, err)
		return
	}

	h.logger.Info("record saved", zap.String("date", rec.Date))
	jsonResp(w, http.StatusOK, SavedResponse{Message: "record saved", Data: rec})
}

// clearRecords handles DELETE /api/health/records.
func (h *Handler) clearRecords(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.ClearAll()
	if err != nil {
		h.storeErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, DeletedResponse{Deleted: n})
}

// deleteRecord handles DELETE /api/health/records/{date}.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	date, err := models.NormalizeDate(r.PathValue("date"))
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.repo.DeleteRecord(date); err != nil {
		h.storeErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, DeletedResponse{Deleted: 1, Date: date})
}

// analysis returns GET /api/health/analysis.
func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	opts, err := h.analyzerOptions(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.repo.ListRecords(0)
	if err != nil {
		h.storeErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, analyzer.New(opts).Analyze(records))
}

// perRun returns GET /api/health/analysis/per_run.
func (h *Handler) perRun(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListRecords(0)
	if err != nil {
		h.storeErr(w, err)
		return
	}
	summaries := analyzer.SummarizeAll(records)
	if summaries == nil {
		summaries = []analyzer.EntrySummary{}
	}
	jsonResp(w, http.StatusOK, summaries)
}

// tips returns GET /api/health/tips.
func (h *Handler) tips(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, TipResponse{Tip: models.RandomTip(nil)})
}

// stats returns GET /api/health/stats.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	opts, err := h.analyzerOptions(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.repo.ListRecords(0)
	if err != nil {
		h.storeErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, StatsResponse{
		TotalRecords: len(records),
		Stats:        analyzer.ComputeStats(records),
		Analysis:     analyzer.New(opts).Analyze(records),
	})
}

// coachSummary returns GET /api/health/coach.
func (h *Handler) coachSummary(w http.ResponseWriter, r *http.Request) {
	opts, err := h.analyzerOptions(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.repo.ListRecords(0)
	if err != nil {
		h.storeErr(w, err)
		return
	}

	_, client := h.current()
	report := analyzer.New(opts).Analyze(records)
	resp := CoachResponse{
		Summary: client.SummarizeOrPlaceholder(r.Context(), analyzer.Digest(records, report)),
		Enabled: client.Enabled(),
	}
	if client != nil {
		resp.Provider = string(client.Provider())
	}
	jsonResp(w, http.StatusOK, resp)
}

// healthz returns GET /healthz.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, HealthzResponse{Status: "ok", Backend: h.backend})
}

// --- helpers ----------------------------------------------------------------

func (h *Handler) allRecords() ([]*models.DailyRecord, error) {
	records, err := h.repo.ListRecords(0)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.DailyRecord{}
	}
	return records, nil
}

// analyzerOptions applies ?window= and ?mode= over the configured defaults.
func (h *Handler) analyzerOptions(r *http.Request) (analyzer.Options, error) {
	opts, _ := h.current()
	q := r.URL.Query()

	if v := q.Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, fmt.Errorf("window must be a positive integer, got %q", v)
		}
		opts.Window = n
	}
	if v := q.Get("mode"); v != "" {
		mode, err := analyzer.ParseMode(v)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	return opts, nil
}

// storeErr maps a storage error to a status code.
func (h *Handler) storeErr(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		jsonErr(w, http.StatusNotFound, err.Error())
		return
	}
	h.logger.Error("store operation failed", zap.Error(err))
	jsonErr(w, http.StatusInternalServerError, err.Error())
}

// recordFromBody validates a POST body and builds a record.
func recordFromBody(body map[string]json.RawMessage) (*models.DailyRecord, error) {
	for _, f := range requiredFields {
		if _, ok := body[f]; !ok {
			return nil, fmt.Errorf("missing required field: %s", f)
		}
	}

	rawDate, err := stringField(body, "date")
	if err != nil {
		return nil, err
	}
	date, err := models.NormalizeDate(rawDate)
	if err != nil {
		return nil, err
	}
	// A null sport is logged as a rest day.
	sport, err := stringField(body, "sport")
	if err != nil {
		return nil, err
	}
	minutes, err := numberField(body, "exercise_minutes")
	if err != nil {
		return nil, err
	}
	sleep, err := numberField(body, "sleep_hours")
	if err != nil {
		return nil, err
	}

	var quality float64
	if _, ok := body["sleep_quality"]; ok {
		if quality, err = numberField(body, "sleep_quality"); err != nil {
			return nil, err
		}
	}

	rec := models.NewDailyRecord(date, sport, minutes, sleep, quality)
	if _, ok := body["notes"]; ok {
		notes, err := stringField(body, "notes")
		if err != nil {
			return nil, err
		}
		rec.WithNotes(notes)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func stringField(body map[string]json.RawMessage, name string) (string, error) {
	raw := body[name]
	if string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return s, nil
}

// numberField accepts a JSON number or a numeric string.
func numberField(body map[string]json.RawMessage, name string) (float64, error) {
	raw := body[name]
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%s must be a number", name)
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
