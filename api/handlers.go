/*
handlers.go - HTTP API handlers for the sales reporting application

PURPOSE:
  Exposes the sales analytics engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Reports:
    POST   /api/reports        Run a report (inline or stored dataset)

  Policies:
    GET    /api/policies       List registered revenue/bonus policies

  Datasets:
    GET    /api/datasets       Stored dataset row counts
    POST   /api/datasets       Replace the stored dataset
    DELETE /api/datasets       Clear the stored dataset

  Scenarios:
    GET    /api/scenarios      List demo scenarios
    POST   /api/scenarios/load Load a demo scenario into the store

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Engine validation errors, invalid request bodies
  - 404: Unknown scenario
  - 500: Storage failures

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo dataset builders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/warp/sales-analytics/analytics"
	"github.com/warp/sales-analytics/factory"
	"github.com/warp/sales-analytics/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.ConfigFactory
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:   store,
		Factory: factory.NewConfigFactory(),
	}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// RunReport computes a seller leaderboard.
// POST /api/reports
func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := h.Factory.FromJSON(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report config", err)
		return
	}

	data := req.Data
	if data == nil {
		data, err = h.Store.LoadDataset(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load dataset", err)
			return
		}
	}

	rows, err := analytics.Analyze(data, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if analytics.IsValidationError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Report failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportRowDTOs(rows))
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

// ListPolicies returns the registered policy names.
// GET /api/policies
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PoliciesDTO{
		Revenue: analytics.ListRevenuePolicies(),
		Bonus:   analytics.ListBonusPolicies(),
	})
}

// =============================================================================
// DATASET HANDLERS
// =============================================================================

// GetDataset returns row counts for the stored dataset.
// GET /api/datasets
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Store.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read dataset", err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// SaveDataset replaces the stored dataset.
// POST /api/datasets
func (h *Handler) SaveDataset(w http.ResponseWriter, r *http.Request) {
	var data analytics.Dataset
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dataset body", err)
		return
	}

	if err := h.Store.SaveDataset(r.Context(), data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save dataset", err)
		return
	}

	counts, err := h.Store.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read dataset", err)
		return
	}
	writeJSON(w, http.StatusCreated, counts)
}

// ClearDataset removes the stored dataset.
// DELETE /api/datasets
func (h *Handler) ClearDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear dataset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
