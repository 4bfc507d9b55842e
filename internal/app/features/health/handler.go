package health

import (
	"encoding/json"
	"net/http"

	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/app/system/report"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Tables *referencestore.Store
	Report *report.Source
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(tables *referencestore.Store, rep *report.Source, logger *zap.Logger) *Handler {
	return &Handler{
		Tables: tables,
		Report: rep,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Tables  string `json:"tables"`
	Report  string `json:"report"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "tables":"loaded", "report":"available" }
//
// A missing report is informational only ("report":"missing", still 200),
// as is a market table whose Total row disagrees with its segments.
// Tables that were never loaded give 503 and
//
//	{ "status":"error", "tables":"missing", "message":"Reference tables unavailable" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		Tables: "loaded",
		Report: "missing",
	}

	if h.Report != nil && h.Report.Available() {
		resp.Report = "available"
	}

	if h.Tables == nil {
		h.Log.Error("health-check: reference tables not loaded")
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Tables = "missing"
		resp.Message = "Reference tables unavailable"
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if err := h.Tables.CheckTotals(); err != nil {
		resp.Message = "Market totals do not add up"
		resp.Error = err.Error()
	}

	_ = json.NewEncoder(w).Encode(resp)
}
