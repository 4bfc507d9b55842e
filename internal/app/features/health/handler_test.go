package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/tourismboard/internal/app/features/health"
	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/app/system/report"
	"github.com/dalemusser/tourismboard/internal/domain/models"
	"github.com/dalemusser/tourismboard/internal/testutil"
	"go.uber.org/zap"
)

type healthBody struct {
	Status  string `json:"status"`
	Tables  string `json:"tables"`
	Report  string `json:"report"`
	Message string `json:"message"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, healthBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	health.Routes(h).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var body healthBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, body
}

func TestServe_ReportAvailable(t *testing.T) {
	logger := zap.NewNop()
	path := testutil.WriteReport(t, t.TempDir())
	h := health.NewHandler(referencestore.Default(), report.NewSource(path, "", logger), logger)

	rec, body := serve(t, h)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body.Status != "ok" || body.Tables != "loaded" || body.Report != "available" {
		t.Errorf("got %+v", body)
	}
}

func TestServe_ReportMissing(t *testing.T) {
	logger := zap.NewNop()
	path := testutil.MissingReportPath(t, t.TempDir())
	h := health.NewHandler(referencestore.Default(), report.NewSource(path, "", logger), logger)

	rec, body := serve(t, h)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body.Report != "missing" {
		t.Errorf("report: got %q, want %q", body.Report, "missing")
	}
}

func TestServe_TablesMissing(t *testing.T) {
	h := health.NewHandler(nil, nil, zap.NewNop())

	rec, body := serve(t, h)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if body.Status != "error" || body.Tables != "missing" {
		t.Errorf("got %+v", body)
	}
}

func TestServe_TotalsMismatchIsInformational(t *testing.T) {
	markets := referencestore.DefaultMarkets()
	for i := range markets {
		if markets[i].Market == models.MarketTotal {
			markets[i].Travelers++
		}
	}
	tables, err := referencestore.New(markets, referencestore.DefaultDeltas(), referencestore.DefaultDistricts())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := health.NewHandler(tables, nil, zap.NewNop())

	rec, body := serve(t, h)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body.Message == "" {
		t.Error("expected totals mismatch message")
	}
}
