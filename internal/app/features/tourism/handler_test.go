package tourism_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/tourismboard/internal/app/features/errors"
	"github.com/dalemusser/tourismboard/internal/app/features/tourism"
	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/app/system/charts"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/metrics"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	"github.com/dalemusser/tourismboard/internal/app/system/report"
	"github.com/dalemusser/tourismboard/internal/app/system/selection"
	"github.com/dalemusser/tourismboard/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

type fixture struct {
	h      *tourism.Handler
	router http.Handler
	m      *metrics.Metrics
}

func newFixture(t *testing.T, reportPath string) fixture {
	t.Helper()
	logger := zap.NewNop()

	num := numfmt.MustNew("en")
	renderer, err := charts.NewRenderer(charts.DefaultCacheSize, num, logger)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	sessions, err := selection.NewManager("test-session-key-must-be-32-chars-long", "tourism-test", "", false, logger)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m := metrics.New()
	renderer.Metrics = m

	if reportPath == "" {
		reportPath = testutil.MissingReportPath(t, t.TempDir())
	}

	h := tourism.NewHandler(
		referencestore.Default(),
		kpi.Options{AvgStayMode: kpi.AvgStayWeighted},
		num,
		renderer,
		report.NewSource(reportPath, "informe.pdf", logger),
		sessions,
		m,
		uierrors.NewErrorLogger(logger),
		logger,
	)
	return fixture{h: h, router: tourism.Routes(h), m: m}
}

// serve runs req through the feature router, tolerating template panics
// from handlers that render pages.
func (f fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	func() {
		defer func() {
			if r := recover(); r != nil {
				// Template rendering may panic in tests - that's expected
			}
		}()
		f.router.ServeHTTP(rec, req)
	}()
	return rec
}

type apiBody struct {
	Result        kpi.Result     `json:"result"`
	GlobalCards   []tourism.Card `json:"global_cards"`
	DistrictCards []tourism.Card `json:"district_cards"`
	Locale        string         `json:"locale"`
}

func decodeAPI(t *testing.T, rec *httptest.ResponseRecorder) apiBody {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var body apiBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestNewCard(t *testing.T) {
	c := tourism.NewCard("Total Viatgers", "705,261", "#FF7F0E")
	if c.Label != "Total Viatgers" || c.Value != "705,261" || c.Color != "#FF7F0E" {
		t.Errorf("got %+v", c)
	}
}

func TestAPI_Defaults(t *testing.T) {
	f := newFixture(t, "")
	body := decodeAPI(t, f.serve(httptest.NewRequest("GET", "/api/dashboard", nil)))

	if body.Result.Global.Travelers != 705261 {
		t.Errorf("travelers: got %d, want 705261", body.Result.Global.Travelers)
	}
	if body.Result.Global.Overnights != 2587360 {
		t.Errorf("overnights: got %d, want 2587360", body.Result.Global.Overnights)
	}
	if body.Result.Selection.Market != "Domestic" || body.Result.Selection.District != "*" {
		t.Errorf("selection: got %+v, want Domestic/*", body.Result.Selection)
	}
	if body.Result.Comparison.Travelers != 289817 || body.Result.Comparison.Overnights != 842852 {
		t.Errorf("comparison: got %+v", body.Result.Comparison)
	}

	want := []string{"705,261", "2,587,360", "3.7 nits"}
	if len(body.GlobalCards) != len(want) {
		t.Fatalf("global cards: got %d, want %d", len(body.GlobalCards), len(want))
	}
	for i, v := range want {
		if body.GlobalCards[i].Value != v {
			t.Errorf("card %d: got %q, want %q", i, body.GlobalCards[i].Value, v)
		}
	}

	if len(body.DistrictCards) != 4 {
		t.Fatalf("district cards: got %d, want 4", len(body.DistrictCards))
	}
	if got := body.DistrictCards[2]; got.Value != "87.1%" || got.Note != "Maresme" {
		t.Errorf("max card: got %+v, want 87.1%% Maresme", got)
	}
	if got := body.DistrictCards[3]; got.Value != "35.1%" || got.Note != "Moianès" {
		t.Errorf("min card: got %+v, want 35.1%% Moianès", got)
	}
}

func TestAPI_QueryOverrides(t *testing.T) {
	f := newFixture(t, "")
	body := decodeAPI(t, f.serve(httptest.NewRequest("GET", "/api/dashboard?market=Foreign&district=Garraf", nil)))

	if body.Result.Comparison.Travelers != 415444 || body.Result.Comparison.Overnights != 1744508 {
		t.Errorf("comparison: got %+v", body.Result.Comparison)
	}
	d := body.Result.District
	if d.Occupancy != 0.753 || d.Opening != 0.962 || d.MaxOccupancy != 0.753 || d.MinOccupancy != 0.753 {
		t.Errorf("district: got %+v", d)
	}
	if body.DistrictCards[0].Label != "Ocupació" {
		t.Errorf("label: got %q, want %q", body.DistrictCards[0].Label, "Ocupació")
	}
}

func TestAPI_InvalidSelection(t *testing.T) {
	f := newFixture(t, "")
	for _, q := range []string{"market=Mars", "district=Atlantis"} {
		rec := f.serve(httptest.NewRequest("GET", "/api/dashboard?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d, want %d", q, rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Errorf("%s: body %q lacks error field", q, rec.Body.String())
		}
	}
}

func TestAPI_IsDeterministic(t *testing.T) {
	f := newFixture(t, "")
	a := f.serve(httptest.NewRequest("GET", "/api/dashboard?market=Total", nil)).Body.Bytes()
	b := f.serve(httptest.NewRequest("GET", "/api/dashboard?market=Total", nil)).Body.Bytes()
	if !bytes.Equal(a, b) {
		t.Error("same selection produced different responses")
	}
}

func TestSelection_PersistsPerSession(t *testing.T) {
	f := newFixture(t, "")

	form := url.Values{"market": {"Foreign"}, "district": {"Osona"}}
	rec := f.serve(testutil.NewFormRequest("/selection", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want %q", loc, "/")
	}

	next := testutil.CarryCookies(rec, httptest.NewRequest("GET", "/api/dashboard", nil))
	body := decodeAPI(t, f.serve(next))
	if body.Result.Selection.Market != "Foreign" || body.Result.Selection.District != "Osona" {
		t.Errorf("selection: got %+v, want Foreign/Osona", body.Result.Selection)
	}

	// A different visitor still sees the defaults.
	other := decodeAPI(t, f.serve(httptest.NewRequest("GET", "/api/dashboard", nil)))
	if other.Result.Selection.Market != "Domestic" {
		t.Errorf("other visitor market: got %q, want Domestic", other.Result.Selection.Market)
	}
}

func TestSelection_PartialFormKeepsOtherField(t *testing.T) {
	f := newFixture(t, "")

	rec := f.serve(testutil.NewFormRequest("/selection", url.Values{"district": {"Bages"}}))
	req := testutil.CarryCookies(rec, testutil.NewFormRequest("/selection", url.Values{"market": {"Total"}}))
	rec2 := f.serve(req)

	next := testutil.CarryCookies(rec2, httptest.NewRequest("GET", "/api/dashboard", nil))
	body := decodeAPI(t, f.serve(next))
	if body.Result.Selection.Market != "Total" || body.Result.Selection.District != "Bages" {
		t.Errorf("selection: got %+v, want Total/Bages", body.Result.Selection)
	}
}

func TestSelection_HTMXRendersPanels(t *testing.T) {
	f := newFixture(t, "")
	req := testutil.NewHTMXRequest(testutil.NewFormRequest("/selection", url.Values{"market": {"Foreign"}}))
	rec := f.serve(req)

	if rec.Code == http.StatusSeeOther {
		t.Error("HTMX request was redirected instead of receiving panels")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("selection cookie not set")
	}
}

func TestSelection_Invalid(t *testing.T) {
	f := newFixture(t, "")
	rec := f.serve(testutil.NewFormRequest("/selection", url.Values{"district": {"Atlantis"}}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDashboard_InvalidQuery(t *testing.T) {
	f := newFixture(t, "")
	rec := f.serve(httptest.NewRequest("GET", "/?market=Mars", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDashboard_QueryPersistsSelection(t *testing.T) {
	f := newFixture(t, "")
	rec := f.serve(httptest.NewRequest("GET", "/?market=Foreign", nil))
	if len(rec.Result().Cookies()) == 0 {
		t.Fatal("query selection was not stored")
	}

	next := testutil.CarryCookies(rec, httptest.NewRequest("GET", "/api/dashboard", nil))
	if got := decodeAPI(t, f.serve(next)).Result.Selection.Market; got != "Foreign" {
		t.Errorf("market: got %q, want Foreign", got)
	}
}

func TestChart_PNG(t *testing.T) {
	f := newFixture(t, "")
	for _, name := range charts.Names {
		rec := f.serve(httptest.NewRequest("GET", "/charts/"+name+".png", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status got %d, want 200", name, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("%s: Content-Type got %q", name, ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
			t.Errorf("%s: body is not a PNG", name)
		}
	}
}

func TestChart_Unknown(t *testing.T) {
	f := newFixture(t, "")
	rec := f.serve(httptest.NewRequest("GET", "/charts/radar.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestReport_Missing(t *testing.T) {
	f := newFixture(t, "")
	for _, path := range []string{"/report", "/report/download"} {
		rec := f.serve(httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status got %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestReport_Download(t *testing.T) {
	path := testutil.WriteReport(t, t.TempDir())
	f := newFixture(t, path)

	rec := f.serve(httptest.NewRequest("GET", "/report/download", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type: got %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="informe.pdf"`) {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	if !bytes.Equal(rec.Body.Bytes(), testutil.MinimalPDF) {
		t.Error("body does not match report file")
	}

	inline := f.serve(httptest.NewRequest("GET", "/report", nil))
	if cd := inline.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "inline") {
		t.Errorf("inline Content-Disposition: got %q", cd)
	}
}

func TestMetrics_CountChartsAndRenders(t *testing.T) {
	f := newFixture(t, "")

	f.serve(httptest.NewRequest("GET", "/charts/occupancy.png", nil))
	f.serve(httptest.NewRequest("GET", "/charts/occupancy.png", nil))
	f.serve(httptest.NewRequest("GET", "/api/dashboard", nil))

	if got := promtest.ToFloat64(f.m.ChartRenders.WithLabelValues("occupancy")); got != 1 {
		t.Errorf("chart renders: got %v, want 1", got)
	}
	if got := promtest.ToFloat64(f.m.ChartCacheHits); got != 1 {
		t.Errorf("chart cache hits: got %v, want 1", got)
	}
	if got := promtest.ToFloat64(f.m.Renders.WithLabelValues("api")); got != 1 {
		t.Errorf("api renders: got %v, want 1", got)
	}
}
