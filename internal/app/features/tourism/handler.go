// internal/app/features/tourism/handler.go
package tourism

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/tourismboard/internal/app/features/errors"
	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/app/system/charts"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/metrics"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	"github.com/dalemusser/tourismboard/internal/app/system/report"
	"github.com/dalemusser/tourismboard/internal/app/system/selection"
	"go.uber.org/zap"
)

// Handler serves the dashboard. Everything it holds is read-only after
// construction; per-visitor state lives in the selection session.
type Handler struct {
	Tables   *referencestore.Store
	Opts     kpi.Options
	Num      *numfmt.Formatter
	Charts   *charts.Renderer
	Report   *report.Source
	Sessions *selection.Manager
	Metrics  *metrics.Metrics
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(
	tables *referencestore.Store,
	opts kpi.Options,
	num *numfmt.Formatter,
	chartRenderer *charts.Renderer,
	rep *report.Source,
	sessions *selection.Manager,
	m *metrics.Metrics,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Tables:   tables,
		Opts:     opts,
		Num:      num,
		Charts:   chartRenderer,
		Report:   rep,
		Sessions: sessions,
		Metrics:  m,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// currentSelection resolves the session's stored choice against the tables.
// A stale value (tables reloaded with different rows) falls back to the
// defaults instead of failing the page.
func (h *Handler) currentSelection(r *http.Request) kpi.Selection {
	raw := h.Sessions.Get(r)
	sel, err := kpi.ParseSelection(h.Tables, raw.Market, raw.District)
	if err != nil {
		h.Log.Warn("stored selection no longer valid, using defaults",
			zap.String("session_id", selection.SessionID(r)),
			zap.Error(err))
		return kpi.DefaultSelection(h.Tables)
	}
	return sel
}

// querySelection applies explicit market/district query values on top of
// base. ok is false when neither value is present.
func (h *Handler) querySelection(r *http.Request, base kpi.Selection) (sel kpi.Selection, ok bool, err error) {
	q := r.URL.Query()
	market, district := q.Get("market"), q.Get("district")
	if market == "" && district == "" {
		return base, false, nil
	}
	if market == "" {
		market = string(base.Market)
	}
	if district == "" {
		district = base.District
	}
	sel, err = kpi.ParseSelection(h.Tables, market, district)
	return sel, true, err
}

// isSelectionError reports whether err came from validating user input.
func isSelectionError(err error) bool {
	return errors.Is(err, kpi.ErrUnknownMarket) || errors.Is(err, kpi.ErrUnknownDistrict)
}

// saveSelection persists sel and counts which fields changed.
func (h *Handler) saveSelection(w http.ResponseWriter, r *http.Request, prev, sel kpi.Selection) error {
	if err := h.Sessions.Save(w, r, selection.Raw{Market: string(sel.Market), District: sel.District}); err != nil {
		return err
	}
	if prev.Market != sel.Market {
		h.Metrics.SelectionChanged("market")
	}
	if prev.District != sel.District {
		h.Metrics.SelectionChanged("district")
	}
	h.Log.Info("selection changed",
		zap.String("session_id", selection.SessionID(r)),
		zap.String("market", string(sel.Market)),
		zap.String("district", sel.District))
	return nil
}
