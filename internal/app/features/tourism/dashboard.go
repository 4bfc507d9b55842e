// internal/app/features/tourism/dashboard.go
package tourism

import (
	"net/http"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// ServeDashboard renders the full page.
// GET /
//
// Explicit ?market= / ?district= values are validated, stored in the
// session and then rendered; an unknown value is a 400.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	prev := h.currentSelection(r)

	sel, fromQuery, err := h.querySelection(r, prev)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid dashboard selection", err, "La selecció no és vàlida.", "/")
		return
	}
	if fromQuery && sel != prev {
		if err := h.saveSelection(w, r, prev, sel); err != nil {
			h.Log.Error("save selection failed", zap.Error(err))
		}
	}

	res, err := kpi.Compute(h.Tables, sel, h.Opts)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "compute dashboard failed", err, "No s'han pogut calcular els indicadors.", "/")
		return
	}
	h.Metrics.Render("page")

	data := dashboardData{
		BaseVM:    viewdata.NewBaseVM(r, "Turisme", "/"),
		Markets:   h.marketOptions(sel),
		Districts: h.districtOptions(sel),
		Report:    h.reportLink(),
		Panels:    h.buildPanels(res, csrf.Token(r)),
	}

	templates.Render(w, r, "tourism_dashboard", data)
}

// ServePanels renders the cards and charts for the session's selection.
// GET /panels (HTMX)
func (h *Handler) ServePanels(w http.ResponseWriter, r *http.Request) {
	h.renderPanels(w, r, h.currentSelection(r))
}

func (h *Handler) renderPanels(w http.ResponseWriter, r *http.Request, sel kpi.Selection) {
	res, err := kpi.Compute(h.Tables, sel, h.Opts)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "compute panels failed", err, "No s'han pogut calcular els indicadors.", "/")
		return
	}
	h.Metrics.Render("panels")

	templates.RenderSnippet(w, "tourism_panels", h.buildPanels(res, csrf.Token(r)))
}
