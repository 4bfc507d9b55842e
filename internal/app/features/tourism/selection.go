// internal/app/features/tourism/selection.go
package tourism

import (
	"net/http"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
)

// ServeSelection stores a new market/district choice.
// POST /selection
//
// HTMX requests get the refreshed panels back; plain form posts are
// redirected to the page.
func (h *Handler) ServeSelection(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse selection form failed", err, "Formulari no vàlid.", "/")
		return
	}

	prev := h.currentSelection(r)

	market := r.PostForm.Get("market")
	if market == "" {
		market = string(prev.Market)
	}
	district := r.PostForm.Get("district")
	if district == "" {
		district = prev.District
	}

	sel, err := kpi.ParseSelection(h.Tables, market, district)
	if err != nil {
		if isSelectionError(err) {
			h.ErrLog.LogBadRequest(w, r, "invalid selection", err, "La selecció no és vàlida.", "/")
			return
		}
		h.ErrLog.LogServerError(w, r, "parse selection failed", err, "Error intern.", "/")
		return
	}

	if sel != prev {
		if err := h.saveSelection(w, r, prev, sel); err != nil {
			h.ErrLog.LogServerError(w, r, "save selection failed", err, "No s'ha pogut desar la selecció.", "/")
			return
		}
	}

	if r.Header.Get("HX-Request") != "" {
		h.renderPanels(w, r, sel)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
