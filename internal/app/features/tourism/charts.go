// internal/app/features/tourism/charts.go
package tourism

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/tourismboard/internal/app/system/charts"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/go-chi/chi/v5"
)

// ServeChart writes one chart as PNG.
// GET /charts/{name}.png
//
// The comparison chart follows ?market= when present so the image URL
// identifies its content; otherwise the session selection is used.
func (h *Handler) ServeChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	sel, _, err := h.querySelection(r, h.currentSelection(r))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid chart selection", err, "La selecció no és vàlida.", "/")
		return
	}

	res, err := kpi.Compute(h.Tables, sel, h.Opts)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "compute chart data failed", err, "No s'ha pogut generar el gràfic.", "/")
		return
	}

	png, err := h.Charts.Render(name, res)
	if err != nil {
		if errors.Is(err, charts.ErrUnknownChart) {
			h.ErrLog.LogNotFound(w, r, "unknown chart", err, "Aquest gràfic no existeix.", "/")
			return
		}
		h.ErrLog.LogServerError(w, r, "chart render failed", err, "No s'ha pogut generar el gràfic.", "/")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "private, no-cache")
	_, _ = w.Write(png)
}
