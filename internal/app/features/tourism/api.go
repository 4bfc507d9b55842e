// internal/app/features/tourism/api.go
package tourism

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"go.uber.org/zap"
)

// ServeAPI returns the computed dashboard as JSON.
// GET /api/dashboard
//
// Query values override the session selection for this response only.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	sel, _, err := h.querySelection(r, h.currentSelection(r))
	if err != nil {
		h.ErrLog.LogJSON(w, r, http.StatusBadRequest, "invalid api selection", err, err.Error())
		return
	}

	res, err := kpi.Compute(h.Tables, sel, h.Opts)
	if err != nil {
		h.ErrLog.LogJSON(w, r, http.StatusInternalServerError, "compute api failed", err, "internal error")
		return
	}
	h.Metrics.Render("api")

	resp := apiResponse{
		Result:        res,
		GlobalCards:   globalCards(res, h.Num),
		DistrictCards: districtCards(res, h.Num),
		Locale:        h.Num.Locale(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("encode api response failed", zap.Error(err))
	}
}
