// internal/app/features/tourism/report.go
package tourism

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dalemusser/tourismboard/internal/app/system/report"
)

// ServeReport shows the PDF inline (the page's report link).
// GET /report
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "inline")
}

// ServeReportDownload sends the PDF as an attachment.
// GET /report/download
func (h *Handler) ServeReportDownload(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "attachment")
}

func (h *Handler) serveReport(w http.ResponseWriter, r *http.Request, disposition string) {
	if h.Report == nil {
		h.ErrLog.LogNotFound(w, r, "report not configured", report.ErrMissingResource, "L'informe no està disponible.", "/")
		return
	}

	f, err := h.Report.Load()
	if err != nil {
		if errors.Is(err, report.ErrMissingResource) {
			h.Metrics.ReportWasMissing()
			h.ErrLog.LogNotFound(w, r, "report missing", err, "L'informe no està disponible.", "/")
			return
		}
		h.ErrLog.LogServerError(w, r, "report load failed", err, "No s'ha pogut llegir l'informe.", "/")
		return
	}
	h.Metrics.ReportServed(disposition)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`%s; filename="%s"; filename*=UTF-8''%s`, disposition, f.Name, url.PathEscape(f.Name)))
	if disposition == "attachment" {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	}
	http.ServeContent(w, r, f.Name, f.ModTime, bytes.NewReader(f.Data))
}
