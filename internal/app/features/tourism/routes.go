// internal/app/features/tourism/routes.go
package tourism

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(h.Sessions.LoadSessionID)

	r.Get("/", h.ServeDashboard)
	r.Get("/panels", h.ServePanels)
	r.Post("/selection", h.ServeSelection)
	r.Get("/charts/{name}.png", h.ServeChart)
	r.Get("/api/dashboard", h.ServeAPI)
	r.Get("/report", h.ServeReport)
	r.Get("/report/download", h.ServeReportDownload)
	return r
}
