// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/tourismboard/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderError writes status and shows the error page with msg.
// If backURL is empty, it resolves a safe back URL with "/" as fallback.
func RenderError(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	base := viewdata.NewBaseVM(r, title, "/")
	if backURL != "" {
		base.BackURL = backURL
	}

	data := pageData{
		BaseVM:  base,
		Status:  status,
		Message: msg,
	}

	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}

// jsonError is the body of every JSON error response.
type jsonError struct {
	Error string `json:"error"`
}

// WriteJSON writes {"error": msg} with the given status.
func WriteJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: msg})
}

// RenderBadRequest shows a 400 page with msg.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	RenderError(w, r, http.StatusBadRequest, "Sol·licitud no vàlida", msg, backURL)
}

// RenderNotFound shows a 404 page with msg.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	RenderError(w, r, http.StatusNotFound, "No trobat", msg, backURL)
}

// RenderServerError shows a 500 page with msg.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	RenderError(w, r, http.StatusInternalServerError, "Error del servidor", msg, backURL)
}
