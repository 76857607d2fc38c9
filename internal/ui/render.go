package ui

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/templui/agencysite/internal/ctxkeys"
)

func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	RenderStatus(w, r, http.StatusOK, c)
}

// RenderStatus renders c, plus any out-of-band fragments after it, and writes
// them with status. A render failure is logged and answered with a 500.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component, oob ...templ.Component) {
	var buf bytes.Buffer

	for _, part := range append([]templ.Component{c}, oob...) {
		err := part.Render(r.Context(), &buf)
		if err != nil {
			slog.ErrorContext(r.Context(), "render failed",
				"error", err,
				"path", r.URL.Path,
				"request_id", ctxkeys.RequestID(r.Context()),
			)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
