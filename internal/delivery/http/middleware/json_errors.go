package middleware

import (
	"net/http"
	"strings"

	"schoolactivities/internal/delivery/http/helpers"
)

// jsonErrorWriter replaces the plain-text 404 and 405 bodies written by
// http.Error (ServeMux, FileServer) with {"detail": "<status text>"}.
type jsonErrorWriter struct {
	http.ResponseWriter
	replaced bool
}

func (w *jsonErrorWriter) WriteHeader(code int) {
	if (code == http.StatusNotFound || code == http.StatusMethodNotAllowed) &&
		strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		w.replaced = true
		w.Header().Del("X-Content-Type-Options")
		helpers.WriteDetail(w.ResponseWriter, code, http.StatusText(code))
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *jsonErrorWriter) Write(b []byte) (int, error) {
	if w.replaced {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// JSONErrors makes router-level 404 and 405 responses use the same JSON error
// body as the handlers. The Allow header of a 405 is kept.
func JSONErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&jsonErrorWriter{ResponseWriter: w}, r)
	})
}
