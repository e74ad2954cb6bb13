package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /activities/{name}/signup", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Activity not found"}`))
	})
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	handler := JSONErrors(mux)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
		wantAllow  string
	}{
		{"unknown route", http.MethodGet, "/nowhere", http.StatusNotFound, `{"detail":"Not Found"}`, ""},
		{"wrong method", http.MethodGet, "/activities/Chess%20Club/signup", http.StatusMethodNotAllowed, `{"detail":"Method Not Allowed"}`, "POST"},
		{"handler json 404 untouched", http.MethodPost, "/activities/Chess%20Club/signup", http.StatusNotFound, `{"detail":"Activity not found"}`, ""},
		{"success untouched", http.MethodGet, "/activities", http.StatusOK, `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			}
			if tt.wantAllow != "" {
				assert.Contains(t, rr.Header().Get("Allow"), tt.wantAllow)
			}
		})
	}
}
