package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteHelpers(t *testing.T) {
	tests := []struct {
		name     string
		write    func(w http.ResponseWriter)
		wantCode int
		wantBody string
	}{
		{
			name:     "message",
			write:    func(w http.ResponseWriter) { WriteMessage(w, http.StatusOK, "Signed up a@x.edu for Chess Club") },
			wantCode: http.StatusOK,
			wantBody: `{"message":"Signed up a@x.edu for Chess Club"}`,
		},
		{
			name:     "detail",
			write:    func(w http.ResponseWriter) { WriteDetail(w, http.StatusNotFound, DetailActivityNotFound) },
			wantCode: http.StatusNotFound,
			wantBody: `{"detail":"Activity not found"}`,
		},
		{
			name:     "arbitrary json",
			write:    func(w http.ResponseWriter) { WriteJSON(w, http.StatusCreated, map[string]int{"n": 1}) },
			wantCode: http.StatusCreated,
			wantBody: `{"n":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.write(rr)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
