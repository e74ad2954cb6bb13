package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"generates when absent", "", false},
		{"reuses incoming", "abc-123", true},
		{"replaces oversized", strings.Repeat("x", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := RequestIDFromContext(r.Context())
				require.True(t, ok)
				ctxID = id
			})
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()

			RequestID(next).ServeHTTP(rr, req)

			assert.Equal(t, ctxID, rr.Header().Get(RequestIDHeader))
			if tt.reuse {
				assert.Equal(t, tt.incoming, ctxID)
				return
			}
			_, err := uuid.Parse(ctxID)
			assert.NoError(t, err)
		})
	}
}
