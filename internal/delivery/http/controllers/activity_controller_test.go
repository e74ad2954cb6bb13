package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolactivities/internal/delivery/http/helpers"
	"schoolactivities/internal/domain"
)

type mockActivityService struct {
	activities map[string]*domain.Activity
	msg        string
	err        error

	gotName  string
	gotEmail string
}

func (m *mockActivityService) List(ctx context.Context) (map[string]*domain.Activity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.activities, nil
}

func (m *mockActivityService) SignUp(ctx context.Context, activityName, email string) (string, error) {
	m.gotName, m.gotEmail = activityName, email
	return m.msg, m.err
}

func (m *mockActivityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	m.gotName, m.gotEmail = activityName, email
	return m.msg, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestActivityController_ListActivities(t *testing.T) {
	chess := domain.NewActivity("Chess Club", "Learn strategies", "Fridays", 12)
	chess.Participants = []string{"michael@mergington.edu"}
	svc := &mockActivityService{activities: map[string]*domain.Activity{"Chess Club": chess}}
	ctrl := NewActivityController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	rr := httptest.NewRecorder()
	ctrl.ListActivities(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"Chess Club": {
			"description": "Learn strategies",
			"schedule": "Fridays",
			"max_participants": 12,
			"participants": ["michael@mergington.edu"]
		}
	}`, rr.Body.String())
}

func TestActivityController_ListActivities_Empty(t *testing.T) {
	ctrl := NewActivityController(testLogger(), &mockActivityService{})

	rr := httptest.NewRecorder()
	ctrl.ListActivities(rr, httptest.NewRequest(http.MethodGet, "/activities", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())
}

func TestActivityController_ListActivities_Error(t *testing.T) {
	ctrl := NewActivityController(testLogger(), &mockActivityService{err: errors.New("db down")})

	rr := httptest.NewRecorder()
	ctrl.ListActivities(rr, httptest.NewRequest(http.MethodGet, "/activities", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, rr.Body.String())
}

func TestActivityController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		svc        *mockActivityService
		wantStatus int
		wantBody   string
		wantEmail  string
	}{
		{
			name:       "success",
			target:     "/activities/Chess%20Club/signup?email=a@x.edu",
			svc:        &mockActivityService{msg: "Signed up a@x.edu for Chess Club"},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Signed up a@x.edu for Chess Club"}`,
			wantEmail:  "a@x.edu",
		},
		{
			name:       "activity not found",
			target:     "/activities/Chess%20Club/signup?email=a@x.edu",
			svc:        &mockActivityService{err: domain.ErrActivityNotFound},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Activity not found"}`,
			wantEmail:  "a@x.edu",
		},
		{
			name:       "already signed up",
			target:     "/activities/Chess%20Club/signup?email=a@x.edu",
			svc:        &mockActivityService{err: domain.ErrAlreadySignedUp},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"Student is already signed up for this activity"}`,
			wantEmail:  "a@x.edu",
		},
		{
			name:       "service error",
			target:     "/activities/Chess%20Club/signup?email=a@x.edu",
			svc:        &mockActivityService{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"Internal server error"}`,
			wantEmail:  "a@x.edu",
		},
		{
			name:       "missing email",
			target:     "/activities/Chess%20Club/signup",
			svc:        &mockActivityService{},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"email query parameter is required"}`,
		},
		{
			name:       "email format is not validated",
			target:     "/activities/Chess%20Club/signup?email=not-an-email",
			svc:        &mockActivityService{msg: "Signed up not-an-email for Chess Club"},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Signed up not-an-email for Chess Club"}`,
			wantEmail:  "not-an-email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewActivityController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			req.SetPathValue("name", "Chess Club")
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			if tt.wantEmail != "" {
				assert.Equal(t, "Chess Club", tt.svc.gotName)
				assert.Equal(t, tt.wantEmail, tt.svc.gotEmail)
			}
		})
	}
}

func TestActivityController_Unregister(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		svc        *mockActivityService
		wantStatus int
		wantDetail string
	}{
		{
			name:       "success",
			target:     "/activities/Chess%20Club/unregister?email=a@x.edu",
			svc:        &mockActivityService{msg: "Unregistered a@x.edu from Chess Club"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "activity not found",
			target:     "/activities/Chess%20Club/unregister?email=a@x.edu",
			svc:        &mockActivityService{err: domain.ErrActivityNotFound},
			wantStatus: http.StatusNotFound,
			wantDetail: helpers.DetailActivityNotFound,
		},
		{
			name:       "not registered",
			target:     "/activities/Chess%20Club/unregister?email=a@x.edu",
			svc:        &mockActivityService{err: domain.ErrNotRegistered},
			wantStatus: http.StatusNotFound,
			wantDetail: helpers.DetailNotRegistered,
		},
		{
			name:       "service error",
			target:     "/activities/Chess%20Club/unregister?email=a@x.edu",
			svc:        &mockActivityService{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantDetail: helpers.DetailInternalError,
		},
		{
			name:       "missing email",
			target:     "/activities/Chess%20Club/unregister",
			svc:        &mockActivityService{},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: helpers.DetailEmailRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewActivityController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			req.SetPathValue("name", "Chess Club")
			rr := httptest.NewRecorder()

			ctrl.Unregister(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantDetail == "" {
				var resp helpers.MessageResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "Unregistered a@x.edu from Chess Club", resp.Message)
				return
			}
			var resp helpers.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantDetail, resp.Detail)
		})
	}
}
