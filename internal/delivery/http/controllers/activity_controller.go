package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"schoolactivities/internal/delivery/http/helpers"
	"schoolactivities/internal/domain"
)

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

// ListActivities godoc
// @Summary List activities
// @Description Returns every activity keyed by name, with its description, schedule, max_participants and current participants in signup order.
// @Tags activities
// @Produce json
// @Success 200 {object} map[string]domain.Activity
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities [get]
func (c *ActivityController) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := c.Service.List(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if activities == nil {
		activities = map[string]*domain.Activity{}
	}
	helpers.WriteJSON(w, http.StatusOK, activities)
}

// SignUp godoc
// @Summary Sign up for an activity
// @Description Appends the email to the activity's participants. max_participants is not enforced.
// @Tags activities
// @Produce json
// @Param name path string true "Activity name"
// @Param email query string true "Participant email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "already signed up"
// @Failure 404 {object} helpers.ErrorResponse "activity not found"
// @Failure 422 {object} helpers.ErrorResponse "email missing"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name}/signup [post]
func (c *ActivityController) SignUp(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email, ok := emailParam(w, r)
	if !ok {
		return
	}

	msg, err := c.Service.SignUp(r.Context(), name, email)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			helpers.WriteDetail(w, http.StatusNotFound, helpers.DetailActivityNotFound)
			return
		}
		if errors.Is(err, domain.ErrAlreadySignedUp) {
			helpers.WriteDetail(w, http.StatusBadRequest, helpers.DetailAlreadySignedUp)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, msg)
}

// Unregister godoc
// @Summary Unregister from an activity
// @Description Removes the email from the activity's participants.
// @Tags activities
// @Produce json
// @Param name path string true "Activity name"
// @Param email query string true "Participant email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.ErrorResponse "activity not found, or email not registered"
// @Failure 422 {object} helpers.ErrorResponse "email missing"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name}/unregister [delete]
func (c *ActivityController) Unregister(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email, ok := emailParam(w, r)
	if !ok {
		return
	}

	msg, err := c.Service.Unregister(r.Context(), name, email)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			helpers.WriteDetail(w, http.StatusNotFound, helpers.DetailActivityNotFound)
			return
		}
		if errors.Is(err, domain.ErrNotRegistered) {
			helpers.WriteDetail(w, http.StatusNotFound, helpers.DetailNotRegistered)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, msg)
}

// emailParam returns the email query parameter. Its format is not checked;
// only a missing parameter is rejected.
func emailParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query()
	if !q.Has("email") {
		helpers.WriteDetail(w, http.StatusUnprocessableEntity, helpers.DetailEmailRequired)
		return "", false
	}
	return q.Get("email"), true
}

func (c *ActivityController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteDetail(w, http.StatusInternalServerError, helpers.DetailInternalError)
}
