package domain

import (
	"context"
	"errors"
	"slices"
)

// Sentinel errors for activity roster operations.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("already signed up")
	ErrNotRegistered    = errors.New("not registered")
)

// Activity is an extracurricular offering with a participant roster.
// Name is the map key in listings and is not part of the JSON body.
// MaxParticipants is informational; signup does not enforce it.
// swagger:model Activity
type Activity struct {
	Name            string   `json:"-" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// NewActivity returns an Activity with an empty, non-nil roster.
func NewActivity(name, description, schedule string, maxParticipants int) *Activity {
	return &Activity{
		Name:            name,
		Description:     description,
		Schedule:        schedule,
		MaxParticipants: maxParticipants,
		Participants:    []string{},
	}
}

// Clone returns a deep copy so callers can't alias a store's roster.
func (a *Activity) Clone() *Activity {
	c := *a
	c.Participants = slices.Clone(a.Participants)
	if c.Participants == nil {
		c.Participants = []string{}
	}
	return &c
}

// HasParticipant reports whether email is on the roster.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// ActivityRepository defines storage operations for activities and their rosters.
// AddParticipant and RemoveParticipant must be atomic with respect to each other
// for the same activity.
type ActivityRepository interface {
	// Seed installs activities that do not exist yet. Existing activities keep their rosters.
	Seed(ctx context.Context, activities []*Activity) error
	List(ctx context.Context) (map[string]*Activity, error)
	// AddParticipant returns ErrActivityNotFound or ErrAlreadySignedUp without mutating anything.
	AddParticipant(ctx context.Context, activityName, email string) error
	// RemoveParticipant returns ErrActivityNotFound or ErrNotRegistered without mutating anything.
	RemoveParticipant(ctx context.Context, activityName, email string) error
}

// ActivityService defines the activity directory operations exposed over HTTP.
type ActivityService interface {
	List(ctx context.Context) (map[string]*Activity, error)
	// SignUp adds email to the activity roster and returns a confirmation message.
	SignUp(ctx context.Context, activityName, email string) (string, error)
	// Unregister removes email from the activity roster and returns a confirmation message.
	Unregister(ctx context.Context, activityName, email string) (string, error)
}
