// Package memory provides the process-local activity store.
package memory

import (
	"context"
	"slices"
	"sync"

	"schoolactivities/internal/domain"
)

type activityRepository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// NewActivityRepository returns an empty in-memory store. Call Seed to install activities.
func NewActivityRepository() domain.ActivityRepository {
	return &activityRepository{activities: make(map[string]*domain.Activity)}
}

func (r *activityRepository) Seed(_ context.Context, activities []*domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range activities {
		if _, ok := r.activities[a.Name]; ok {
			continue
		}
		c := a.Clone()
		c.Participants = dedupe(c.Participants)
		r.activities[a.Name] = c
	}
	return nil
}

func (r *activityRepository) List(_ context.Context) (map[string]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*domain.Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

func (r *activityRepository) AddParticipant(_ context.Context, activityName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[activityName]
	if !ok {
		return domain.ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return domain.ErrAlreadySignedUp
	}
	a.Participants = append(a.Participants, email)
	return nil
}

func (r *activityRepository) RemoveParticipant(_ context.Context, activityName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[activityName]
	if !ok {
		return domain.ErrActivityNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return domain.ErrNotRegistered
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return nil
}

// dedupe keeps the first occurrence of each email.
func dedupe(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := emails[:0]
	for _, e := range emails {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
