package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"schoolactivities/internal/domain"
	"schoolactivities/internal/observability"
)

// DefaultEmailTimeout bounds a confirmation email send. The roster change has
// already happened when it starts, so a slow mailer must not hold the response.
const DefaultEmailTimeout = 3 * time.Second

type activityService struct {
	repo         domain.ActivityRepository
	email        domain.EmailService
	logger       *slog.Logger
	emailTimeout time.Duration
}

// NewActivityService creates an ActivityService over repo. email may be nil, in which
// case no confirmation emails are sent.
func NewActivityService(repo domain.ActivityRepository, email domain.EmailService, logger *slog.Logger) domain.ActivityService {
	return &activityService{
		repo:         repo,
		email:        email,
		logger:       logger,
		emailTimeout: DefaultEmailTimeout,
	}
}

func (s *activityService) List(ctx context.Context) (map[string]*domain.Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (s *activityService) SignUp(ctx context.Context, activityName, email string) (string, error) {
	if err := s.repo.AddParticipant(ctx, activityName, email); err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			observability.Signups.WithLabelValues(observability.ResultNotFound).Inc()
			return "", domain.ErrActivityNotFound
		case errors.Is(err, domain.ErrAlreadySignedUp):
			observability.Signups.WithLabelValues(observability.ResultAlreadySignedUp).Inc()
			return "", domain.ErrAlreadySignedUp
		}
		observability.Signups.WithLabelValues(observability.ResultError).Inc()
		return "", fmt.Errorf("add participant: %w", err)
	}
	observability.Signups.WithLabelValues(observability.ResultOK).Inc()
	s.logger.InfoContext(ctx, "participant signed up", "activity", activityName, "email", email)

	s.notify(ctx, "signup confirmation", activityName, email, func(ctx context.Context, data *domain.RosterEmailData) error {
		return s.email.SendSignupConfirmation(ctx, data)
	})
	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

func (s *activityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	if err := s.repo.RemoveParticipant(ctx, activityName, email); err != nil {
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			observability.Unregistrations.WithLabelValues(observability.ResultNotFound).Inc()
			return "", domain.ErrActivityNotFound
		case errors.Is(err, domain.ErrNotRegistered):
			observability.Unregistrations.WithLabelValues(observability.ResultNotRegistered).Inc()
			return "", domain.ErrNotRegistered
		}
		observability.Unregistrations.WithLabelValues(observability.ResultError).Inc()
		return "", fmt.Errorf("remove participant: %w", err)
	}
	observability.Unregistrations.WithLabelValues(observability.ResultOK).Inc()
	s.logger.InfoContext(ctx, "participant unregistered", "activity", activityName, "email", email)

	s.notify(ctx, "unregister confirmation", activityName, email, func(ctx context.Context, data *domain.RosterEmailData) error {
		return s.email.SendUnregisterConfirmation(ctx, data)
	})
	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

// notify sends a best-effort email. It survives cancellation of the request
// but gives up after emailTimeout; failures are only logged.
func (s *activityService) notify(ctx context.Context, kind, activityName, email string, send func(context.Context, *domain.RosterEmailData) error) {
	if s.email == nil {
		return
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.emailTimeout)
	defer cancel()
	data := &domain.RosterEmailData{Email: email, ActivityName: activityName}
	if err := send(sendCtx, data); err != nil {
		s.logger.WarnContext(ctx, kind+" not sent", "activity", activityName, "email", email, "err", err)
	}
}
