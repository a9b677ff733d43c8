package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"eventcrm/internal/domain"
)

type relationshipService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewRelationshipService creates the service that writes both sides of user/event links.
func NewRelationshipService(userRepo domain.UserRepository, eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.RelationshipService {
	return &relationshipService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *relationshipService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := event.Validate(); err != nil {
		return err
	}
	hostIDs := event.HostIDs()
	event.ID = ""
	event.Hosts = slices.Clone(hostIDs[1:])
	event.Attendees = []string{}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if err := s.linkHosts(ctx, event.ID, hostIDs); err != nil {
		var partial *domain.PartialConsistencyError
		if !errors.As(err, &partial) {
			return err
		}
		s.logger.WarnContext(ctx, "event created with unlinked hosts", "event_id", event.ID, "err", err)
	}
	return nil
}

// linkHosts appends eventID to the hosted list of every user in hostIDs. The event side is
// already written, so every failure here is a partial consistency failure; the remaining
// hosts are still attempted.
func (s *relationshipService) linkHosts(ctx context.Context, eventID string, hostIDs []string) error {
	var failures []domain.LinkFailure
	for _, userID := range hostIDs {
		if err := s.userRepo.AppendHostedEvent(ctx, userID, eventID); err != nil {
			failures = append(failures, domain.LinkFailure{
				Collection: domain.CollectionUsers,
				ID:         userID,
				Field:      domain.FieldHostedEvents,
				Reason:     err.Error(),
				Err:        err,
			})
		}
	}
	if len(failures) > 0 {
		return &domain.PartialConsistencyError{Op: "link hosts", Failures: failures}
	}
	return nil
}

func (s *relationshipService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.RegistrationResult, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" || userID == "" {
		return nil, domain.InvalidInputf("event id and user id are required")
	}

	result := &domain.RegistrationResult{
		EventID: eventID,
		UserID:  userID,
		Status:  domain.RegistrationStatusRegistered,
	}
	if err := s.linkAttendance(ctx, eventID, userID); err != nil {
		var partial *domain.PartialConsistencyError
		if !errors.As(err, &partial) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "registration partially applied", "event_id", eventID, "user_id", userID, "err", err)
		result.Status = domain.RegistrationStatusPartiallyRegistered
		result.Failures = partial.Failures
	}
	return result, nil
}

// linkAttendance writes the event side first. If it fails nothing was applied and the error
// is returned as is; if the user side fails afterwards a PartialConsistencyError is returned.
func (s *relationshipService) linkAttendance(ctx context.Context, eventID, userID string) error {
	if err := s.eventRepo.AppendAttendee(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return fmt.Errorf("append attendee: %w", err)
	}
	if err := s.userRepo.AppendAttendedEvent(ctx, userID, eventID); err != nil {
		return &domain.PartialConsistencyError{
			Op: "link attendance",
			Failures: []domain.LinkFailure{{
				Collection: domain.CollectionUsers,
				ID:         userID,
				Field:      domain.FieldAttendedEvents,
				Reason:     err.Error(),
				Err:        err,
			}},
		}
	}
	return nil
}
