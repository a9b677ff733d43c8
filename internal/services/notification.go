package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventcrm/internal/domain"
)

// DefaultNotificationSubject is used when a dispatch request carries no subject.
const DefaultNotificationSubject = "News from Event CRM"

type notificationService struct {
	query          domain.QueryService
	email          domain.EmailService
	logRepo        domain.NotificationLogRepository
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewNotificationService creates the dispatcher. The timeout bounds the delivery-log listing only;
// a dispatch runs until every recipient has been attempted.
func NewNotificationService(
	query domain.QueryService,
	email domain.EmailService,
	logRepo domain.NotificationLogRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.NotificationService {
	return &notificationService{
		query:          query,
		email:          email,
		logRepo:        logRepo,
		logger:         logger,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

// Dispatch sends one email per user matched by req.Query and records exactly one log
// entry per attempt. Mail failures become "failed" entries; a log write failure aborts
// the dispatch, leaving the recipients already attempted logged. Nothing is resumed or
// deduplicated across calls.
func (s *notificationService) Dispatch(ctx context.Context, req *domain.NotificationRequest) (*domain.DispatchReport, error) {
	if req == nil {
		return nil, domain.InvalidInputf("notification request is required")
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = DefaultNotificationSubject
	}

	recipients, err := s.query.FilterUsers(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("select recipients: %w", err)
	}

	report := &domain.DispatchReport{Results: make([]domain.RecipientResult, 0, len(recipients))}
	for _, u := range recipients {
		entry := &domain.NotificationLogEntry{
			UserID:  u.ID,
			Email:   u.Email,
			Subject: subject,
			Status:  domain.DeliveryStatusSent,
		}
		sendErr := s.email.SendNotification(ctx, &domain.NotificationEmailData{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Subject:   subject,
			Message:   req.Message,
		})
		if sendErr != nil {
			entry.Status = domain.DeliveryStatusFailed
			entry.Error = sendErr.Error()
			s.logger.WarnContext(ctx, "notification delivery failed", "user_id", u.ID, "email", u.Email, "err", sendErr)
		}
		entry.SentAt = s.now().UTC()

		// The attempt already happened, so its record must not depend on the caller staying connected.
		if err := s.logRepo.Create(context.WithoutCancel(ctx), entry); err != nil {
			s.logger.ErrorContext(ctx, "dispatch aborted", "attempted", report.Count+1, "recipients", len(recipients), "err", err)
			return nil, fmt.Errorf("record delivery for user %s: %w", u.ID, err)
		}
		report.Results = append(report.Results, domain.RecipientResult{
			UserID: u.ID,
			Email:  u.Email,
			Status: entry.Status,
		})
		report.Count++
	}

	s.logger.InfoContext(ctx, "dispatch finished", "recipients", report.Count)
	return report, nil
}

// ListLogs returns one page of the delivery log in scan order, plus the total entry count.
func (s *notificationService) ListLogs(ctx context.Context, page domain.PaginationParams) ([]*domain.NotificationLogEntry, int, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	entries, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list email logs: %w", err)
	}
	limit := page.PageSize
	start, end := domain.Window(len(entries), page.Offset(), &limit)
	return entries[start:end], len(entries), nil
}
