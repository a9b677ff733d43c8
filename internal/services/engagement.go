package services

import (
	"context"
	"fmt"
	"time"

	"eventcrm/internal/domain"
)

type analyticsService struct {
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewAnalyticsService creates the read-only engagement reporter.
func NewAnalyticsService(userRepo domain.UserRepository, timeout time.Duration) domain.AnalyticsService {
	return &analyticsService{
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

// EngagementReport returns hosted and attended counts for every user in scan order.
func (s *analyticsService) EngagementReport(ctx context.Context) ([]*domain.UserEngagement, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	report := make([]*domain.UserEngagement, 0, len(users))
	for _, u := range users {
		report = append(report, &domain.UserEngagement{
			UserID:        u.ID,
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			HostedCount:   len(u.HostedEvents),
			AttendedCount: len(u.AttendedEvents),
		})
	}
	return report, nil
}
