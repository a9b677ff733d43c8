package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"eventcrm/internal/domain"
)

type queryService struct {
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewQueryService creates the user filter engine. Every query is a full scan.
func NewQueryService(userRepo domain.UserRepository, timeout time.Duration) domain.QueryService {
	return &queryService{
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

// FilterUsers scans all users, keeps those matching every predicate, optionally sorts them
// by the text of q.SortBy and returns the q.Skip / q.Limit window. Without a sort key the
// scan order is kept. The sort is stable, so ties also keep scan order.
func (s *queryService) FilterUsers(ctx context.Context, q domain.UserQuery) ([]*domain.User, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := q.Validate(); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	matched := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if q.Filter.Matches(u) {
			matched = append(matched, u)
		}
	}

	if q.SortBy != "" {
		slices.SortStableFunc(matched, func(a, b *domain.User) int {
			return strings.Compare(a.SortValue(q.SortBy), b.SortValue(q.SortBy))
		})
	}

	start, end := domain.Window(len(matched), q.Skip, q.Limit)
	return matched[start:end], nil
}
