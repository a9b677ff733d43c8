package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsService struct {
	report []*domain.UserEngagement
	err    error
}

func (f *fakeAnalyticsService) EngagementReport(ctx context.Context) ([]*domain.UserEngagement, error) {
	return f.report, f.err
}

func TestAnalyticsController_UserEngagement(t *testing.T) {
	ctrl := NewAnalyticsController(testLogger, &fakeAnalyticsService{report: []*domain.UserEngagement{
		{UserID: "ann", FirstName: "Ann", HostedCount: 1},
		{UserID: "bob", FirstName: "Bob", AttendedCount: 1},
	}})
	rr := httptest.NewRecorder()
	ctrl.UserEngagement(rr, httptest.NewRequest(http.MethodGet, "/analytics/user-engagement", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var rows []domain.UserEngagement
	decodeEnvelope(t, rr, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].HostedCount)
	assert.Equal(t, 1, rows[1].AttendedCount)

	ctrl = NewAnalyticsController(testLogger, &fakeAnalyticsService{err: domain.ErrStoreUnavailable})
	rr = httptest.NewRecorder()
	ctrl.UserEngagement(rr, httptest.NewRequest(http.MethodGet, "/analytics/user-engagement", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
