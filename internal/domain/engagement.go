package domain

import "context"

// UserEngagement is one row of the engagement report.
// swagger:model UserEngagement
type UserEngagement struct {
	UserID        string `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	HostedCount   int    `json:"hosted_count"`
	AttendedCount int    `json:"attended_count"`
}

// AnalyticsService derives read-only reports from the user collection.
type AnalyticsService interface {
	EngagementReport(ctx context.Context) ([]*UserEngagement, error)
}
