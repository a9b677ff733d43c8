package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
// A single synchronous call per recipient; a non-nil error means the message was not accepted.
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NotificationEmailData holds data for the notification template.
type NotificationEmailData struct {
	FirstName string
	LastName  string
	Email     string
	Subject   string
	Message   string
}

// Delivery statuses recorded in the email log.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// NotificationLogEntry records one attempted delivery. Entries are never mutated or deleted.
// swagger:model NotificationLogEntry
type NotificationLogEntry struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Subject string    `json:"subject"`
	Status  string    `json:"status"`
	Error   string    `json:"error,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// NotificationLogRepository stores delivery log entries.
type NotificationLogRepository interface {
	Create(ctx context.Context, entry *NotificationLogEntry) error
	// List returns every entry in scan order.
	List(ctx context.Context) ([]*NotificationLogEntry, error)
}

// NotificationRequest selects recipients and the content to send them.
type NotificationRequest struct {
	Query   UserQuery
	Subject string
	Message string
}

// RecipientResult is the per-recipient outcome of a dispatch.
// swagger:model RecipientResult
type RecipientResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// DispatchReport contains one result per attempted recipient.
// swagger:model DispatchReport
type DispatchReport struct {
	Results []RecipientResult `json:"results"`
	Count   int               `json:"count"`
}

// NotificationService sends notifications to filtered users and exposes the delivery log.
type NotificationService interface {
	Dispatch(ctx context.Context, req *NotificationRequest) (*DispatchReport, error)
	ListLogs(ctx context.Context, page PaginationParams) ([]*NotificationLogEntry, int, error)
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendNotification(ctx context.Context, data *NotificationEmailData) error
}
