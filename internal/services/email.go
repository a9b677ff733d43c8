package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"

	"eventcrm/internal/domain"
)

const notificationTemplate = "notification"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that renders with renderer and delivers through mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendNotification renders the notification for one recipient and hands it to the mailer.
// An unparseable recipient address fails with ErrInvalidInput before anything is rendered.
func (s *emailService) SendNotification(ctx context.Context, data *domain.NotificationEmailData) error {
	if data == nil {
		return domain.InvalidInputf("notification data is required")
	}
	addr, err := mail.ParseAddress(data.Email)
	if err != nil {
		return domain.InvalidInputf("recipient address %q: %v", data.Email, err)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(notificationTemplate, data)
	if err != nil {
		return fmt.Errorf("render %s email: %w", notificationTemplate, err)
	}
	if err := s.mailer.Send(ctx, addr.Address, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send to %s: %w", addr.Address, err)
	}
	s.logger.DebugContext(ctx, "notification email sent", "to", addr.Address)
	return nil
}
