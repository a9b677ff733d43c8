package services

import (
	"context"
	"errors"
	"testing"

	"eventcrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRenderer struct{}

func (failingRenderer) Render(string, any) (string, string, string, error) {
	return "", "", "", errors.New("template: no such template")
}

func TestEmailService_SendNotification(t *testing.T) {
	ctx := context.Background()
	mailer := &fakeMailer{}
	svc := NewEmailService(mailer, fakeRenderer{}, discardLogger())

	err := svc.SendNotification(ctx, &domain.NotificationEmailData{
		FirstName: "Ann",
		Email:     "Ann Lee <ann@x.com>",
		Subject:   "Hello",
		Message:   "Doors open at nine",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ann@x.com", mailer.sent[0].to)
	assert.Equal(t, "Hello", mailer.sent[0].subject)
	assert.Equal(t, "Doors open at nine", mailer.sent[0].text)
}

func TestEmailService_SendNotificationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		renderer    domain.EmailTemplateRenderer
		mailer      *fakeMailer
		data        *domain.NotificationEmailData
		wantInvalid bool
	}{
		{"nil data", fakeRenderer{}, &fakeMailer{}, nil, true},
		{"bad address", fakeRenderer{}, &fakeMailer{}, &domain.NotificationEmailData{Email: "not-an-address"}, true},
		{"render failure", failingRenderer{}, &fakeMailer{}, &domain.NotificationEmailData{Email: "ann@x.com"}, false},
		{"mailer failure", fakeRenderer{}, &fakeMailer{failFor: map[string]bool{"ann@x.com": true}}, &domain.NotificationEmailData{Email: "ann@x.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEmailService(tt.mailer, tt.renderer, discardLogger()).SendNotification(ctx, tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.wantInvalid, errors.Is(err, domain.ErrInvalidInput))
			assert.Empty(t, tt.mailer.sent)
		})
	}
}
