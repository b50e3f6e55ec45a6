package mail

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	sendErr  error
	to       string
	subject  string
	htmlBody string
	sends    int
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.sends++
	if m.sendErr != nil {
		return m.sendErr
	}
	m.to = to
	m.subject = subject
	m.htmlBody = htmlBody
	return nil
}

func TestService_SendVerificationEmail(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "https://app.example.com")

	err := svc.SendVerificationEmail(context.Background(), "a@x.com", "Alice", "tok-123")
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", mailer.to)
	assert.Contains(t, mailer.htmlBody, "https://app.example.com/api/auth/verify-email?token=tok-123")
	assert.Contains(t, mailer.htmlBody, "Alice")
}

func TestService_SendVerificationEmail_PropagatesFailure(t *testing.T) {
	mailer := &recordingMailer{sendErr: fmt.Errorf("relay refused")}
	svc := NewService(mailer, "https://app.example.com")

	err := svc.SendVerificationEmail(context.Background(), "a@x.com", "Alice", "tok-123")
	assert.Error(t, err)
}

func TestService_SendWelcomeEmail(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "https://app.example.com")

	err := svc.SendWelcomeEmail(context.Background(), "a@x.com", "Alice")
	assert.NoError(t, err)
	assert.Equal(t, 1, mailer.sends)
	assert.Contains(t, mailer.subject, "Welcome")
}

func TestSMTPMailer_DisabledWithoutHost(t *testing.T) {
	mailer := NewSMTPMailer("", 587, "", "", "noreply@x.com")

	err := mailer.Send(context.Background(), "a@x.com", "subject", "<p>body</p>")
	assert.Error(t, err)
}
