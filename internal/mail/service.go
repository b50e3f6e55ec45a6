package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"
)

// SendTimeout bounds one outbound delivery so a slow relay cannot stall the
// request that triggered it.
const SendTimeout = 8 * time.Second

// Service renders and sends the application's transactional emails.
type Service struct {
	mailer  Mailer
	baseURL string
}

// NewService creates the mail service. baseURL is used to build verification
// links.
func NewService(mailer Mailer, baseURL string) *Service {
	return &Service{mailer: mailer, baseURL: baseURL}
}

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Thank you for signing up. Please verify your email address by clicking the button below:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="{{.URL}}" style="background-color: #0070f3; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">Verify Email Address</a>
  </p>
  <p>Or copy and paste this URL into your browser:<br>{{.URL}}</p>
  <p>If you didn't create an account, you can safely ignore this email.</p>
</div>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your email is verified{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Your account is ready. You can now sign in and access all features.</p>
</div>`))

// SendVerificationEmail delivers the verification link. The caller treats a
// failure as fatal for the operation that requested it.
func (s *Service) SendVerificationEmail(ctx context.Context, email, name, token string) error {
	url := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.baseURL, token)

	var body bytes.Buffer
	if err := verificationTmpl.Execute(&body, map[string]string{"Name": name, "URL": url}); err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()
	return s.mailer.Send(ctx, email, "Verify your email address", body.String())
}

// SendWelcomeEmail delivers the one-time welcome note. Failures are the
// caller's to swallow; this send must never abort a login or verification.
func (s *Service) SendWelcomeEmail(ctx context.Context, email, name string) error {
	var body bytes.Buffer
	if err := welcomeTmpl.Execute(&body, map[string]string{"Name": name}); err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()
	return s.mailer.Send(ctx, email, "Welcome to Auth App", body.String())
}
