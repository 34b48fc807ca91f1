package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/logger"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends account notifications. Delivery failures are logged by the
// caller and never surfaced to API clients.
type Mailer interface {
	SendWelcome(ctx context.Context, user *models.User, plainPassword string) error
	SendPasswordChange(ctx context.Context, user *models.User, plainPassword string) error
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<h2>Welcome to the Attendance System</h2>
<p>Hello {{.FullName}},</p>
<p>Your account has been created with the following credentials:</p>
<ul>
  <li>Username: <strong>{{.Username}}</strong></li>
  <li>Password: <strong>{{.Password}}</strong></li>
</ul>
<p>Please log in and keep your credentials safe.</p>`))

var passwordChangeTmpl = template.Must(template.New("password_change").Parse(`<h2>Your password was updated</h2>
<p>Hello {{.FullName}},</p>
<p>An administrator has updated your account password:</p>
<ul>
  <li>Username: <strong>{{.Username}}</strong></li>
  <li>New password: <strong>{{.Password}}</strong></li>
</ul>
<p>If you did not expect this change, contact your administrator.</p>`))

type templateData struct {
	FullName string
	Username string
	Password string
}

// SMTPMailer delivers mail over SMTP using the configured relay.
type SMTPMailer struct {
	cfg  config.MailConfig
	logg *logger.Logger
}

// NewSMTPMailer builds an SMTP mailer from config.
func NewSMTPMailer(cfg config.MailConfig, logg *logger.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logg: logg}
}

// SendWelcome emails the initial credentials to a newly created account.
func (m *SMTPMailer) SendWelcome(ctx context.Context, user *models.User, plainPassword string) error {
	return m.send(ctx, user, "Welcome to the Attendance System", welcomeTmpl, plainPassword)
}

// SendPasswordChange notifies a user that an admin reset their password.
func (m *SMTPMailer) SendPasswordChange(ctx context.Context, user *models.User, plainPassword string) error {
	return m.send(ctx, user, "Your password was updated", passwordChangeTmpl, plainPassword)
}

func (m *SMTPMailer) send(ctx context.Context, user *models.User, subject string, tmpl *template.Template, plainPassword string) error {
	var body bytes.Buffer
	data := templateData{
		FullName: user.FullName,
		Username: user.Username,
		Password: plainPassword,
	}
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering mail body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", user.Email, err)
	}

	if m.logg != nil {
		m.logg.Info(m.logg.WithField(ctx, "recipient", user.Email), "mail delivered")
	}
	return nil
}

// NopMailer drops all mail. Used when delivery is disabled and in tests.
type NopMailer struct{}

func (NopMailer) SendWelcome(context.Context, *models.User, string) error        { return nil }
func (NopMailer) SendPasswordChange(context.Context, *models.User, string) error { return nil }

// FromConfig returns the SMTP mailer when delivery is enabled, otherwise a nop.
func FromConfig(cfg config.MailConfig, logg *logger.Logger) Mailer {
	if !cfg.Enabled {
		return NopMailer{}
	}
	return NewSMTPMailer(cfg, logg)
}
