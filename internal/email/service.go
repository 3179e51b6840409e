package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"time"

	"github.com/redmonkez12/advisory-cms/internal/config"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// SendFunc matches smtp.SendMail so tests can capture outgoing mail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Contact is the subset of a contact form submission used in mail bodies
type Contact struct {
	FullName        string
	Email           string
	Phone           string
	ServiceInterest string
	Message         string
}

type Service struct {
	cfg  config.EmailConfig
	send SendFunc
	now  func() time.Time
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{
		cfg:  cfg,
		send: smtp.SendMail,
		now:  time.Now,
	}
}

// WithSender replaces the SMTP transport
func (s *Service) WithSender(send SendFunc) *Service {
	s.send = send
	return s
}

// SendOTP mails a password reset code
func (s *Service) SendOTP(ctx context.Context, toEmail, otp string) error {
	return s.deliver(ctx, "otp", toEmail, "Password Reset OTP - 89T Corporate Advisors", otpTemplate, struct {
		OTP  string
		Year int
	}{otp, s.now().Year()})
}

// SendInvitation mails the password setup link to an invited admin
func (s *Service) SendInvitation(ctx context.Context, toEmail, name, setupURL string) error {
	return s.deliver(ctx, "invitation", toEmail, "Admin Invitation - 89T Corporate Advisors", invitationTemplate, struct {
		Name     string
		SetupURL string
		Year     int
	}{name, setupURL, s.now().Year()})
}

// SendWelcome greets an account created directly by an admin
func (s *Service) SendWelcome(ctx context.Context, toEmail, name string) error {
	return s.deliver(ctx, "welcome", toEmail, "Welcome to 89T Corporate Advisors Admin Panel", welcomeTemplate, struct {
		Name string
		Year int
	}{name, s.now().Year()})
}

// SendContactNotification forwards a submission to the admin inbox
func (s *Service) SendContactNotification(ctx context.Context, c Contact) error {
	if s.cfg.AdminEmail == "" {
		return fmt.Errorf("send contact notification: %w", ErrNotConfigured)
	}
	subject := "New Contact Form Submission - " + c.ServiceInterest
	return s.deliver(ctx, "contact notification", s.cfg.AdminEmail, subject, contactNotificationTemplate, c)
}

// SendAutoReply acknowledges a submission to the sender
func (s *Service) SendAutoReply(ctx context.Context, c Contact) error {
	subject := fmt.Sprintf("We received your inquiry regarding %s - 89T Corporate Advisors", c.ServiceInterest)
	return s.deliver(ctx, "auto reply", c.Email, subject, autoReplyTemplate, struct {
		Contact
		Year int
	}{c, s.now().Year()})
}

func (s *Service) deliver(ctx context.Context, kind, to, subject string, tmpl *template.Template, data any) error {
	logger := logging.GetLoggerFromContext(ctx)

	if !s.cfg.Configured() {
		logger.Warn("email skipped, smtp not configured", "kind", kind)
		return ErrNotConfigured
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		logger.Error("failed to render email template", "kind", kind, "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(to, subject, body.String()); err != nil {
		logger.Error("failed to send email", "kind", kind, "email", to, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("email sent", "kind", kind, "email", to)
	return nil
}

func (s *Service) sendEmail(to, subject, body string) error {
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	from := (&mail.Address{Name: s.cfg.FromName, Address: s.cfg.FromAddress}).String()
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		from, to, mime.QEncoding.Encode("utf-8", subject), body,
	))

	addr := net.JoinHostPort(s.cfg.SMTPHost, s.cfg.SMTPPort)
	return s.send(addr, auth, s.cfg.FromAddress, []string{to}, msg)
}
