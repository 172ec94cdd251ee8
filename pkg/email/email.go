package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// Service sends best-effort notification emails via SMTP. Delivery is
// optional: when not configured, Send is a silent no-op so the in-app
// notification remains the source of truth.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

func NewService(cfg Config) *Service {
	return &Service{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: cfg.FromEmail,
	}
}

// IsConfigured reports whether SMTP credentials are present.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>{{.Title}}</h2></div>
        <div class="content"><p>{{.Message}}</p></div>
        <div class="footer">You are receiving this because of activity on your account.</div>
    </div>
</body>
</html>`

type notificationData struct {
	Title   string
	Message string
}

// SendNotification emails a copy of an in-app notification to the user.
func (s *Service) SendNotification(to, title, message string) error {
	if !s.IsConfigured() {
		return nil
	}

	tmpl, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, notificationData{Title: title, Message: message}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.fromEmail, to, title, body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
