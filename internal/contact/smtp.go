package contact

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/velantec/streamfolio/internal/store"
)

// SMTPMailer sends submissions through an authenticated SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// Compose builds the RFC 5322 message for m.
func (s *SMTPMailer) Compose(m store.Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", m.Name)
	if m.Subject != "" {
		subject += " - " + m.Subject
	}
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form (ref %s)
`, m.Name, m.Email, m.Subject, m.Body, m.ID)

	return []byte("To: " + s.To + "\r\n" +
		"Subject: " + headerSafe(subject) + "\r\n" +
		"From: " + s.User + "\r\n" +
		"Reply-To: " + headerSafe(m.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// Send mails m. It fails fast when credentials are missing.
func (s *SMTPMailer) Send(ctx context.Context, m store.Message) error {
	if s.User == "" || s.Pass == "" {
		return ErrMailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	send := s.send
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	return send(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.Compose(m))
}

// headerSafe drops CR and LF so user input cannot add headers.
func headerSafe(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\r' || r == '\n' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
