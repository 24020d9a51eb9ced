// Package mailer delivers verification codes over SMTP. Delivery is
// fire-and-forget from the caller's point of view: a failure is reported but
// never rolls back the pending registration that triggered it.
package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// ErrSMTPNotConfigured indicates the SMTP environment variables are missing.
var ErrSMTPNotConfigured = errors.New("smtp is not configured")

// Dialer is the subset of gomail used by the mailer, extracted so tests can
// substitute a recorder.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends transactional mail for the registration flow.
type Mailer struct {
	from   string
	dialer Dialer
}

// New builds a Mailer from SMTP coordinates. When host or user is empty the
// Mailer is still returned but every send fails with ErrSMTPNotConfigured,
// which lets local setups run without a mail server.
func New(host string, port int, user, pass string) *Mailer {
	m := &Mailer{from: user}
	if host != "" && user != "" {
		m.dialer = gomail.NewDialer(host, port, user, pass)
	}
	return m
}

// NewWithDialer is used by tests.
func NewWithDialer(from string, d Dialer) *Mailer {
	return &Mailer{from: from, dialer: d}
}

// SendVerificationCode mails the one-time registration code.
func (m *Mailer) SendVerificationCode(email, code string) error {
	if m.dialer == nil {
		return ErrSMTPNotConfigured
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Email Verification Code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is: %s", code))
	return m.dialer.DialAndSend(msg)
}
