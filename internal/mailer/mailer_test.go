package mailer

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSendVerificationCode(t *testing.T) {
	d := &recordingDialer{}
	m := NewWithDialer("noreply@example.com", d)

	if err := m.SendVerificationCode("user@example.com", "123456"); err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}
	if len(d.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(d.sent))
	}
	msg := d.sent[0]
	if to := msg.GetHeader("To"); len(to) != 1 || to[0] != "user@example.com" {
		t.Errorf("To = %v", to)
	}
	if from := msg.GetHeader("From"); len(from) != 1 || !strings.Contains(from[0], "noreply@example.com") {
		t.Errorf("From = %v", from)
	}
}

func TestSendFailsWithoutSMTPConfig(t *testing.T) {
	m := New("", 587, "", "")
	err := m.SendVerificationCode("user@example.com", "123456")
	if !errors.Is(err, ErrSMTPNotConfigured) {
		t.Fatalf("err = %v, want ErrSMTPNotConfigured", err)
	}
}

func TestSendPropagatesDialerError(t *testing.T) {
	d := &recordingDialer{err: errors.New("connection refused")}
	m := NewWithDialer("noreply@example.com", d)
	if err := m.SendVerificationCode("user@example.com", "123456"); err == nil {
		t.Fatal("expected dialer error to propagate")
	}
}
