package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"github.com/omiglobal/submission-backend/internal/config"
)

// Sender performs a single synchronous delivery attempt of one message.
// Retry policy belongs to the caller.
type Sender interface {
	Send(toEmail, toName, subject, bodyHTML, bodyPlain string) (messageID, response string, err error)
}

type smtpSender struct {
	dialer     *gomail.Dialer
	fromEmail  string
	senderName string
	domain     string
}

// NewSender creates a Sender that delivers through the configured SMTP
// relay over an authenticated STARTTLS connection.
func NewSender(cfg config.MailConfig) Sender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	domain := "localhost"
	if _, after, ok := strings.Cut(cfg.User, "@"); ok && after != "" {
		domain = after
	}

	return &smtpSender{
		dialer:     d,
		fromEmail:  cfg.User,
		senderName: cfg.SenderName,
		domain:     domain,
	}
}

// Send builds a multipart/alternative message (plain text fallback
// first, HTML preferred) and performs one delivery attempt.
func (s *smtpSender) Send(toEmail, toName, subject, bodyHTML, bodyPlain string) (string, string, error) {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromEmail, s.senderName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Reply-To", s.fromEmail)
	m.SetHeader("Subject", subject)
	m.SetDateHeader("Date", time.Now())

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.domain)
	m.SetHeader("Message-ID", messageID)

	m.SetBody("text/plain", bodyPlain)
	m.AddAlternative("text/html", bodyHTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", "", classify(err)
	}
	return messageID, "250 OK", nil
}

// classify maps a delivery error to a human-readable category so the
// caller can record it without parsing SMTP codes itself.
func classify(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return fmt.Errorf("authentication failed: %w", err)
		case 550, 551, 552, 553:
			return fmt.Errorf("recipient refused: %w", err)
		default:
			return fmt.Errorf("smtp error: %w", err)
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("connection error: %w", err)
	}
	return fmt.Errorf("unexpected error: %w", err)
}
