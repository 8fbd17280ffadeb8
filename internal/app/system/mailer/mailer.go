// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SendFunc matches smtp.SendMail and is swapped out in tests.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends notification emails via SMTP.
type Mailer struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
	notifyTo string
	send     SendFunc
	log      *zap.Logger
}

// Config holds the configuration for creating a Mailer.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
	// NotifyTo receives enquiry and chat callback notifications.
	NotifyTo string
}

// New creates a new Mailer with the given configuration.
// A Mailer missing host, sender or recipient is disabled and every send is a no-op.
func New(cfg Config, log *zap.Logger) *Mailer {
	m := &Mailer{
		host:     strings.TrimSpace(cfg.Host),
		port:     cfg.Port,
		user:     cfg.User,
		pass:     cfg.Pass,
		from:     strings.TrimSpace(cfg.From),
		fromName: cfg.FromName,
		notifyTo: strings.TrimSpace(cfg.NotifyTo),
		send:     smtp.SendMail,
		log:      log,
	}
	if !m.Enabled() {
		log.Info("email notifications disabled (smtp host, sender or notify address not configured)")
	}
	return m
}

// WithSender replaces the SMTP transport. Used by tests.
func (m *Mailer) WithSender(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m != nil && m.host != "" && m.from != "" && m.notifyTo != ""
}

// FromName returns the configured sender display name.
func (m *Mailer) FromName() string {
	return m.fromName
}

// Email represents an email to be sent.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Send delivers email over SMTP. A non-empty HTMLBody produces a
// multipart/alternative message. When ctx ends first Send returns ctx.Err();
// the SMTP exchange itself cannot be interrupted and finishes in the background.
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if !m.Enabled() {
		m.log.Debug("email skipped (mailer disabled)", zap.String("subject", email.Subject))
		return nil
	}

	msg, err := m.compose(email)
	if err != nil {
		return fmt.Errorf("compose email: %w", err)
	}

	if err := m.deliver(ctx, email.To, msg); err != nil {
		m.log.Error("failed to send email",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

func (m *Mailer) deliver(ctx context.Context, to string, msg []byte) error {
	var auth smtp.Auth
	if m.user != "" && m.pass != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))

	done := make(chan error, 1)
	go func() { done <- m.send(addr, auth, m.from, []string{to}, msg) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// compose renders the RFC 5322 message. Line breaks in the subject are folded
// away and non-ASCII subjects are Q-encoded.
func (m *Mailer) compose(email Email) ([]byte, error) {
	from := mail.Address{Name: m.fromName, Address: m.from}

	var buf bytes.Buffer
	writeHeader(&buf, "From", from.String())
	writeHeader(&buf, "To", email.To)
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", headerSafe(email.Subject)))
	writeHeader(&buf, "Date", time.Now().Format(time.RFC1123Z))
	writeHeader(&buf, "MIME-Version", "1.0")

	if email.HTMLBody == "" {
		writeHeader(&buf, "Content-Type", "text/plain; charset=UTF-8")
		buf.WriteString("\r\n")
		buf.WriteString(email.TextBody)
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type", `multipart/alternative; boundary="`+mw.Boundary()+`"`)
	buf.WriteString("\r\n")

	for _, part := range []struct{ ctype, body string }{
		{"text/plain; charset=UTF-8", email.TextBody},
		{"text/html; charset=UTF-8", email.HTMLBody},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.ctype}})
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, part.body); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

// headerSafe folds line breaks into spaces.
func headerSafe(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}
