package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.uber.org/zap"
)

type captured struct {
	mu   sync.Mutex
	addr string
	from string
	to   []string
	msg  string
}

func (c *captured) sender(err error) SendFunc {
	return func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.addr, c.from, c.to, c.msg = addr, from, to, string(msg)
		return err
	}
}

func enabledConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "noreply@example.com",
		FromName: "StrataTrips",
		NotifyTo: "sales@example.com",
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"fully configured", enabledConfig(), true},
		{"no host", Config{From: "a@b.c", NotifyTo: "d@e.f"}, false},
		{"no from", Config{Host: "smtp", NotifyTo: "d@e.f"}, false},
		{"no notify", Config{Host: "smtp", From: "a@b.c"}, false},
		{"empty", Config{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.cfg, zap.NewNop())
			if got := m.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilMailer *Mailer
	if nilMailer.Enabled() {
		t.Error("nil mailer should not be enabled")
	}
}

func TestSend_DisabledIsNoop(t *testing.T) {
	c := &captured{}
	m := New(Config{}, zap.NewNop()).WithSender(c.sender(nil))

	if err := m.Send(context.Background(), Email{To: "x@y.z", Subject: "hi", TextBody: "body"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if c.msg != "" {
		t.Error("disabled mailer should not call the transport")
	}
}

func TestSend_Multipart(t *testing.T) {
	c := &captured{}
	m := New(enabledConfig(), zap.NewNop()).WithSender(c.sender(nil))

	err := m.Send(context.Background(), Email{
		To:       "sales@example.com",
		Subject:  "Hello\r\nBcc: evil@example.com",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if c.addr != "smtp.example.com:587" {
		t.Errorf("addr = %q", c.addr)
	}
	if !strings.Contains(c.msg, `From: "StrataTrips" <noreply@example.com>`) {
		t.Error("message should carry the display name in From")
	}
	if strings.Contains(c.msg, "\r\nBcc:") {
		t.Error("subject line breaks should not create new headers")
	}
	if !strings.Contains(c.msg, "multipart/alternative") {
		t.Error("message with HTML body should be multipart")
	}
}

func TestSend_EncodesNonASCIISubject(t *testing.T) {
	c := &captured{}
	m := New(enabledConfig(), zap.NewNop()).WithSender(c.sender(nil))

	if err := m.Send(context.Background(), Email{To: "x@y.z", Subject: "Enquiry: Zürich ✈", TextBody: "b"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !strings.Contains(c.msg, "Subject: =?utf-8?q?") {
		t.Errorf("non-ASCII subject should be Q-encoded, got:\n%s", c.msg)
	}
	if !strings.Contains(c.msg, "Content-Type: text/plain; charset=UTF-8") {
		t.Error("text-only message should be plain text")
	}
}

func TestSend_TransportError(t *testing.T) {
	c := &captured{}
	m := New(enabledConfig(), zap.NewNop()).WithSender(c.sender(errors.New("connection refused")))

	err := m.Send(context.Background(), Email{To: "x@y.z", Subject: "s", TextBody: "b"})
	if err == nil {
		t.Fatal("Send() should return the transport error")
	}
}

func TestSend_ContextDeadline(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	m := New(enabledConfig(), zap.NewNop()).WithSender(func(string, smtp.Auth, string, []string, []byte) error {
		<-block
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Send(ctx, Email{To: "x@y.z", Subject: "s", TextBody: "b"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Send() error = %v, want deadline exceeded", err)
	}
}

func TestEnquiryNotification(t *testing.T) {
	c := &captured{}
	m := New(enabledConfig(), zap.NewNop()).WithSender(c.sender(nil))

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	e := &models.Enquiry{
		FullName:           "Asha Rao",
		Email:              "asha@example.com",
		CountryCode:        "+91",
		Phone:              "9876543210",
		PackageSlug:        "goa-getaway",
		PreferredStartDate: &start,
		NumberOfAdults:     2,
		NumberOfChildren:   1,
		Message:            "<b>Beach</b> please",
		CreatedAt:          time.Now(),
	}
	if err := m.EnquiryNotification(context.Background(), e); err != nil {
		t.Fatalf("EnquiryNotification() error = %v", err)
	}
	if len(c.to) != 1 || c.to[0] != "sales@example.com" {
		t.Errorf("to = %v, want notify address", c.to)
	}
	for _, want := range []string{"Subject: New enquiry from Asha Rao", "+91 9876543210", "2 adults, 1 child", "2026-12-01", "goa-getaway"} {
		if !strings.Contains(c.msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if strings.Contains(c.msg, "<b>Beach</b>") && !strings.Contains(c.msg, "&lt;b&gt;Beach") {
		t.Error("HTML part should escape user-supplied markup")
	}
}

func TestChatCallback(t *testing.T) {
	c := &captured{}
	m := New(enabledConfig(), zap.NewNop()).WithSender(c.sender(nil))

	err := m.ChatCallback(context.Background(), ChatCallbackData{
		SessionID:   "sess-1",
		Phone:       "9876543210",
		LastMessage: "call me at 9876543210",
	})
	if err != nil {
		t.Fatalf("ChatCallback() error = %v", err)
	}
	if !strings.Contains(c.msg, "Phone: 9876543210") {
		t.Error("text body should list the phone number")
	}
	if strings.Contains(c.msg, "Email: ") {
		t.Error("empty fields should be omitted from the text body")
	}
}

func TestTravellers(t *testing.T) {
	tests := []struct {
		adults, children int
		want             string
	}{
		{1, 0, "1 adult"},
		{2, 0, "2 adults"},
		{2, 1, "2 adults, 1 child"},
		{3, 2, "3 adults, 2 children"},
	}
	for _, tt := range tests {
		if got := travellers(tt.adults, tt.children); got != tt.want {
			t.Errorf("travellers(%d, %d) = %q, want %q", tt.adults, tt.children, got, tt.want)
		}
	}
}
