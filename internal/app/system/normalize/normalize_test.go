package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  user@example.com  ", "user@example.com"},
		{"\tuser@example.com\n", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Asha Rao", "Asha Rao"},
		{"  Asha   Rao  ", "Asha Rao"},
		{"\tAsha\nRao", "Asha Rao"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatusAndRole(t *testing.T) {
	if got := Status("  Published "); got != "published" {
		t.Errorf("Status() = %q", got)
	}
	if got := Role("SUPERADMIN"); got != "superadmin" {
		t.Errorf("Role() = %q", got)
	}
	if got := QueryParam("  top "); got != "top" {
		t.Errorf("QueryParam() = %q", got)
	}
}

func TestCurrencyCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"inr", "INR"},
		{" usd ", "USD"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CurrencyCode(tt.input); got != tt.want {
			t.Errorf("CurrencyCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Goa Beach Escape!", "goa-beach-escape"},
		{"test-trip", "test-trip"},
		{"  Kerala -- Backwaters  ", "kerala-backwaters"},
		{"Ladakh 2026", "ladakh-2026"},
		{"Café Tour", "caf-tour"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"98765 43210", "9876543210"},
		{"+91 (987) 654-3210", "+919876543210"},
		{"  +1.555.010.9999 ", "+15550109999"},
		{"12+34", "1234"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Phone(tt.input); got != tt.want {
				t.Errorf("Phone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
