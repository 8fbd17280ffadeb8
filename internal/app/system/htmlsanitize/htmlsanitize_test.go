package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string // Strings that should be in output
		excludes []string // Strings that should NOT be in output
	}{
		{
			name:  "empty string",
			input: "",
		},
		{
			name:     "plain text",
			input:    "Five nights in Munnar",
			contains: []string{"Five nights in Munnar"},
		},
		{
			name:     "safe HTML preserved",
			input:    "<p>Tea estates and <strong>waterfalls</strong></p>",
			contains: []string{"<p>", "<strong>", "waterfalls"},
		},
		{
			name:     "script tag removed",
			input:    "<p>Hello</p><script>alert('xss')</script>",
			contains: []string{"<p>Hello</p>"},
			excludes: []string{"<script>", "alert"},
		},
		{
			name:     "onclick removed",
			input:    `<p onclick="alert('xss')">Click me</p>`,
			contains: []string{"<p>", "Click me"},
			excludes: []string{"onclick"},
		},
		{
			name:     "javascript URL removed",
			input:    `<a href="javascript:alert('xss')">Link</a>`,
			contains: []string{"Link"},
			excludes: []string{"javascript:"},
		},
		{
			name:     "formatting elements preserved",
			input:    "<u>u</u><s>s</s><mark>m</mark>",
			contains: []string{"<u>", "<s>", "<mark>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize(%q) = %q, should contain %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Sanitize(%q) = %q, should not contain %q", tt.input, got, bad)
				}
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text trimmed", "  call me tomorrow  ", "call me tomorrow"},
		{"bold removed", "<b>Beach</b> holiday", "Beach holiday"},
		{"script removed", "hi<script>alert(1)</script>", "hi"},
		{"entities decoded", "<p>Tom &amp; Jerry</p>", "Tom & Jerry"},
		{"apostrophe kept", "<i>it's</i> fine", "it's fine"},
		{"lone angle bracket", "budget < 50000", "budget < 50000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"hello", true},
		{"a < b", true},
		{"a > b", true},
		{"<p>x</p>", false},
	}
	for _, tt := range tests {
		if got := IsPlainText(tt.input); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	input := `<p>Day 1: <em>arrive</em> <a href="https://example.com">map</a></p>`
	once := Sanitize(input)
	if twice := Sanitize(once); once != twice {
		t.Errorf("Sanitize not idempotent: %q vs %q", once, twice)
	}
}
