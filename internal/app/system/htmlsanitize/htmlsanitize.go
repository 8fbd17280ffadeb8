// Package htmlsanitize cleans user-supplied text before it is stored.
// Rich fields written by admins keep safe formatting; public free text is
// reduced to plain text.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  *bluemonday.Policy
	plainPolicy *bluemonday.Policy
	policyOnce  sync.Once
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		// Start with UGC (User Generated Content) policy as base
		richPolicy = bluemonday.UGCPolicy()
		richPolicy.AllowElements("u", "s", "sub", "sup", "mark")

		plainPolicy = bluemonday.StrictPolicy()
	})
	return richPolicy, plainPolicy
}

// Sanitize cleans HTML input, removing potentially dangerous elements and attributes.
// It preserves safe formatting like bold, italic, lists and links.
// Used for package descriptions edited in the admin console.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	rich, _ := policies()
	return rich.Sanitize(s)
}

// StripTags removes all markup and returns plain text, trimmed.
// Entities produced by the strict policy are decoded again so the stored
// value reads the way the visitor typed it.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return strings.TrimSpace(s)
	}
	_, plain := policies()
	return strings.TrimSpace(html.UnescapeString(plain.Sanitize(s)))
}

// IsPlainText checks if content appears to be plain text (no HTML tags).
func IsPlainText(content string) bool {
	if content == "" {
		return true
	}
	// Valid HTML tags require both characters, so if either is missing, treat as plain text
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}
