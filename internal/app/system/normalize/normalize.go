// Package normalize cleans request fields before they are validated,
// stored or compared.
package normalize

import (
	"strings"
	"unicode"
)

// Email trims and lowercases an address. Stored emails and lookups both go through it.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a display name by trimming and collapsing inner whitespace.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status lowercases an enum value such as a package or enquiry status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role normalizes a role value by trimming whitespace and converting to lowercase.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a query string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// CurrencyCode upper-cases an ISO 4217 code.
func CurrencyCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Slug lowercases s and reduces it to [a-z0-9-], collapsing runs of
// other characters into a single hyphen. "Goa Beach Escape!" -> "goa-beach-escape".
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			hyphen = false
		case b.Len() > 0 && !hyphen:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Phone keeps digits and a leading plus sign.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
