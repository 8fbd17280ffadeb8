// Package contact pulls a phone number, email address and name out of free
// chat text. It is a heuristic: it prefers missing a number over reporting a
// date or an amount as one.
package contact

import (
	"regexp"
	"strings"
)

// Digit count bounds for a phone number, country code included.
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)

	// A run of digit groups joined by phone separators. Slash is left out so
	// 12/05/2024 never forms one candidate.
	candidateRe = regexp.MustCompile(`\+?\(?\d[\d\s().\-]*\d\)?`)
	groupRe     = regexp.MustCompile(`\d+`)

	// Group 1 is the date itself; the outer bytes only assert a non-digit edge.
	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:^|\D)(\d{4}[-./]\d{1,2}[-./]\d{1,2})(?:\D|$)`),
		regexp.MustCompile(`(?:^|\D)(\d{1,2}[-./]\d{1,2}[-./]\d{2,4})(?:\D|$)`),
	}

	nameRe = regexp.MustCompile(`\b(?i:my name is)\s+([A-Za-z][A-Za-z'\-]*(?:\s+[A-Z][A-Za-z'\-]*)?)`)
)

// Contact is what Extract found. Empty fields were not found.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Found reports whether a phone number or email address was found.
func (c Contact) Found() bool {
	return c.Phone != "" || c.Email != ""
}

// Extract scans text for contact details.
func Extract(text string) Contact {
	var c Contact
	if m := emailRe.FindString(text); m != "" {
		c.Email = strings.ToLower(strings.TrimRight(m, "."))
	}
	// Blank out the email so digits inside it are not read as a phone.
	rest := text
	if c.Email != "" {
		rest = emailRe.ReplaceAllString(text, " ")
	}
	c.Phone = Phone(rest)
	if m := nameRe.FindStringSubmatch(text); m != nil {
		c.Name = strings.TrimSpace(m[1])
	}
	return c
}

// Phone returns the first phone number in text as a leading "+" (when
// written) followed by digits, or "" when there is none.
func Phone(text string) string {
	text = withoutDates(text)
	for _, loc := range candidateRe.FindAllStringIndex(text, -1) {
		if p := phoneIn(text[loc[0]:loc[1]]); p != "" {
			return p
		}
	}
	return ""
}

// phoneIn looks for the earliest window of consecutive digit groups whose
// combined length is a plausible phone number, taking the longest such
// window from that start.
func phoneIn(cand string) string {
	groups := groupRe.FindAllStringIndex(cand, -1)
	for i := range groups {
		digits, best := 0, -1
		for j := i; j < len(groups); j++ {
			digits += groups[j][1] - groups[j][0]
			if digits > MaxPhoneDigits {
				break
			}
			if digits >= MinPhoneDigits {
				best = j
			}
		}
		if best < 0 {
			continue
		}
		start, end := groups[i][0], groups[best][1]
		return plusPrefix(cand, start) + onlyDigits(cand[start:end])
	}
	return ""
}

// withoutDates blanks every date-shaped token so none of its digits can be
// joined to a neighbouring number. Adjacent dates share an edge byte, so
// they are matched one at a time.
func withoutDates(text string) string {
	b := []byte(text)
	for _, re := range dateRes {
		for {
			m := re.FindSubmatchIndex(b)
			if m == nil {
				break
			}
			for i := m[2]; i < m[3]; i++ {
				b[i] = ' '
			}
		}
	}
	return string(b)
}

// plusPrefix returns "+" when the window is introduced by a plus sign,
// allowing an opening parenthesis in between.
func plusPrefix(cand string, start int) string {
	prefix := strings.TrimRight(cand[:start], "( ")
	if strings.HasSuffix(prefix, "+") {
		return "+"
	}
	return ""
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
