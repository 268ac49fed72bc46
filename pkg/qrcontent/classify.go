package qrcontent

import (
	"regexp"
	"strings"
)

var (
	// Separators match unicode.IsSpace, which FormatPhone strips.
	phoneShape = regexp.MustCompile(`^\+?[\d\s\v\x{85}\p{Z}\-()]+$`)
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Classify assigns a content type to raw text. It never fails: empty or
// unrecognised input is Text. Comparison is done on a trimmed, lower-cased
// copy; the input itself is not modified.
func Classify(raw string) ContentType {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return URL
	case strings.HasPrefix(s, "tel:"):
		return Phone
	case strings.HasPrefix(s, "mailto:"):
		return Email
	case strings.HasPrefix(s, "smsto:"), strings.HasPrefix(s, "sms:"):
		return SMS
	case isPhoneShape(s):
		return Phone
	case emailShape.MatchString(s):
		return Email
	}
	return Text
}

func isPhoneShape(s string) bool {
	return phoneShape.MatchString(s) && strings.ContainsAny(s, "0123456789")
}
