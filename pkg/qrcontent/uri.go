package qrcontent

import "strings"

// FormatPhone returns a tel: URI with spaces, hyphens and parentheses removed.
// Formatting an already formatted value returns it unchanged.
func FormatPhone(raw string) string {
	number := strings.TrimSpace(trimSchemePrefix(raw, "tel:"))
	return "tel:" + stripPhone(number)
}

// FormatEmail returns a mailto: URI. The address is not validated.
func FormatEmail(raw string) string {
	addr := strings.TrimSpace(trimSchemePrefix(raw, "mailto:"))
	return "mailto:" + addr
}

// FormatSMS returns sms:<phone>, with ?body=<percent-encoded message> when
// message is not blank.
func FormatSMS(phone, message string) string {
	number := stripPhone(strings.TrimSpace(trimSchemePrefix(phone, "smsto:", "sms:")))

	if msg := strings.TrimSpace(message); msg != "" {
		return "sms:" + number + "?body=" + percentEncode(msg)
	}
	return "sms:" + number
}

// FormatURL prefixes https:// when raw has no http(s) scheme.
func FormatURL(raw string) string {
	u := strings.TrimSpace(raw)
	if hasHTTPScheme(u) {
		return u
	}
	return "https://" + u
}

// SplitSMS splits free-form "phone message words..." input on the first
// whitespace run.
func SplitSMS(content string) (phone, message string) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
