package qrcontent

import (
	"net/url"
	"strings"
	"unicode"
)

var (
	vcardEscaper = strings.NewReplacer(
		`\`, `\\`,
		`;`, `\;`,
		`,`, `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
	)

	wifiEscaper = strings.NewReplacer(
		`\`, `\\`,
		`;`, `\;`,
		`:`, `\:`,
		`,`, `\,`,
		`"`, `\"`,
	)

	// url.QueryEscape output adjusted to the encodeURIComponent unreserved set.
	componentUnescaper = strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
)

func escapeVCard(v string) string {
	return vcardEscaper.Replace(v)
}

func escapeWiFi(v string) string {
	return wifiEscaper.Replace(v)
}

// stripPhone drops whitespace, hyphens and parentheses from a dialable number.
func stripPhone(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, v)
}

// trimSchemePrefix removes a leading scheme (e.g. "tel:") ignoring case.
func trimSchemePrefix(v string, schemes ...string) string {
	for _, scheme := range schemes {
		if len(v) >= len(scheme) && strings.EqualFold(v[:len(scheme)], scheme) {
			return v[len(scheme):]
		}
	}
	return v
}

// hasHTTPScheme reports whether v starts with http:// or https://, ignoring case.
func hasHTTPScheme(v string) bool {
	return trimSchemePrefix(v, "http://", "https://") != v
}

// percentEncode escapes everything except letters, digits and -_.!~*'(),
// with spaces as %20.
func percentEncode(v string) string {
	return componentUnescaper.Replace(url.QueryEscape(v))
}
