package qrcontent

import "strings"

const crlf = "\r\n"

// VCardRecord holds contact fields for a vCard payload. Every field is
// optional; an all-empty record formats to a header/version/footer-only card.
type VCardRecord struct {
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	URL          string `json:"url,omitempty"`
	Address      string `json:"address,omitempty"`
}

// IsEmpty reports whether no field is set.
func (r VCardRecord) IsEmpty() bool {
	return r == VCardRecord{}
}

// FormatVCard renders r as a vCard 3.0 block with CRLF line endings.
//
// The address goes whole into the fourth ADR component (";;;street;;;");
// it is not split into city, region or postal code.
func FormatVCard(r VCardRecord) string {
	var b strings.Builder
	line := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteString(crlf)
	}

	line("BEGIN:VCARD")
	line("VERSION:3.0")

	if r.FirstName != "" || r.LastName != "" {
		if fullName := strings.TrimSpace(r.FirstName + " " + r.LastName); fullName != "" {
			line("FN:", escapeVCard(fullName))
			line("N:", escapeVCard(r.LastName), ";", escapeVCard(r.FirstName), ";;;")
		}
	}

	if r.Organization != "" {
		line("ORG:", escapeVCard(r.Organization))
	}

	if r.Phone != "" {
		phone := strings.TrimSpace(trimSchemePrefix(r.Phone, "tel:"))
		line("TEL:", escapeVCard(phone))
	}

	if r.Email != "" {
		email := strings.TrimSpace(trimSchemePrefix(r.Email, "mailto:"))
		line("EMAIL:", escapeVCard(email))
	}

	if r.URL != "" {
		u := strings.TrimSpace(r.URL)
		if !hasHTTPScheme(u) {
			u = "https://" + u
		}
		line("URL:", escapeVCard(u))
	}

	if r.Address != "" {
		line("ADR:;;;", escapeVCard(r.Address), ";;;")
	}

	line("END:VCARD")
	return b.String()
}
